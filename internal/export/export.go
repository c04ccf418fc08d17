// Package export turns a story's canvas hierarchy into a downloadable
// document and tracks asynchronous export jobs.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/canvasdoc/internal/canvas"
	"github.com/dgallion1/canvasdoc/internal/collect"
	"github.com/dgallion1/canvasdoc/internal/format"
	"github.com/dgallion1/canvasdoc/internal/store"
)

// Artifact is one finished export: the document body plus what the
// caller needs to materialize a download.
type Artifact struct {
	Content  []byte `json:"-"`
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
}

// ProgressFunc receives coarse pipeline-stage progress. Exports report
// at fixed stages, never per node.
type ProgressFunc func(stage string, percent int)

// Exporter runs the export pipeline against a store.
type Exporter struct {
	store *store.Store
	log   *slog.Logger
}

func NewExporter(st *store.Store, log *slog.Logger) *Exporter {
	return &Exporter{store: st, log: log}
}

// Export produces one artifact for a story. Story-metadata misses and
// canvas fetch failures abort the whole export; no partial document is
// ever returned. A story with no customized content still yields a
// document containing at least its title.
func (e *Exporter) Export(ctx context.Context, storyID, userID string, opts format.Options, progress ProgressFunc) (*Artifact, error) {
	report := func(stage string, percent int) {
		if progress != nil {
			progress(stage, percent)
		}
	}

	report("fetching metadata", 10)
	story, err := e.store.GetStory(ctx, storyID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch story metadata: %w", err)
	}

	report("fetching canvases", 30)
	canvases, err := e.store.FetchAllCanvases(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("fetch canvases: %w", err)
	}

	report("generating document", 60)
	main, ok := canvases[canvas.MainCanvasID]
	if !ok {
		main = canvas.Canvas{ID: canvas.MainCanvasID}
	}
	content := collect.Collect(main, canvases, nil)

	f, err := format.For(opts.Format)
	if err != nil {
		return nil, err
	}
	body, err := f.Format(story, content, opts)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	report("packaging result", 90)
	filename := fmt.Sprintf("%s_export_%s%s",
		SanitizeTitle(story.Title), time.Now().UTC().Format("2006-01-02"), f.Extension())

	e.log.Info("export complete",
		"story_id", storyID,
		"format", opts.Format,
		"bytes", len(body),
	)
	report("done", 100)

	return &Artifact{Content: body, Filename: filename, MIMEType: f.MIMEType()}, nil
}

// SanitizeTitle reduces a story title to a safe filename stem: strips
// every character outside [A-Za-z0-9 -], collapses whitespace runs to
// single underscores, and truncates to 50 characters.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}
	s := strings.Join(strings.Fields(b.String()), "_")
	if s == "" {
		s = "story"
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
