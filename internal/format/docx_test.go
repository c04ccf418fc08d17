package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/canvasdoc/internal/canvas"
	"github.com/dgallion1/canvasdoc/internal/collect"
	"github.com/fumiama/go-docx"
)

func renderDocx(t *testing.T, story canvas.Story, all map[string]canvas.Canvas, opts Options) []byte {
	t.Helper()
	content := collect.Collect(all[canvas.MainCanvasID], all, nil)
	f := &DocxFormatter{}
	out, err := f.Format(story, content, opts)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	return out
}

// docxText re-parses generated bytes and concatenates all paragraph
// text, one paragraph per line.
func docxText(t *testing.T, data []byte) string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse generated docx: %v", err)
	}
	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					b.WriteString(txt.Text)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestDocxFormatter_EndToEndScenario(t *testing.T) {
	story, all := scenario()
	data := renderDocx(t, story, all, Options{Format: "docx", Include: IncludeAll()})
	text := docxText(t, data)

	for _, want := range []string{"Test", "Hero", "Role: Protagonist", "Plot", "Age 5", "Learns magic"} {
		if !strings.Contains(text, want) {
			t.Errorf("document text missing %q:\n%s", want, text)
		}
	}
}

func TestDocxFormatter_Deterministic(t *testing.T) {
	story, all := scenario()
	opts := Options{Format: "docx", Include: IncludeAll()}
	first := renderDocx(t, story, all, opts)
	second := renderDocx(t, story, all, opts)
	if !bytes.Equal(first, second) {
		t.Error("same input produced different docx bytes")
	}
}

func TestDocxFormatter_PlaceholderSuppression(t *testing.T) {
	story := canvas.Story{ID: "s1", Title: "Test"}
	main := canvas.Canvas{
		ID: "main",
		Nodes: []canvas.Node{
			{ID: "c1", Type: canvas.NodeCharacter, Text: "Hero", Description: "What drives this character?"},
		},
	}
	data := renderDocx(t, story, canvasMap(main), Options{Format: "docx", Include: IncludeAll()})
	text := docxText(t, data)
	if strings.Contains(text, "Hero") {
		t.Errorf("placeholder-only character should be absent:\n%s", text)
	}
}

func TestDocxFormatter_SharesFilterAndOrderRules(t *testing.T) {
	story := canvas.Story{ID: "s1", Title: "Test"}
	main := canvas.Canvas{
		ID: "main",
		Nodes: []canvas.Node{
			{ID: "ten", Type: canvas.NodeEvent, Text: "Age 10", Summary: "Second trial", Y: 0},
			{ID: "two", Type: canvas.NodeEvent, Text: "Age 2", Summary: "First steps", Y: 200},
		},
	}
	data := renderDocx(t, story, canvasMap(main), Options{Format: "docx", Include: IncludeAll()})
	text := docxText(t, data)

	first := strings.Index(text, "Age 2")
	second := strings.Index(text, "Age 10")
	if first < 0 || second < 0 || first > second {
		t.Errorf("events not age-ordered in document:\n%s", text)
	}
}
