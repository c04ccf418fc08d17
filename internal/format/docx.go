package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dgallion1/canvasdoc/internal/canvas"
	"github.com/dgallion1/canvasdoc/internal/collect"
	"github.com/fumiama/go-docx"
)

// DocxFormatter renders a Word document: native heading styles per
// nesting level and real tables, from the same content tree and
// filter/order rules as the text formatter.
type DocxFormatter struct{}

func (f *DocxFormatter) MIMEType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (f *DocxFormatter) Extension() string { return ".docx" }

// maxHeadingLevel is the deepest distinct Word heading style; levels
// below it collapse to the same style.
const maxHeadingLevel = 6

func (f *DocxFormatter) Format(story canvas.Story, content *collect.Content, opts Options) ([]byte, error) {
	c := prepare(story, content, opts)

	w := docx.New().WithDefaultTheme()

	title := strings.TrimSpace(story.Title)
	if title == "" {
		title = "Untitled"
	}
	w.AddParagraph().AddText(title).Size("48").Bold()

	if !collect.IsEmptyOrTemplate(story.Bio) {
		w.AddParagraph().AddText(strings.TrimSpace(story.Bio))
	}

	d := &docxWriter{doc: w}
	d.writeLevel(c, 1)

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	out, err := canonicalArchive(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("canonicalize docx: %w", err)
	}
	return out, nil
}

// canonicalArchive rewrites the generated package with its zip entries
// sorted by name and fixed metadata. go-docx emits parts in map
// iteration order, which would make two exports of the same story
// differ byte-for-byte.
func canonicalArchive(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	files := make([]*zip.File, len(zr.File))
	copy(files, zr.File)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		ew, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			rc.Close()
			return nil, err
		}
		if _, err := io.Copy(ew, rc); err != nil {
			rc.Close()
			return nil, err
		}
		rc.Close()
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type docxWriter struct {
	doc *docx.Docx
}

// writeLevel mirrors the text formatter's fixed category order.
func (d *docxWriter) writeLevel(c *collect.Content, level int) {
	for _, e := range c.Characters {
		if !collect.Emittable(e.Node, e.SubContent) {
			continue
		}
		d.heading(level, e.Node.DisplayName())
		d.labeled("Role", e.Node.Role)
		d.paragraph(e.Node.Description)
		d.labeled("Backstory", e.Node.Backstory)
		d.writeLevel(e.SubContent, level+1)
	}
	for _, e := range c.Events {
		if !collect.Emittable(e.Node, e.SubContent) {
			continue
		}
		d.heading(level, e.Node.DisplayName())
		d.paragraph(e.Node.Summary)
		d.labeled("Duration", e.Node.DurationText)
		d.paragraph(e.Node.Description)
		d.writeLevel(e.SubContent, level+1)
	}
	for _, e := range c.Locations {
		if !collect.Emittable(e.Node, e.SubContent) {
			continue
		}
		d.heading(level, e.Node.DisplayName())
		d.paragraph(e.Node.Description)
		d.paragraph(e.Node.Content)
		d.writeLevel(e.SubContent, level+1)
	}
	for _, n := range c.RelationshipNodes {
		if !collect.Emittable(n, nil) {
			continue
		}
		d.heading(level, n.DisplayName())
		for _, line := range relationshipLines(n) {
			d.doc.AddParagraph().AddText(line)
		}
	}
	for _, n := range c.TextNotes {
		if !collect.Emittable(n, nil) {
			continue
		}
		d.heading(level, n.DisplayName())
		d.paragraph(n.Content)
		d.paragraph(n.Description)
	}
	for _, n := range c.Tables {
		if !collect.Emittable(n, nil) {
			continue
		}
		d.heading(level, n.DisplayName())
		d.table(n)
	}
	for _, e := range c.Folders {
		if !collect.Emittable(e.Node, e.Children) {
			continue
		}
		d.heading(level, e.Node.DisplayName())
		d.paragraph(e.Node.Description)
		d.writeLevel(e.Children, level+1)
	}
}

// headingSizes are half-point run sizes per level, saturating with the
// heading style itself.
var headingSizes = []string{"36", "32", "28", "26", "24", "24"}

func (d *docxWriter) heading(level int, text string) {
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	p := d.doc.AddParagraph().Style(fmt.Sprintf("Heading%d", level))
	p.AddText(strings.TrimSpace(text)).Size(headingSizes[level-1]).Bold()
}

func (d *docxWriter) paragraph(text string) {
	if collect.IsEmptyOrTemplate(text) {
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		d.doc.AddParagraph().AddText(line)
	}
}

func (d *docxWriter) labeled(label, value string) {
	if collect.IsEmptyOrTemplate(value) {
		return
	}
	p := d.doc.AddParagraph()
	p.AddText(label + ": ").Bold()
	p.AddText(strings.TrimSpace(value))
}

func (d *docxWriter) table(n canvas.Node) {
	cols := tableColumns(n)
	rows := tableRows(n, cols)
	if len(cols) == 0 || len(rows) == 0 {
		return
	}

	tbl := d.doc.AddTable(len(rows)+1, len(cols), 8000, nil)
	for j, col := range cols {
		tbl.TableRows[0].TableCells[j].AddParagraph().AddText(col).Bold()
	}
	for i, row := range rows {
		for j, col := range cols {
			tbl.TableRows[i+1].TableCells[j].AddParagraph().AddText(row.Get(col))
		}
	}
}
