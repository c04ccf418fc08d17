package format

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/canvasdoc/internal/canvas"
	"github.com/dgallion1/canvasdoc/internal/collect"
)

// TextFormatter renders plain text: underlined headings for the first
// two levels, bullet headings with saturating indent below that, and
// ASCII tables.
type TextFormatter struct{}

func (f *TextFormatter) MIMEType() string  { return "text/plain; charset=utf-8" }
func (f *TextFormatter) Extension() string { return ".txt" }

// maxBulletIndent caps how far deep headings indent; levels past the
// cap collapse to the same visual treatment.
const maxBulletIndent = 3

func (f *TextFormatter) Format(story canvas.Story, content *collect.Content, opts Options) ([]byte, error) {
	c := prepare(story, content, opts)

	var b strings.Builder
	title := strings.ToUpper(strings.TrimSpace(story.Title))
	if title == "" {
		title = "UNTITLED"
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(title)))
	b.WriteString("\n\n")

	if !collect.IsEmptyOrTemplate(story.Bio) {
		b.WriteString(strings.TrimSpace(story.Bio))
		b.WriteString("\n\n")
	}

	writeLevel(&b, c, 1)
	return []byte(b.String()), nil
}

// writeLevel emits one level of the tree in the fixed category order:
// characters, events, locations, relationship graphs, text notes,
// tables, folders.
func writeLevel(b *strings.Builder, c *collect.Content, level int) {
	for _, e := range c.Characters {
		if !collect.Emittable(e.Node, e.SubContent) {
			continue
		}
		writeHeading(b, level, e.Node.DisplayName())
		writeLabeled(b, level, "Role", e.Node.Role)
		writeParagraph(b, level, e.Node.Description)
		writeLabeled(b, level, "Backstory", e.Node.Backstory)
		writeLevel(b, e.SubContent, level+1)
	}
	for _, e := range c.Events {
		if !collect.Emittable(e.Node, e.SubContent) {
			continue
		}
		writeHeading(b, level, e.Node.DisplayName())
		writeParagraph(b, level, e.Node.Summary)
		writeLabeled(b, level, "Duration", e.Node.DurationText)
		writeParagraph(b, level, e.Node.Description)
		writeLevel(b, e.SubContent, level+1)
	}
	for _, e := range c.Locations {
		if !collect.Emittable(e.Node, e.SubContent) {
			continue
		}
		writeHeading(b, level, e.Node.DisplayName())
		writeParagraph(b, level, e.Node.Description)
		writeParagraph(b, level, e.Node.Content)
		writeLevel(b, e.SubContent, level+1)
	}
	for _, n := range c.RelationshipNodes {
		if !collect.Emittable(n, nil) {
			continue
		}
		writeHeading(b, level, n.DisplayName())
		for _, line := range relationshipLines(n) {
			b.WriteString(bodyIndent(level))
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	for _, n := range c.TextNotes {
		if !collect.Emittable(n, nil) {
			continue
		}
		writeHeading(b, level, n.DisplayName())
		writeParagraph(b, level, n.Content)
		writeParagraph(b, level, n.Description)
	}
	for _, n := range c.Tables {
		if !collect.Emittable(n, nil) {
			continue
		}
		writeHeading(b, level, n.DisplayName())
		writeASCIITable(b, level, n)
	}
	for _, e := range c.Folders {
		if !collect.Emittable(e.Node, e.Children) {
			continue
		}
		writeHeading(b, level, e.Node.DisplayName())
		writeParagraph(b, level, e.Node.Description)
		writeLevel(b, e.Children, level+1)
	}
}

func writeHeading(b *strings.Builder, level int, text string) {
	text = strings.TrimSpace(text)
	switch level {
	case 1:
		b.WriteString(text)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", utf8.RuneCountInString(text)))
		b.WriteString("\n\n")
	case 2:
		b.WriteString(text)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(text)))
		b.WriteString("\n\n")
	default:
		b.WriteString(headingIndent(level))
		b.WriteString("* ")
		b.WriteString(text)
		b.WriteString("\n\n")
	}
}

func headingIndent(level int) string {
	depth := level - 3
	if depth > maxBulletIndent {
		depth = maxBulletIndent
	}
	return strings.Repeat("  ", depth)
}

func bodyIndent(level int) string {
	if level <= 2 {
		return ""
	}
	return headingIndent(level) + "  "
}

func writeParagraph(b *strings.Builder, level int, text string) {
	if collect.IsEmptyOrTemplate(text) {
		return
	}
	ind := bodyIndent(level)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		b.WriteString(ind)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeLabeled(b *strings.Builder, level int, label, value string) {
	if collect.IsEmptyOrTemplate(value) {
		return
	}
	b.WriteString(bodyIndent(level))
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strings.TrimSpace(value))
	b.WriteString("\n\n")
}

func writeASCIITable(b *strings.Builder, level int, n canvas.Node) {
	cols := tableColumns(n)
	rows := tableRows(n, cols)
	if len(cols) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range rows {
		for i, col := range cols {
			if w := utf8.RuneCountInString(row.Get(col)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	ind := bodyIndent(level)
	writeRow := func(cells []string) {
		b.WriteString(ind)
		b.WriteString("|")
		for i, cell := range cells {
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(cols)
	b.WriteString(ind)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = row.Get(col)
		}
		writeRow(cells)
	}
	b.WriteString("\n")
}
