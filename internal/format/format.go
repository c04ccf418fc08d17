// Package format renders a collected content tree into a downloadable
// document. Formatters are pure functions over collect.Content; the
// filtering and ordering rules live here once and are shared, so a new
// output format never touches collection logic.
package format

import (
	"fmt"
	"strings"

	"github.com/dgallion1/canvasdoc/internal/canvas"
	"github.com/dgallion1/canvasdoc/internal/collect"
)

// Formatter renders one output format.
type Formatter interface {
	Format(story canvas.Story, content *collect.Content, opts Options) ([]byte, error)
	MIMEType() string
	Extension() string
}

// Options selects the output format and which content buckets to emit.
type Options struct {
	Format  string  `json:"format"`
	Include Include `json:"include"`
}

// Include toggles content buckets independently. Toggles apply
// recursively into every nesting level. Lists are accepted for API
// compatibility but have no exportable prose either way.
type Include struct {
	Characters        bool `json:"characters"`
	Events            bool `json:"events"`
	Locations         bool `json:"locations"`
	TextNotes         bool `json:"textNotes"`
	Tables            bool `json:"tables"`
	Lists             bool `json:"lists"`
	RelationshipNodes bool `json:"relationshipNodes"`
}

// IncludeAll is the default: every bucket enabled.
func IncludeAll() Include {
	return Include{
		Characters:        true,
		Events:            true,
		Locations:         true,
		TextNotes:         true,
		Tables:            true,
		Lists:             true,
		RelationshipNodes: true,
	}
}

// For returns the formatter for a format name. Plain text is the
// default when the name is empty.
func For(name string) (Formatter, error) {
	switch name {
	case "", "text", "txt":
		return &TextFormatter{}, nil
	case "docx":
		return &DocxFormatter{}, nil
	}
	return nil, fmt.Errorf("unsupported export format: %s", name)
}

// prepare applies the shared pre-render pipeline: recursive include
// pruning, then elision of a top-level folder named after the story.
func prepare(story canvas.Story, content *collect.Content, opts Options) *collect.Content {
	return hoistTitleFolder(applyInclude(content, opts.Include), story.Title)
}

// applyInclude prunes disabled buckets at every nesting level. The
// input tree is never mutated.
func applyInclude(c *collect.Content, inc Include) *collect.Content {
	if c == nil {
		return &collect.Content{}
	}
	out := &collect.Content{AllNodes: c.AllNodes}
	if inc.Characters {
		for _, e := range c.Characters {
			out.Characters = append(out.Characters, collect.CharacterEntry{
				Node:       e.Node,
				SubContent: applyInclude(e.SubContent, inc),
			})
		}
	}
	if inc.Events {
		for _, e := range c.Events {
			out.Events = append(out.Events, collect.EventEntry{
				Node:       e.Node,
				SubContent: applyInclude(e.SubContent, inc),
			})
		}
	}
	if inc.Locations {
		for _, e := range c.Locations {
			out.Locations = append(out.Locations, collect.LocationEntry{
				Node:       e.Node,
				SubContent: applyInclude(e.SubContent, inc),
			})
		}
	}
	if inc.TextNotes {
		out.TextNotes = append(out.TextNotes, c.TextNotes...)
	}
	if inc.Tables {
		out.Tables = append(out.Tables, c.Tables...)
	}
	if inc.RelationshipNodes {
		out.RelationshipNodes = append(out.RelationshipNodes, c.RelationshipNodes...)
	}
	for _, e := range c.Folders {
		out.Folders = append(out.Folders, collect.FolderEntry{
			Node:     e.Node,
			Children: applyInclude(e.Children, inc),
		})
	}
	return out
}

// hoistTitleFolder elides a top-level folder whose name matches the
// story title (case-insensitive) — authors often name a folder after
// the project, which would duplicate the document heading. The
// folder's children are hoisted into the top level rather than
// dropped, so its content survives.
func hoistTitleFolder(c *collect.Content, title string) *collect.Content {
	title = strings.TrimSpace(title)
	if title == "" {
		return c
	}
	out := &collect.Content{
		Characters:        c.Characters,
		Events:            c.Events,
		Locations:         c.Locations,
		TextNotes:         c.TextNotes,
		Tables:            c.Tables,
		RelationshipNodes: c.RelationshipNodes,
		AllNodes:          c.AllNodes,
	}
	for _, e := range c.Folders {
		if !strings.EqualFold(strings.TrimSpace(e.Node.DisplayName()), title) {
			out.Folders = append(out.Folders, e)
			continue
		}
		ch := e.Children
		if ch == nil {
			continue
		}
		out.Characters = append(out.Characters, ch.Characters...)
		out.Events = append(out.Events, ch.Events...)
		out.Locations = append(out.Locations, ch.Locations...)
		out.TextNotes = append(out.TextNotes, ch.TextNotes...)
		out.Tables = append(out.Tables, ch.Tables...)
		out.RelationshipNodes = append(out.RelationshipNodes, ch.RelationshipNodes...)
		out.Folders = append(out.Folders, ch.Folders...)
	}
	collect.SortEventsByAge(out.Events)
	return out
}

// tableColumns derives the column set from the first row's keys,
// excluding the id column and any reserved "_"-prefixed key. Rows
// preserve stored key order, so columns come out in the order the
// author laid them down.
func tableColumns(n canvas.Node) []string {
	if len(n.TableData) == 0 {
		return nil
	}
	var cols []string
	for _, k := range n.TableData[0].Keys() {
		if k == "id" || strings.HasPrefix(k, "_") {
			continue
		}
		cols = append(cols, k)
	}
	return cols
}

// tableRows returns the rows worth rendering. A row of all-empty cells
// is dropped; in a two-column field/value table a row is kept only if
// its value column holds real content.
func tableRows(n canvas.Node, cols []string) []canvas.TableRow {
	var rows []canvas.TableRow
	for _, row := range n.TableData {
		if len(cols) == 2 {
			if collect.CellIsEmpty(row.Get(cols[1])) {
				continue
			}
			rows = append(rows, row)
			continue
		}
		empty := true
		for _, col := range cols {
			if !collect.CellIsEmpty(row.Get(col)) {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// relationshipLines renders a relationship graph as one line per edge.
func relationshipLines(n canvas.Node) []string {
	if n.RelationshipData == nil {
		return nil
	}
	var lines []string
	for _, r := range n.RelationshipData.Relationships {
		if strings.TrimSpace(r.From) == "" || strings.TrimSpace(r.To) == "" {
			continue
		}
		arrow := "->"
		if r.Bidirectional {
			arrow = "<->"
		}
		line := fmt.Sprintf("%s %s %s", r.From, arrow, r.To)
		if strings.TrimSpace(r.Label) != "" {
			line += ": " + r.Label
		}
		lines = append(lines, line)
	}
	return lines
}
