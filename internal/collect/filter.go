package collect

import (
	"strings"

	"github.com/dgallion1/canvasdoc/internal/canvas"
)

// templatePrompts is the catalogue of seed copy the editor pre-fills
// into new nodes. Matching is exact (after trimming) so legitimately
// authored text that merely starts the same way is never dropped.
var templatePrompts = map[string]struct{}{
	"What drives this character?":                        {},
	"What do they want, and what stands in their way?":   {},
	"What happens in this scene?":                        {},
	"What is this place known for?":                      {},
	"What changed after this event?":                     {},
	"Who lives here?":                                    {},
	"Who are they before the story begins?":              {},
	"How did they get here?":                             {},
	"How does this event shape what comes next?":         {},
	"Where does this take place?":                        {},
	"Describe the setting...":                            {},
	"Describe their appearance...":                       {},
	"Describe what makes this location memorable...":     {},
	"Add notes, ideas, or anything else worth keeping.":  {},
	"Upload a map or sketch to bring this place to life": {},
}

var questionPrefixes = []string{"What ", "How ", "Who ", "Where "}

// IsEmptyOrTemplate reports whether a field holds no real content:
// blank, a catalogued template prompt, or text shaped like one
// (question-prefix ending in "?", "Describe " ending in "...", or any
// mention of "Upload a map"). Applied per field, never per node.
func IsEmptyOrTemplate(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return true
	}
	if _, ok := templatePrompts[t]; ok {
		return true
	}
	if strings.HasSuffix(t, "?") {
		for _, p := range questionPrefixes {
			if strings.HasPrefix(t, p) {
				return true
			}
		}
	}
	if strings.HasPrefix(t, "Describe ") && strings.HasSuffix(t, "...") {
		return true
	}
	if strings.Contains(t, "Upload a map") {
		return true
	}
	return false
}

// nodeFields returns the exportable prose fields of a node, in the
// order formatters render them.
func nodeFields(n canvas.Node) []string {
	switch n.Type {
	case canvas.NodeCharacter:
		return []string{n.Role, n.Description, n.Backstory}
	case canvas.NodeEvent:
		return []string{n.Summary, n.Description, n.DurationText}
	case canvas.NodeLocation:
		return []string{n.Description, n.Content}
	case canvas.NodeText, canvas.NodeCompactText:
		return []string{n.Content, n.Description}
	}
	return []string{n.Content, n.Description}
}

// NodeHasContent reports whether any of a node's own prose fields
// survives the placeholder filter.
func NodeHasContent(n canvas.Node) bool {
	for _, f := range nodeFields(n) {
		if !IsEmptyOrTemplate(f) {
			return true
		}
	}
	return false
}

// tableHasContent reports whether any cell in any row holds a real
// value. Checkbox glyphs count as empty.
func tableHasContent(n canvas.Node) bool {
	for _, row := range n.TableData {
		for _, key := range row.Keys() {
			if key == "id" || strings.HasPrefix(key, "_") {
				continue
			}
			if !CellIsEmpty(row.Get(key)) {
				return true
			}
		}
	}
	return false
}

// CellIsEmpty is the table-cell variant of the placeholder predicate:
// unchecked/checked checkbox glyphs are treated as no content.
func CellIsEmpty(v string) bool {
	t := strings.TrimSpace(v)
	if t == "☐" || t == "☑" {
		return true
	}
	return IsEmptyOrTemplate(t)
}

func relationshipHasContent(n canvas.Node) bool {
	return n.RelationshipData != nil && len(n.RelationshipData.Relationships) > 0
}

// HasRealContent reports whether a collected tree contains anything a
// formatter would emit. It composes recursively: a folder holding only
// placeholder-filled characters has no real content.
func (c *Content) HasRealContent() bool {
	if c == nil {
		return false
	}
	for _, e := range c.Characters {
		if NodeHasContent(e.Node) || e.SubContent.HasRealContent() {
			return true
		}
	}
	for _, e := range c.Events {
		if NodeHasContent(e.Node) || e.SubContent.HasRealContent() {
			return true
		}
	}
	for _, e := range c.Locations {
		if NodeHasContent(e.Node) || e.SubContent.HasRealContent() {
			return true
		}
	}
	for _, n := range c.TextNotes {
		if NodeHasContent(n) {
			return true
		}
	}
	for _, n := range c.Tables {
		if tableHasContent(n) {
			return true
		}
	}
	for _, n := range c.RelationshipNodes {
		if relationshipHasContent(n) {
			return true
		}
	}
	for _, e := range c.Folders {
		if e.Children.HasRealContent() {
			return true
		}
	}
	return false
}

// Emittable reports whether a node plus its collected subtree clears
// the bar for a heading: a non-empty display name and at least one
// real field of its own or of a descendant.
func Emittable(n canvas.Node, sub *Content) bool {
	if strings.TrimSpace(n.DisplayName()) == "" {
		return false
	}
	if NodeHasContent(n) {
		return true
	}
	switch n.Type {
	case canvas.NodeTable:
		return tableHasContent(n)
	case canvas.NodeRelationship:
		return relationshipHasContent(n)
	}
	return sub.HasRealContent()
}
