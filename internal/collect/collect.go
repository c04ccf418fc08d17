// Package collect walks a canvas hierarchy and aggregates its nodes
// into the typed-bucket tree consumed by every formatter.
package collect

import (
	"github.com/dgallion1/canvasdoc/internal/canvas"
)

// Content is the collector's output for one canvas and everything
// nested transitively under it. Character/event/location/folder
// entries each carry their own recursively collected subtree, so
// Content is a tree of unbounded but terminating depth.
type Content struct {
	Characters        []CharacterEntry
	Events            []EventEntry
	Locations         []LocationEntry
	TextNotes         []canvas.Node
	Tables            []canvas.Node
	RelationshipNodes []canvas.Node
	Folders           []FolderEntry

	// AllNodes records every node seen on this canvas in reading
	// order, including types (lists, images) no formatter surfaces.
	AllNodes []canvas.Node
}

// CharacterEntry pairs a character node with its nested canvas content.
type CharacterEntry struct {
	Node       canvas.Node
	SubContent *Content
}

// EventEntry pairs an event node with its nested canvas content.
type EventEntry struct {
	Node       canvas.Node
	SubContent *Content
}

// LocationEntry pairs a location node with its nested canvas content.
type LocationEntry struct {
	Node       canvas.Node
	SubContent *Content
}

// FolderEntry pairs a folder node with its collected children. Children
// is always non-nil, empty when the folder has no registered canvas.
type FolderEntry struct {
	Node     canvas.Node
	Children *Content
}

// Collect recursively aggregates a canvas and its nested canvases.
//
// The visited set carries the ids of ancestor canvases: a canvas seen
// on the current descent path contributes empty content instead of
// recursing, which cuts cycles. Each descent passes a clone of the
// set, so sibling branches independently re-discover a shared nested
// canvas rather than one branch blocking the other. A nil visited set
// starts a fresh traversal.
func Collect(c canvas.Canvas, all map[string]canvas.Canvas, visited map[string]bool) *Content {
	content := &Content{}
	if visited[c.ID] {
		return content
	}

	for _, n := range canvas.SortNodesByPosition(c.Nodes) {
		content.AllNodes = append(content.AllNodes, n)

		switch n.Type {
		case canvas.NodeCharacter:
			content.Characters = append(content.Characters, CharacterEntry{
				Node:       n,
				SubContent: collectNested(n, c.ID, all, visited),
			})
		case canvas.NodeEvent:
			content.Events = append(content.Events, EventEntry{
				Node:       n,
				SubContent: collectNested(n, c.ID, all, visited),
			})
		case canvas.NodeLocation:
			content.Locations = append(content.Locations, LocationEntry{
				Node:       n,
				SubContent: collectNested(n, c.ID, all, visited),
			})
		case canvas.NodeFolder:
			content.Folders = append(content.Folders, FolderEntry{
				Node:     n,
				Children: collectNested(n, c.ID, all, visited),
			})
		case canvas.NodeText, canvas.NodeCompactText:
			content.TextNotes = append(content.TextNotes, n)
		case canvas.NodeTable:
			content.Tables = append(content.Tables, n)
		case canvas.NodeRelationship:
			content.RelationshipNodes = append(content.RelationshipNodes, n)
		case canvas.NodeList, canvas.NodeImage:
			// Present in AllNodes only; no exportable prose.
		default:
			// Unknown node types are skipped so new editor types never
			// break existing exports.
		}
	}

	SortEventsByAge(content.Events)
	return content
}

// collectNested resolves and collects a node's nested canvas, handing
// the child a cloned visited set extended with the current canvas id.
func collectNested(n canvas.Node, currentID string, all map[string]canvas.Canvas, visited map[string]bool) *Content {
	id := canvas.NestedCanvasID(n)
	if id == "" {
		return &Content{}
	}
	child, ok := all[id]
	if !ok {
		return &Content{}
	}
	return Collect(child, all, branch(visited, currentID))
}

func branch(visited map[string]bool, id string) map[string]bool {
	next := make(map[string]bool, len(visited)+1)
	for k := range visited {
		next[k] = true
	}
	next[id] = true
	return next
}
