package collect

import (
	"github.com/dgallion1/canvasdoc/internal/canvas"
)

// HierarchyEntry is one visited canvas in depth-first pre-order.
type HierarchyEntry struct {
	CanvasID    string `json:"canvas_id"`
	Depth       int    `json:"depth"`
	ParentTitle string `json:"parent_title"`
}

// BuildHierarchy walks the canvas forest from startID and returns the
// flat visitation order. Unlike Collect, the visited set here is
// shared across the whole walk: each canvas appears exactly once even
// when two nodes resolve to it, which keeps the listing finite and
// duplicate-free for diagnostics.
func BuildHierarchy(all map[string]canvas.Canvas, startID string) []HierarchyEntry {
	if startID == "" {
		startID = canvas.MainCanvasID
	}
	var out []HierarchyEntry
	visited := make(map[string]bool)

	var walk func(id string, depth int, parentTitle string)
	walk = func(id string, depth int, parentTitle string) {
		if visited[id] {
			return
		}
		c, ok := all[id]
		if !ok {
			return
		}
		visited[id] = true
		out = append(out, HierarchyEntry{CanvasID: id, Depth: depth, ParentTitle: parentTitle})

		for _, n := range canvas.SortNodesByPosition(c.Nodes) {
			childID := canvas.NestedCanvasID(n)
			if childID == "" {
				continue
			}
			title := n.Text
			if title == "" {
				title = string(n.Type)
			}
			walk(childID, depth+1, title)
		}
	}
	walk(startID, 0, "")
	return out
}
