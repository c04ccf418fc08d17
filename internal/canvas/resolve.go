package canvas

// NestedCanvasID returns the id of the canvas a node owns, or "" when
// the node type has no nested canvas. The mapping is pure: it depends
// only on the node's fields, so the same node always resolves to the
// same id and re-traversal is idempotent. Existence of the resolved
// canvas is the caller's concern.
func NestedCanvasID(n Node) string {
	switch n.Type {
	case NodeFolder:
		if n.LinkedCanvasID != "" {
			return n.LinkedCanvasID
		}
		return "folder-canvas-" + n.ID
	case NodeCharacter:
		return "character-canvas-" + n.ID
	case NodeEvent:
		return "event-canvas-" + n.ID
	case NodeLocation:
		return "location-canvas-" + n.ID
	}
	return ""
}
