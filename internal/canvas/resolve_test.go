package canvas

import "testing"

func TestNestedCanvasID_RuleTable(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{"folder with link", Node{ID: "f1", Type: NodeFolder, LinkedCanvasID: "plot-canvas"}, "plot-canvas"},
		{"folder without link", Node{ID: "f2", Type: NodeFolder}, "folder-canvas-f2"},
		{"character", Node{ID: "c1", Type: NodeCharacter}, "character-canvas-c1"},
		{"event", Node{ID: "e1", Type: NodeEvent}, "event-canvas-e1"},
		{"location", Node{ID: "l1", Type: NodeLocation}, "location-canvas-l1"},
		{"text", Node{ID: "t1", Type: NodeText}, ""},
		{"table", Node{ID: "tb1", Type: NodeTable}, ""},
		{"image", Node{ID: "i1", Type: NodeImage}, ""},
		{"unknown", Node{ID: "x1", Type: NodeType("sticker")}, ""},
	}
	for _, tc := range cases {
		if got := NestedCanvasID(tc.node); got != tc.want {
			t.Errorf("%s: NestedCanvasID = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNestedCanvasID_Idempotent(t *testing.T) {
	n := Node{ID: "c9", Type: NodeCharacter}
	first := NestedCanvasID(n)
	second := NestedCanvasID(n)
	if first != second {
		t.Errorf("resolution not stable: %q then %q", first, second)
	}
}
