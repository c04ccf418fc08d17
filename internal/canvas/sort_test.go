package canvas

import "testing"

func TestSortNodesByPosition_TopToBottom(t *testing.T) {
	nodes := []Node{
		{ID: "low", Y: 300, X: 0},
		{ID: "high", Y: 10, X: 500},
		{ID: "mid", Y: 150, X: 250},
	}
	sorted := SortNodesByPosition(nodes)
	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].ID, id)
		}
	}
}

func TestSortNodesByPosition_ToleranceBandUsesX(t *testing.T) {
	// y differs by 30 (inside the 50-unit band), so x decides even
	// though the higher node has the larger x.
	nodes := []Node{
		{ID: "a", Y: 100, X: 50},
		{ID: "b", Y: 130, X: 10},
	}
	sorted := SortNodesByPosition(nodes)
	if sorted[0].ID != "b" {
		t.Errorf("expected smaller-x node first within the band, got %q", sorted[0].ID)
	}
	if sorted[1].ID != "a" {
		t.Errorf("expected %q second, got %q", "a", sorted[1].ID)
	}
}

func TestSortNodesByPosition_OutsideBandUsesY(t *testing.T) {
	nodes := []Node{
		{ID: "a", Y: 100, X: 50},
		{ID: "b", Y: 151, X: 10},
	}
	sorted := SortNodesByPosition(nodes)
	if sorted[0].ID != "a" {
		t.Errorf("expected smaller-y node first outside the band, got %q", sorted[0].ID)
	}
}

func TestSortNodesByPosition_DoesNotMutateInput(t *testing.T) {
	nodes := []Node{
		{ID: "a", Y: 200},
		{ID: "b", Y: 0},
	}
	SortNodesByPosition(nodes)
	if nodes[0].ID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestSortNodesByPosition_StableWithinRow(t *testing.T) {
	nodes := []Node{
		{ID: "first", Y: 100, X: 20},
		{ID: "second", Y: 120, X: 20},
	}
	sorted := SortNodesByPosition(nodes)
	if sorted[0].ID != "first" || sorted[1].ID != "second" {
		t.Errorf("equal-x nodes in one row should keep input order, got %q, %q", sorted[0].ID, sorted[1].ID)
	}
}
