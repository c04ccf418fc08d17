package collect

import (
	"testing"

	"github.com/dgallion1/canvasdoc/internal/canvas"
)

func TestIsEmptyOrTemplate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   \n\t", true},
		{"What drives this character?", true},
		{"Who lives here?", true},
		// Pattern rules catch uncatalogued template variants.
		{"What color is the sky in this world?", true},
		{"How fast can the courier travel?", true},
		{"Where was the treaty signed?", true},
		{"Describe the smell of the harbor...", true},
		{"Please Upload a map of the region", true},
		// Real content survives.
		{"Wants revenge", false},
		{"What a strange town this is.", false}, // question prefix but no trailing ?
		{"Describe is what witnesses did.", false},
		{"He asked: how did they get here?", false}, // suffix without prefix
	}
	for _, tc := range cases {
		if got := IsEmptyOrTemplate(tc.in); got != tc.want {
			t.Errorf("IsEmptyOrTemplate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsEmptyOrTemplate_CatalogueIsExactMatch(t *testing.T) {
	// Authored text that starts like a catalogued prompt but continues
	// differently must not be dropped.
	s := "What drives this character? Greed, mostly."
	if IsEmptyOrTemplate(s) {
		t.Errorf("legitimately authored text was classified as template: %q", s)
	}
}

func TestNodeHasContent_PerFieldNotPerNode(t *testing.T) {
	n := canvas.Node{
		Type:        canvas.NodeCharacter,
		Role:        "Protagonist",
		Description: "What drives this character?",
	}
	if !NodeHasContent(n) {
		t.Error("node with one real field should have content")
	}

	empty := canvas.Node{
		Type:        canvas.NodeCharacter,
		Description: "What drives this character?",
	}
	if NodeHasContent(empty) {
		t.Error("placeholder-only node should have no content")
	}
}

func TestCellIsEmpty_CheckboxGlyphs(t *testing.T) {
	if !CellIsEmpty("☐") || !CellIsEmpty("☑") {
		t.Error("checkbox glyphs should count as empty cells")
	}
	if CellIsEmpty("done") {
		t.Error("real cell value reported empty")
	}
}

func TestHasRealContent_ComposesRecursively(t *testing.T) {
	emptyChar := CharacterEntry{
		Node:       canvas.Node{Type: canvas.NodeCharacter, Text: "Ghost", Description: "What drives this character?"},
		SubContent: &Content{},
	}
	folder := &Content{
		Folders: []FolderEntry{{
			Node:     canvas.Node{Type: canvas.NodeFolder, Text: "Cast"},
			Children: &Content{Characters: []CharacterEntry{emptyChar}},
		}},
	}
	if folder.HasRealContent() {
		t.Error("folder of placeholder-only characters should have no real content")
	}

	folder.Folders[0].Children.Characters[0].Node.Backstory = "Died twice already"
	if !folder.HasRealContent() {
		t.Error("real descendant field should make the tree real")
	}
}

func TestEmittable_RequiresDisplayName(t *testing.T) {
	n := canvas.Node{Type: canvas.NodeCharacter, Description: "Wants revenge"}
	if Emittable(n, &Content{}) {
		t.Error("node without a display name must not be emitted")
	}
	n.Text = "Hero"
	if !Emittable(n, &Content{}) {
		t.Error("named node with real content should be emitted")
	}
}

func TestEmittable_ContainerWithRealDescendant(t *testing.T) {
	folder := canvas.Node{ID: "f1", Type: canvas.NodeFolder, Text: "Plot"}
	children := &Content{
		Events: []EventEntry{{
			Node:       canvas.Node{Type: canvas.NodeEvent, Text: "Age 5", Summary: "Learns magic"},
			SubContent: &Content{},
		}},
	}
	if !Emittable(folder, children) {
		t.Error("empty folder with a real descendant should be emitted")
	}
	if Emittable(folder, &Content{}) {
		t.Error("folder with no content anywhere should not be emitted")
	}
}
