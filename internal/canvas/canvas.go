// Package canvas defines the node-and-connection data model shared by
// the store, the collector, and the formatters.
package canvas

// MainCanvasID is the root canvas every story starts from.
const MainCanvasID = "main"

// NodeType discriminates the node tagged union.
type NodeType string

const (
	NodeText         NodeType = "text"
	NodeCompactText  NodeType = "compact-text"
	NodeCharacter    NodeType = "character"
	NodeEvent        NodeType = "event"
	NodeLocation     NodeType = "location"
	NodeFolder       NodeType = "folder"
	NodeList         NodeType = "list"
	NodeImage        NodeType = "image"
	NodeTable        NodeType = "table"
	NodeRelationship NodeType = "relationship-canvas"
)

// Node is one typed entity on a canvas. Only the fields relevant to a
// node's type are populated; the rest stay zero.
type Node struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`

	// Position is used only to derive reading order.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Text        string `json:"text,omitempty"`
	Content     string `json:"content,omitempty"`
	Description string `json:"description,omitempty"`

	// Event fields.
	Title         string `json:"title,omitempty"`
	Summary       string `json:"summary,omitempty"`
	DurationText  string `json:"durationText,omitempty"`
	SequenceOrder *int   `json:"sequenceOrder,omitempty"`

	// Character fields.
	Role      string `json:"role,omitempty"`
	Backstory string `json:"backstory,omitempty"`

	// Folder (and imported legacy nodes) may carry an explicit link to
	// their nested canvas; other container types derive theirs.
	LinkedCanvasID string `json:"linkedCanvasId,omitempty"`

	TableData        []TableRow        `json:"tableData,omitempty"`
	RelationshipData *RelationshipData `json:"relationshipData,omitempty"`
}

// DisplayName is the heading text a node exports under.
func (n Node) DisplayName() string {
	if n.Text != "" {
		return n.Text
	}
	return n.Title
}

// RelationshipData describes a relationship-canvas node's graph.
type RelationshipData struct {
	SelectedCharacters []string       `json:"selectedCharacters,omitempty"`
	Relationships      []Relationship `json:"relationships,omitempty"`
}

// Relationship is one labeled edge between two characters.
type Relationship struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Label         string `json:"label,omitempty"`
	Bidirectional bool   `json:"bidirectional,omitempty"`
}

// Connection is a visual edge between two nodes. The exporter never
// traverses connections; containment drives traversal.
type Connection struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type,omitempty"`
}

// Canvas is a named collection of nodes and connections, the unit of
// storage and of one traversal step.
type Canvas struct {
	ID          string       `json:"canvasId"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Story is the per-story metadata fetched once per export.
type Story struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
}
