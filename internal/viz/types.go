// Package viz renders the topic graph as a self-contained HTML page.
package viz

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a topic in the rendered graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Tooltip fields
	Description string   `json:"description,omitempty"`
	URLs        []string `json:"urls,omitempty"`

	// Display tier derived from identifier depth (1..3); drives radius
	// and outline.
	Tier int `json:"tier"`
}

// Edge represents a topic relationship in the rendered graph.
type Edge struct {
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	RelationType string   `json:"relationType"`
	Category     string   `json:"category"`
	URLs         []string `json:"urls,omitempty"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
