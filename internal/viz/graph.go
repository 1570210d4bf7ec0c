package viz

import (
	"github.com/thorne/topograph/internal/graph"
	"github.com/thorne/topograph/internal/identifier"
)

// FromGraph converts the built graph into visualization form. The renderer
// owns layout; this conversion only carries display attributes.
func FromGraph(g *graph.Graph) *GraphData {
	data := &GraphData{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		data.Nodes = append(data.Nodes, newNode(n))
	}
	for _, e := range g.Edges {
		data.Edges = append(data.Edges, Edge{
			Source:       e.SourceID,
			Target:       e.TargetID,
			RelationType: e.RelationType,
			Category:     e.Category,
			URLs:         e.URLs,
		})
	}
	return data
}

// newNode creates a visualization node from a graph node.
func newNode(n *graph.Node) Node {
	label := n.Title
	if label == "" {
		label = n.ID
	}
	return Node{
		ID:          n.ID,
		Label:       label,
		Description: n.Description,
		URLs:        n.URLs,
		Tier:        identifier.Tier(n.ID),
	}
}
