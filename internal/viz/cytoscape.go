package viz

import (
	"encoding/json"
	"fmt"

	"github.com/thorne/topograph/internal/link"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data Node `json:"data"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Target       string   `json:"target"`
	RelationType string   `json:"relationType"`
	Relation     string   `json:"relation"` // classified label, drives styling
	Category     string   `json:"category"`
	URLs         []string `json:"urls,omitempty"`
}

// ToCytoscapeJSON converts GraphData to Cytoscape.js JSON format.
func (g *GraphData) ToCytoscapeJSON() (string, error) {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: n})
	}

	for i, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:           elementID(e.Source, e.Target, e.RelationType, i),
				Source:       e.Source,
				Target:       e.Target,
				RelationType: e.RelationType,
				Relation:     link.ClassifyRelation(e.RelationType).String(),
				Category:     e.Category,
				URLs:         e.URLs,
			},
		})
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// elementID generates a unique edge element ID for the current
// visualization session. IDs are based on slice position and are not stable
// across different graph builds.
func elementID(source, target, relType string, index int) string {
	return fmt.Sprintf("%s-%s-%s-%d", source, target, relType, index)
}
