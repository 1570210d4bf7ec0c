package graph

import (
	"github.com/thorne/topograph/internal/identifier"
)

// Stats summarizes a built graph for reporting.
type Stats struct {
	Nodes       int            `json:"nodes"`
	NodesByTier map[int]int    `json:"nodes_by_tier"`
	Edges       int            `json:"edges"`
	ByCategory  map[string]int `json:"edges_by_category"`
	ByRelation  map[string]int `json:"edges_by_relation_type"`
	URLs        int            `json:"urls"`
	Components  int            `json:"components"`
}

// ComputeStats walks the graph once and tallies counts by tier, category,
// and relation type.
func (g *Graph) ComputeStats() Stats {
	s := Stats{
		Nodes:       len(g.Nodes),
		NodesByTier: make(map[int]int),
		Edges:       len(g.Edges),
		ByCategory:  make(map[string]int),
		ByRelation:  make(map[string]int),
		Components:  len(g.Components()),
	}
	for _, n := range g.Nodes {
		s.NodesByTier[identifier.Tier(n.ID)]++
		s.URLs += len(n.URLs)
	}
	for _, e := range g.Edges {
		s.ByCategory[e.Category]++
		s.ByRelation[e.RelationType]++
		s.URLs += len(e.URLs)
	}
	return s
}
