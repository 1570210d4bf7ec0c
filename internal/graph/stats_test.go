package graph

import (
	"testing"

	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/resource"
)

func TestComputeStats(t *testing.T) {
	links := []link.Link{
		{SourceID: "2", TargetID: "1.1", RelationType: "depends on"},
	}
	idx := resource.BuildIndex([]resource.Record{
		{Identifier: "1", URL: "https://a.test"},
		{Identifier: "1|1.1|sub topic", URL: "https://b.test"},
	})
	g, _ := Build(topics("1", "1.1", "1.1.2", "2"), links, idx)

	s := g.ComputeStats()

	if s.Nodes != 4 || s.Edges != 3 {
		t.Errorf("nodes/edges = %d/%d, want 4/3", s.Nodes, s.Edges)
	}
	if s.NodesByTier[1] != 2 || s.NodesByTier[2] != 1 || s.NodesByTier[3] != 1 {
		t.Errorf("tiers = %v", s.NodesByTier)
	}
	if s.ByCategory[CategoryDependency] != 1 || s.ByCategory[CategoryHierarchical] != 2 {
		t.Errorf("categories = %v", s.ByCategory)
	}
	if s.ByRelation["sub topic"] != 2 || s.ByRelation["depends on"] != 1 {
		t.Errorf("relations = %v", s.ByRelation)
	}
	if s.URLs != 2 {
		t.Errorf("urls = %d, want 2", s.URLs)
	}
	if s.Components != 1 {
		t.Errorf("components = %d, want 1", s.Components)
	}
}
