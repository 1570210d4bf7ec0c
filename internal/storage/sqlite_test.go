package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/thorne/topograph/internal/graph"
	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/resource"
	"github.com/thorne/topograph/internal/topic"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func rebuiltDB(t *testing.T) *DB {
	t.Helper()
	topics := []topic.Topic{
		{ID: "1", Title: "Signals", Description: "Time and frequency domain basics"},
		{ID: "1.1", Title: "Sampling", Description: "Nyquist rate and aliasing"},
		{ID: "2", Title: "Antennas"},
	}
	links := []link.Link{
		{SourceID: "2", TargetID: "1", RelationType: "depends on"},
	}
	idx := resource.BuildIndex([]resource.Record{
		{Identifier: "1.1", URL: "https://a.test/sampling"},
		{Identifier: "1.1", URL: "https://b.test/nyquist"},
	})
	g, anomalies := graph.Build(topics, links, idx)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}

	db := openTestDB(t)
	n, err := db.RebuildFromGraph(g)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("rebuilt %d nodes, want 3", n)
	}
	return db
}

func TestRebuildWithExplicitSubTopicLink(t *testing.T) {
	// A spelled-out sub topic link collapses with its inferred twin during
	// the build, so the edges primary key holds.
	links := []link.Link{
		{SourceID: "1", TargetID: "1.1", RelationType: "sub topic"},
	}
	g, _ := graph.Build([]topic.Topic{{ID: "1"}, {ID: "1.1"}}, links, nil)

	db := openTestDB(t)
	if _, err := db.RebuildFromGraph(g); err != nil {
		t.Fatalf("RebuildFromGraph: %v", err)
	}

	edges, err := db.EdgesFor("1")
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 1 {
		t.Errorf("edges = %v, want one", edges)
	}
}

func TestGetNode(t *testing.T) {
	db := rebuiltDB(t)

	n, err := db.GetNode("1.1")
	if err != nil {
		t.Fatal(err)
	}
	if n == nil {
		t.Fatal("node 1.1 not found")
	}
	if n.Title != "Sampling" || n.Tier != 2 {
		t.Errorf("node = %+v", n)
	}
	want := []string{"https://a.test/sampling", "https://b.test/nyquist"}
	if !reflect.DeepEqual(n.URLs, want) {
		t.Errorf("urls = %v, want %v", n.URLs, want)
	}
}

func TestGetNode_Absent(t *testing.T) {
	db := rebuiltDB(t)

	n, err := db.GetNode("9.9")
	if err != nil {
		t.Fatal(err)
	}
	if n != nil {
		t.Errorf("GetNode(absent) = %+v, want nil", n)
	}
}

func TestEdgesFor(t *testing.T) {
	db := rebuiltDB(t)

	edges, err := db.EdgesFor("1")
	if err != nil {
		t.Fatal(err)
	}
	// The dependency edge from 2 plus the inferred hierarchical edge to 1.1.
	if len(edges) != 2 {
		t.Fatalf("edges = %+v, want 2", edges)
	}
	byKey := map[string]EdgeRow{}
	for _, e := range edges {
		byKey[e.CompositeKey] = e
	}
	if e, ok := byKey["1|1.1|sub topic"]; !ok || e.Category != graph.CategoryHierarchical {
		t.Errorf("hierarchical edge = %+v", e)
	}
	if e, ok := byKey["2|1|depends on"]; !ok || e.Category != graph.CategoryDependency {
		t.Errorf("dependency edge = %+v", e)
	}
}

func TestSearch(t *testing.T) {
	db := rebuiltDB(t)

	results, err := db.Search("aliasing", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "1.1" {
		t.Errorf("results = %+v, want node 1.1", results)
	}
}

func TestSearch_QuotedSpecialChars(t *testing.T) {
	db := rebuiltDB(t)

	// Operator characters must not break the MATCH expression.
	if _, err := db.Search(`"antennas" AND`, 10); err != nil {
		t.Errorf("special-character query errored: %v", err)
	}
}

func TestRebuild_Idempotent(t *testing.T) {
	db := rebuiltDB(t)

	g, _ := graph.Build([]topic.Topic{{ID: "5", Title: "New"}}, nil, nil)
	n, err := db.RebuildFromGraph(g)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rebuilt %d nodes, want 1", n)
	}

	// Previous contents are gone.
	old, err := db.GetNode("1")
	if err != nil {
		t.Fatal(err)
	}
	if old != nil {
		t.Errorf("stale node survived rebuild: %+v", old)
	}
}
