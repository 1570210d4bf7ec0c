package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thorne/topograph/internal/config"
	"github.com/thorne/topograph/internal/link"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()

	writeFile(t, filepath.Join(dir, cfg.TopicsFile),
		"Index,Topic,Description / Key Concepts\n"+
			"1,Signals,Continuous and discrete signals\n"+
			"1.1,Sampling,Nyquist rate\n")
	writeFile(t, filepath.Join(dir, cfg.LinksFile),
		"Source Index,Target Index,Relation Type\n"+
			"1.1,1,depends on\n")

	ds, err := loadDataset(dir, cfg)
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}
	if len(ds.Topics) != 2 {
		t.Errorf("topics = %d, want 2", len(ds.Topics))
	}
	if len(ds.Links) != 1 {
		t.Errorf("links = %d, want 1", len(ds.Links))
	}
	// No urls file is a normal empty state, not an error.
	if len(ds.URLs) != 0 {
		t.Errorf("urls = %d, want 0", len(ds.URLs))
	}
	if len(ds.RowErrs) != 0 {
		t.Errorf("row errors = %v, want none", ds.RowErrs)
	}
}

func TestLoadDatasetMissingTopics(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	writeFile(t, filepath.Join(dir, cfg.LinksFile),
		"Source Index,Target Index,Relation Type\n")

	if _, err := loadDataset(dir, cfg); err == nil {
		t.Fatal("expected error for missing topics file")
	}
}

func TestBuildFromDataset(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()

	writeFile(t, filepath.Join(dir, cfg.TopicsFile),
		"Index,Topic,Description / Key Concepts\n"+
			"1,Signals,\n"+
			"1.1,Sampling,\n"+
			"2,Systems,\n")
	writeFile(t, filepath.Join(dir, cfg.LinksFile),
		"Source Index,Target Index,Relation Type\n"+
			"2,1,depends on\n")
	writeFile(t, filepath.Join(dir, cfg.URLsFile),
		"Identifier,URL\n"+
			"1.1,\"https://example.org/sampling\"\n")

	ds, err := loadDataset(dir, cfg)
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}

	g, anomalies := buildFromDataset(ds)
	if len(anomalies) != 0 {
		t.Errorf("anomalies = %v, want none", anomalies)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
	// One explicit link plus one inferred 1.1 -> 1 edge.
	if len(g.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(g.Edges))
	}
	if g.EdgeByKey(link.CompositeKey("1", "1.1", "sub topic")) == nil {
		t.Error("missing inferred hierarchical edge 1 -> 1.1")
	}
	n := g.NodeByID("1.1")
	if n == nil || len(n.URLs) != 1 {
		t.Errorf("node 1.1 urls = %v, want one attached url", n)
	}
}

func TestWriteLinksCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.csv")

	links := []link.Link{
		{SourceID: "1.1", TargetID: "2", RelationType: "depends on"},
		{SourceID: "3", TargetID: "1", RelationType: "extends"},
	}
	if err := writeLinksCSV(path, links); err != nil {
		t.Fatalf("writeLinksCSV: %v", err)
	}

	cfg := config.DefaultConfig()
	writeFile(t, filepath.Join(dir, cfg.TopicsFile),
		"Index,Topic,Description / Key Concepts\n1,A,\n")
	cfg.LinksFile = "links.csv"

	ds, err := loadDataset(dir, cfg)
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}
	if len(ds.Links) != 2 {
		t.Fatalf("links = %d, want 2", len(ds.Links))
	}
	if ds.Links[0] != links[0] || ds.Links[1] != links[1] {
		t.Errorf("round trip changed links: %v", ds.Links)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString(short) = %q", got)
	}
	if got := truncateString("a long description here", 10); got != "a long ..." {
		t.Errorf("truncateString = %q", got)
	}
}
