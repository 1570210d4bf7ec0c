package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	root := t.TempDir()

	cfg, err := Init(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TopicsFile != DefaultTopicsFile || cfg.Layout != "force" {
		t.Errorf("cfg = %+v", cfg)
	}

	if !IsRepository(root) {
		t.Error("IsRepository = false after Init")
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestInit_AlreadyInitialized(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root); err != nil {
		t.Fatal(err)
	}
	if _, err := Init(root); err == nil {
		t.Error("second Init succeeded, want error")
	}
}

func TestFindRepository(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root); err != nil {
		t.Fatal(err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRepository(nested)
	if err != nil {
		t.Fatal(err)
	}
	// Resolve symlinks to compare (macOS tempdirs live under /private).
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(found)
	if gotRoot != wantRoot {
		t.Errorf("FindRepository = %q, want %q", gotRoot, wantRoot)
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Error("expected error outside a repository")
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := &Config{TopicsFile: "data/topics.csv"}
	if got := cfg.TopicsPath("/repo"); got != filepath.Join("/repo", "data/topics.csv") {
		t.Errorf("TopicsPath = %q", got)
	}
	// Unset fields fall back to defaults.
	if got := cfg.LinksPath("/repo"); got != filepath.Join("/repo", DefaultLinksFile) {
		t.Errorf("LinksPath = %q", got)
	}
}
