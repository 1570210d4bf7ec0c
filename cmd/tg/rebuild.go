package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/config"
	"github.com/thorne/topograph/internal/storage"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query cache from the flat files",
	Long: `Rebuild the query cache from the flat files.

The cache is an ephemeral SQLite database powering get and search; the CSV
files stay the source of truth and the cache can be rebuilt at any time.`,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Nodes  int    `json:"nodes"`
	Path   string `json:"path"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	g, _, _ := loadGraph(root, cfg)

	// The cache dir may be absent in a fresh clone.
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache dir: %v", err)
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromGraph(g)
	if err != nil {
		exitWithError(ExitError, "rebuilding cache: %v", err)
	}

	if humanOutput {
		outputHuman("Rebuilt cache with %d nodes at %s\n", n, config.DBPath(root))
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Nodes: n, Path: config.DBPath(root)})
	}
	return nil
}
