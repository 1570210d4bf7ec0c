package main

import (
	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/config"
	"github.com/thorne/topograph/internal/storage"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <identifier>",
	Short: "Show a topic with its edges and URLs",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

// GetResult is the response for the get command.
type GetResult struct {
	Node  *storage.NodeRow  `json:"node"`
	Edges []storage.EdgeRow `json:"edges,omitempty"`
}

func runGet(cmd *cobra.Command, args []string) error {
	id := args[0]

	root := mustFindRepository()

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening cache (run tg rebuild first): %v", err)
	}
	defer db.Close()

	node, err := db.GetNode(id)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if node == nil {
		exitWithError(ExitDataError, "topic %s not found (cache stale? run tg rebuild)", id)
	}

	edges, err := db.EdgesFor(id)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		outputJSON(GetResult{Node: node, Edges: edges})
		return nil
	}

	outputHuman("%s  %s\n", node.ID, node.Title)
	if node.Description != "" {
		outputHuman("  %s\n", truncateString(node.Description, 70))
	}
	for _, u := range node.URLs {
		outputHuman("  url: %s\n", u)
	}
	for _, e := range edges {
		outputHuman("  %s -> %s (%s)\n", e.SourceID, e.TargetID, e.RelationType)
	}
	return nil
}
