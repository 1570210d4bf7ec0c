package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/export"
)

func init() {
	urlCmd.AddCommand(urlAddCmd)
	urlCmd.AddCommand(urlListCmd)
	rootCmd.AddCommand(urlCmd)
}

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Manage resource URLs attached to topics and edges",
}

var urlAddCmd = &cobra.Command{
	Use:   "add <identifier> <url>",
	Short: "Attach a URL to a topic or edge",
	Long: `Attach a URL to a topic or edge.

The identifier is a topic identifier or a composite edge key
(source|target|relation type). The URL must be absolute. The updated urls
table is written back to the configured urls file.

Examples:
  tg url add 1.1 https://example.org/sampling
  tg url add "1|1.1|sub topic" https://example.org/edge-note`,
	Args: cobra.ExactArgs(2),
	RunE: runURLAdd,
}

// URLAddResult is the response for url add.
type URLAddResult struct {
	Status     string   `json:"status"`
	Identifier string   `json:"identifier"`
	URLs       []string `json:"urls"`
}

func runURLAdd(cmd *cobra.Command, args []string) error {
	identifier, rawURL := args[0], args[1]

	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	g, _, _ := loadGraph(root, cfg)

	if err := g.AppendURL(identifier, rawURL); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	// Persist by re-exporting the whole urls table.
	f, err := os.Create(cfg.URLsPath(root))
	if err != nil {
		exitWithError(ExitError, "writing urls file: %v", err)
	}
	defer f.Close()
	if err := export.WriteURLs(f, g); err != nil {
		exitWithError(ExitError, "writing urls file: %v", err)
	}

	urls := g.Index().URLsFor(identifier)
	if humanOutput {
		outputHuman("Attached %s to %s (%d total)\n", rawURL, identifier, len(urls))
	} else {
		outputJSON(URLAddResult{Status: "added", Identifier: identifier, URLs: urls})
	}
	return nil
}

var urlListCmd = &cobra.Command{
	Use:   "list <identifier>",
	Short: "List the URLs attached to a topic or edge",
	Args:  cobra.ExactArgs(1),
	RunE:  runURLList,
}

// URLListResult is the response for url list.
type URLListResult struct {
	Identifier string   `json:"identifier"`
	URLs       []string `json:"urls"`
}

func runURLList(cmd *cobra.Command, args []string) error {
	identifier := args[0]

	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	g, _, _ := loadGraph(root, cfg)

	urls := g.Index().URLsFor(identifier)
	if humanOutput {
		if len(urls) == 0 {
			outputHuman("No urls for %s\n", identifier)
		}
		for _, u := range urls {
			outputHuman("%s\n", u)
		}
	} else {
		outputJSON(URLListResult{Identifier: identifier, URLs: urls})
	}
	return nil
}
