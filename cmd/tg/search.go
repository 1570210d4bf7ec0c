package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/config"
	"github.com/thorne/topograph/internal/storage"
)

// DefaultSearchLimit caps search output.
const DefaultSearchLimit = 50

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Full-text search over topic titles and descriptions",
	Long: `Full-text search over topic titles and descriptions.

Examples:
  tg search nyquist
  tg search "impedance matching" --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// SearchResult is the response for the search command.
type SearchResult struct {
	Query   string            `json:"query"`
	Results []storage.NodeRow `json:"results"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	root := mustFindRepository()

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening cache (run tg rebuild first): %v", err)
	}
	defer db.Close()

	results, err := db.Search(query, searchLimit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		outputJSON(SearchResult{Query: query, Results: results})
		return nil
	}

	for _, n := range results {
		outputHuman("%s  %s\n", n.ID, truncateString(n.Title, 70))
	}
	if len(results) == 0 {
		outputHuman("No matches for %q\n", query)
	}
	return nil
}
