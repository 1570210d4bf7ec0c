package main

import (
	"encoding/csv"
	"os"

	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/importer"
	"github.com/thorne/topograph/internal/link"
)

var dedupeWrite bool

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeWrite, "write", false, "Rewrite the links file with duplicates removed")
	rootCmd.AddCommand(dedupeCmd)
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Find and remove exact duplicate links",
	Long: `Find and remove exact duplicate links.

An exact duplicate repeats the full (source, target, relation type) tuple.
Links over the same topic pair with different relation types are reported
as conflicts but never removed automatically.

Examples:
  tg dedupe
  tg dedupe --write`,
	RunE: runDedupe,
}

// DedupeResult is the response for the dedupe command.
type DedupeResult struct {
	Status    string              `json:"status"`
	Links     int                 `json:"links"`
	Removed   int                 `json:"removed"`
	Conflicts []link.PairConflict `json:"pair_conflicts,omitempty"`
}

func runDedupe(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	ds, err := loadDataset(root, cfg)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	seen := make(map[link.LinkKey]bool, len(ds.Links))
	kept := make([]link.Link, 0, len(ds.Links))
	for _, l := range ds.Links {
		if seen[l.Identity()] {
			continue
		}
		seen[l.Identity()] = true
		kept = append(kept, l)
	}
	removed := len(ds.Links) - len(kept)

	result := DedupeResult{
		Status:    "checked",
		Links:     len(kept),
		Removed:   removed,
		Conflicts: link.FindPairConflicts(kept),
	}

	if dedupeWrite && removed > 0 {
		if err := writeLinksCSV(cfg.LinksPath(root), kept); err != nil {
			exitWithError(ExitError, "rewriting links: %v", err)
		}
		result.Status = "rewritten"
	}

	if humanOutput {
		outputHuman("Links: %d (%d duplicates removed)\n", result.Links, result.Removed)
		for _, c := range result.Conflicts {
			outputHuman("  conflicting pair: %s/%s is both %q and %q\n",
				c.A.SourceID, c.A.TargetID, c.A.RelationType, c.B.RelationType)
		}
	} else {
		outputJSON(result)
	}
	return nil
}

// writeLinksCSV writes links back in the input table shape.
func writeLinksCSV(path string, links []link.Link) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{importer.ColSourceIndex, importer.ColTargetIndex, importer.ColRelationType}); err != nil {
		return err
	}
	for _, l := range links {
		if err := w.Write([]string{l.SourceID, l.TargetID, l.RelationType}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
