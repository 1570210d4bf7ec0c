package main

import (
	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/graph"
	"github.com/thorne/topograph/internal/importer"
	"github.com/thorne/topograph/internal/link"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify dataset integrity",
	Long: `Verify dataset integrity.

Reports skipped input rows, duplicate topic identifiers, links referencing
missing topics, duplicate links, unresolvable url identifiers, and
disconnected graph components.`,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status     string              `json:"status"`
	Topics     int                 `json:"topics"`
	Edges      int                 `json:"edges"`
	Components int                 `json:"components"`
	RowErrors  []importer.RowError `json:"row_errors,omitempty"`
	Anomalies  []graph.Anomaly     `json:"anomalies,omitempty"`
	Duplicates []link.LinkKey      `json:"duplicate_links,omitempty"`
	Conflicts  []link.PairConflict `json:"pair_conflicts,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	ds, err := loadDataset(root, cfg)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	g, anomalies := buildFromDataset(ds)

	var dupKeys []link.LinkKey
	for key := range link.FindDuplicateLinks(ds.Links) {
		dupKeys = append(dupKeys, key)
	}

	result := CheckResult{
		Status:     "ok",
		Topics:     len(g.Nodes),
		Edges:      len(g.Edges),
		Components: len(g.Components()),
		RowErrors:  ds.RowErrs,
		Anomalies:  anomalies,
		Duplicates: dupKeys,
		Conflicts:  link.FindPairConflicts(ds.Links),
	}
	if len(result.RowErrors) > 0 || len(result.Anomalies) > 0 ||
		len(result.Duplicates) > 0 || len(result.Conflicts) > 0 {
		result.Status = "issues"
	}

	if humanOutput {
		outputHuman("Topics: %d  Edges: %d  Components: %d\n", result.Topics, result.Edges, result.Components)
		for _, e := range result.RowErrors {
			outputHuman("  skipped %v\n", e)
		}
		for _, a := range result.Anomalies {
			outputHuman("  anomaly: %s\n", a)
		}
		for _, d := range result.Duplicates {
			outputHuman("  duplicate link: %s -> %s (%s)\n", d.SourceID, d.TargetID, d.RelationType)
		}
		for _, c := range result.Conflicts {
			outputHuman("  conflicting pair: %s/%s is both %q and %q\n",
				c.A.SourceID, c.A.TargetID, c.A.RelationType, c.B.RelationType)
		}
	} else {
		outputJSON(result)
	}
	return nil
}
