package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/export"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all resource URLs to tabular form",
	Long: `Export all resource URLs to tabular form.

Flattens every node and edge URL back into Identifier,URL rows in the same
shape as urls.csv, so the output can be used as the next load's input.

Examples:
  tg export > urls.csv
  tg export -o urls.csv`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	g, _, _ := loadGraph(root, cfg)

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			exitWithError(ExitError, "creating %s: %v", exportOutput, err)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteURLs(out, g); err != nil {
		exitWithError(ExitError, "exporting urls: %v", err)
	}

	if exportOutput != "" {
		if humanOutput {
			outputHuman("Exported urls to %s\n", exportOutput)
		} else {
			outputJSON(StatusResponse{Status: "exported", Path: exportOutput})
		}
	}
	return nil
}
