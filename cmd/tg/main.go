// Package main provides the tg CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tg",
	Short: "Topic knowledge graph toolkit",
	Long: `tg builds, checks, and visualizes a topic knowledge graph kept in
flat CSV files.

Topics carry dotted hierarchical identifiers (1, 1.1, 1.1.2); parent/child
edges are inferred from the identifiers, so links.csv only needs the
relationships the naming convention cannot express. Resource URLs attach to
topics or to specific edges and round-trip through urls.csv. All commands
output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
