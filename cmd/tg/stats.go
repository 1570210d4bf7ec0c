package main

import (
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print graph statistics",
	Long:  `Print node, edge, URL, and component counts for the built graph.`,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	g, _, _ := loadGraph(root, cfg)
	s := g.ComputeStats()

	if !humanOutput {
		outputJSON(s)
		return nil
	}

	outputHuman("Nodes: %d\n", s.Nodes)
	for tier := 1; tier <= 3; tier++ {
		outputHuman("  tier %d: %d\n", tier, s.NodesByTier[tier])
	}
	outputHuman("Edges: %d\n", s.Edges)
	for _, cat := range sortedKeys(s.ByCategory) {
		outputHuman("  %s: %d\n", cat, s.ByCategory[cat])
	}
	outputHuman("By relation type:\n")
	for _, rel := range sortedKeys(s.ByRelation) {
		outputHuman("  %s: %d\n", rel, s.ByRelation[rel])
	}
	outputHuman("URLs: %d\n", s.URLs)
	outputHuman("Components: %d\n", s.Components)
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
