package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/thorne/topograph/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a topograph repository in the current directory",
	Long: `Initialize a topograph repository in the current directory.

Creates the .topograph directory with a default configuration pointing at
topics.csv, links.csv, and urls.csv.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if _, err := config.Init(cwd); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		outputHuman("Initialized topograph repository in %s\n", config.TopographPath(cwd))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.TopographPath(cwd)})
	}
	return nil
}
