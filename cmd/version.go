package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spigell/applicant-ranker/internal/store"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the default model location",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)

		if dir, err := store.DefaultDir(); err == nil {
			fmt.Printf("default model: %s\n", filepath.Join(dir, store.FileName))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
