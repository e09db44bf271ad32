package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "giscleanup",
	Short: "giscleanup - GIS organization content cleanup",
	Long: `giscleanup audits a GIS organization for long-inactive users and their
stale content, exports human-reviewable CSV artifacts, and only removes
flagged items after an explicit two-step confirmation.`,
	Version: Version,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(auditCmd)
}
