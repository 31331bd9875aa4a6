// Package main provides the speedctl admin CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "speedctl",
	Short: "Administer the SPEED evidence database",
	Long: `speedctl runs maintenance tasks against the SPEED database: schema
migration, account administration and duplicate inspection.

It reads the same environment (and optional .env file) as the API server.
Commands print JSON unless --human is given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
