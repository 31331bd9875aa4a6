package main

import (
	"speed_go_backend/internal/database"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the tables and search indexes.

The API server runs the same migration at startup; use this command to
prepare a database ahead of a deploy.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, db := openDB()
	if err := database.Migrate(db); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if humanOutput {
		outputHuman("Schema is up to date\n")
		return nil
	}
	return outputJSON(StatusResponse{Status: "migrated"})
}
