package main

import (
	"encoding/json"
	"fmt"
	"os"

	"speed_go_backend/internal/config"
	"speed_go_backend/internal/database"

	"gorm.io/gorm"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// openDB loads configuration and connects, exiting on failure.
func openDB() (*config.Config, *gorm.DB) {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading configuration: %v", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return cfg, db
}
