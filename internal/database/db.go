package database

import (
	"fmt"

	"speed_go_backend/internal/config"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/query"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema, including the full-text index
// backing keyword search over submissions.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Submission{}, &models.EvidenceEntry{}); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_submissions_fulltext ON submissions USING GIN (" + query.SubmissionTextVector + ")",
		"CREATE INDEX IF NOT EXISTS idx_evidence_entries_se_practice_lower ON evidence_entries (lower(se_practice))",
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
