package services

import (
	"context"
	"errors"
	"fmt"

	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/query"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type EvidenceServiceDB interface {
	AttachEvidenceDB(ctx context.Context, submission *models.Submission, entry *models.EvidenceEntry) error
	GetEvidenceBySubmissionDB(ctx context.Context, submissionID uuid.UUID) ([]models.EvidenceEntry, error)
	SearchEvidenceDB(ctx context.Context, filter query.EvidenceFilter, page query.Page) ([]models.EvidenceEntry, int64, error)
}

type DefaultEvidenceService struct {
	db *gorm.DB
}

func NewEvidenceServiceDB(db *gorm.DB) EvidenceServiceDB {
	return &DefaultEvidenceService{db: db}
}

// ErrSubmissionNotAccepted is returned by AttachEvidenceDB when the
// submission left Accepted before the transition could be written.
var ErrSubmissionNotAccepted = errors.New("submission is no longer Accepted")

// AttachEvidenceDB moves the submission from Accepted to the analyzed state
// and inserts the entry in one transaction. The status update is conditional
// on the stored row still being Accepted, so concurrent attaches produce
// exactly one entry.
func (s *DefaultEvidenceService) AttachEvidenceDB(ctx context.Context, submission *models.Submission, entry *models.EvidenceEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", submission.ID, models.StatusAccepted).
			Updates(analyzedColumns(submission))
		if result.Error != nil {
			return fmt.Errorf("failed to update submission: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSubmissionNotAccepted
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create evidence entry: %w", err)
		}
		return nil
	})
}

func analyzedColumns(submission *models.Submission) map[string]interface{} {
	return map[string]interface{}{
		"status":         submission.Status,
		"extracted_text": submission.ExtractedText,
		"moderated_by":   submission.ModeratedBy,
		"moderated_at":   submission.ModeratedAt,
	}
}

func (s *DefaultEvidenceService) GetEvidenceBySubmissionDB(ctx context.Context, submissionID uuid.UUID) ([]models.EvidenceEntry, error) {
	var entries []models.EvidenceEntry
	err := s.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Scopes(query.NewestFirst()).
		Find(&entries).Error
	return entries, err
}

func (s *DefaultEvidenceService) SearchEvidenceDB(ctx context.Context, filter query.EvidenceFilter, page query.Page) ([]models.EvidenceEntry, int64, error) {
	var (
		entries []models.EvidenceEntry
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Scopes(query.EvidenceSearch(filter), query.NewestFirst(), query.Paginate(page)).
			Preload("Submission", func(db *gorm.DB) *gorm.DB {
				return db.Select(models.SubmissionSummaryColumns)
			}).
			Find(&entries).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Model(&models.EvidenceEntry{}).
			Scopes(query.EvidenceSearch(filter)).
			Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
