package services

import (
	"context"

	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/query"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type SubmissionServiceDB interface {
	CreateSubmissionDB(ctx context.Context, submission *models.Submission) error
	GetSubmissionDB(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	SaveSubmissionDB(ctx context.Context, submission *models.Submission) error
	SearchSubmissionsDB(ctx context.Context, q string) ([]models.Submission, error)
	ListSubmissionsByStatusDB(ctx context.Context, status models.SubmissionStatus, page query.Page) ([]models.Submission, int64, error)
	ListPendingDB(ctx context.Context) ([]models.Submission, error)
	ListPendingBySubmitterDB(ctx context.Context, submitterID uuid.UUID) ([]models.Submission, error)
	FindAcceptedByDOIDB(ctx context.Context, doi string, excludeID uuid.UUID) ([]models.Submission, error)
	ListAcceptedWithTitleDB(ctx context.Context, excludeID uuid.UUID) ([]models.Submission, error)
}

type DefaultSubmissionService struct {
	db *gorm.DB
}

func NewSubmissionServiceDB(db *gorm.DB) SubmissionServiceDB {
	return &DefaultSubmissionService{db: db}
}

func (s *DefaultSubmissionService) CreateSubmissionDB(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Create(submission).Error
}

// GetSubmissionDB returns gorm.ErrRecordNotFound when no submission has id.
func (s *DefaultSubmissionService) GetSubmissionDB(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *DefaultSubmissionService) SaveSubmissionDB(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Save(submission).Error
}

func (s *DefaultSubmissionService) SearchSubmissionsDB(ctx context.Context, q string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.WithContext(ctx).Scopes(query.SubmissionSearch(q)).Find(&submissions).Error
	return submissions, err
}

// ListSubmissionsByStatusDB runs the page query and the total count concurrently.
func (s *DefaultSubmissionService) ListSubmissionsByStatusDB(ctx context.Context, status models.SubmissionStatus, page query.Page) ([]models.Submission, int64, error) {
	var (
		submissions []models.Submission
		total       int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Select(models.SubmissionListColumns).
			Scopes(query.WithStatus(status), query.NewestFirst(), query.Paginate(page)).
			Find(&submissions).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Model(&models.Submission{}).
			Scopes(query.WithStatus(status)).
			Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

func (s *DefaultSubmissionService) ListPendingDB(ctx context.Context) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.WithContext(ctx).
		Scopes(query.WithStatus(models.StatusPending), query.NewestFirst()).
		Find(&submissions).Error
	return submissions, err
}

func (s *DefaultSubmissionService) ListPendingBySubmitterDB(ctx context.Context, submitterID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.WithContext(ctx).
		Scopes(query.WithStatus(models.StatusPending), query.SubmittedBy(submitterID), query.NewestFirst()).
		Find(&submissions).Error
	return submissions, err
}

func (s *DefaultSubmissionService) FindAcceptedByDOIDB(ctx context.Context, doi string, excludeID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.WithContext(ctx).
		Select(models.DuplicateCandidateColumns).
		Scopes(query.AcceptedExcluding(excludeID), query.DOIEquals(doi), query.OldestFirst()).
		Find(&submissions).Error
	return submissions, err
}

func (s *DefaultSubmissionService) ListAcceptedWithTitleDB(ctx context.Context, excludeID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.WithContext(ctx).
		Select(models.DuplicateCandidateColumns).
		Scopes(query.AcceptedExcluding(excludeID), query.HasTitle(), query.OldestFirst()).
		Find(&submissions).Error
	return submissions, err
}
