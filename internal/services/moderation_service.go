package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/broker"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ModerationInput struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejectionReason"`
	DuplicateOfID   string `json:"duplicateOfId"`
}

type ModerationDetails struct {
	Submission          *models.Submission   `json:"submission"`
	PotentialDuplicates []DuplicateCandidate `json:"potentialDuplicates"`
}

type ModerationService struct {
	submissions SubmissionServiceDB
	detector    *DuplicateDetector
	publisher   EventPublisher
	corpusName  string
	now         func() time.Time
}

func NewModerationService(submissions SubmissionServiceDB, detector *DuplicateDetector, publisher EventPublisher, corpusName string) *ModerationService {
	return &ModerationService{
		submissions: submissions,
		detector:    detector,
		publisher:   publisher,
		corpusName:  strings.ToLower(strings.TrimSpace(corpusName)),
		now:         time.Now,
	}
}

// DetailsForModeration loads a submission with its ranked potential duplicates.
func (s *ModerationService) DetailsForModeration(ctx context.Context, id string) (*ModerationDetails, error) {
	submission, err := loadSubmission(ctx, s.submissions, id)
	if err != nil {
		return nil, err
	}
	duplicates, err := s.detector.FindPotentialDuplicates(ctx, submission.ID, submission.Title, submission.DOI)
	if err != nil {
		return nil, errors.New500Error(err)
	}
	return &ModerationDetails{Submission: submission, PotentialDuplicates: duplicates}, nil
}

// Moderate accepts or rejects a submission. Re-applying the current
// non-pending status returns the record untouched.
func (s *ModerationService) Moderate(ctx context.Context, id string, input ModerationInput, moderatorID string) (*models.Submission, error) {
	target := models.SubmissionStatus(strings.TrimSpace(input.Status))
	if target != models.StatusAccepted && target != models.StatusRejected {
		return nil, errors.New400Errorf("status must be %q or %q", models.StatusAccepted, models.StatusRejected)
	}

	submission, err := loadSubmission(ctx, s.submissions, id)
	if err != nil {
		return nil, err
	}

	if submission.Status == target && submission.Status != models.StatusPending {
		return submission, nil
	}
	if submission.Status == models.StatusAnalyzed {
		return nil, errors.NewStateConflictError("Analyzed submissions cannot be moderated")
	}

	reason := strings.TrimSpace(input.RejectionReason)
	if target == models.StatusRejected {
		if reason == "" {
			return nil, errors.New400Error("rejectionReason is required when rejecting a submission")
		}
		submission.RejectionReason = reason
		submission.IsDuplicateOf = nil
		if s.isDuplicateReason(reason) {
			if dupID, err := uuid.Parse(strings.TrimSpace(input.DuplicateOfID)); err == nil && dupID != submission.ID {
				submission.IsDuplicateOf = &dupID
			}
		}
	} else {
		submission.RejectionReason = ""
		submission.IsDuplicateOf = nil
	}

	now := s.now()
	submission.Status = target
	submission.ModeratedAt = &now
	if modID, err := uuid.Parse(strings.TrimSpace(moderatorID)); err == nil {
		submission.ModeratedBy = &modID
	}

	if err := s.submissions.SaveSubmissionDB(ctx, submission); err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to save moderation decision: %w", err))
	}

	moderationDecisions.WithLabelValues(string(target)).Inc()
	zerolog.Ctx(ctx).Info().
		Str("submission_id", submission.ID.String()).
		Str("status", string(target)).
		Bool("duplicate", submission.IsDuplicateOf != nil).
		Msg("Submission moderated")
	publishSubmissionEvent(ctx, s.publisher, broker.EventModerated, submission, now)
	return submission, nil
}

func (s *ModerationService) isDuplicateReason(reason string) bool {
	r := strings.ToLower(reason)
	if strings.Contains(r, "duplicate") {
		return true
	}
	return s.corpusName != "" && strings.Contains(r, "already in "+s.corpusName)
}

// loadSubmission resolves a path id into a submission, mapping malformed ids
// and missing rows onto client errors.
func loadSubmission(ctx context.Context, db SubmissionServiceDB, id string) (*models.Submission, error) {
	submissionID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, errors.New400Errorf("invalid submission id %q", id)
	}
	submission, err := db.GetSubmissionDB(ctx, submissionID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New404Error(fmt.Sprintf("submission %s not found", submissionID))
		}
		return nil, errors.New500Error(fmt.Errorf("failed to load submission: %w", err))
	}
	return submission, nil
}
