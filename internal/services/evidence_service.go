package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/broker"
	"speed_go_backend/internal/utils/query"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CreateEvidenceInput struct {
	SubmissionID       string  `json:"submissionId" binding:"required"`
	SEPractice         string  `json:"sePractice" binding:"required"`
	Claim              string  `json:"claim" binding:"required"`
	ResultOfEvidence   string  `json:"resultOfEvidence" binding:"required"`
	TypeOfResearch     string  `json:"typeOfResearch"`
	TypeOfParticipants string  `json:"typeOfParticipants"`
	StrengthOfEvidence string  `json:"strengthOfEvidence"`
	AnalystNotes       string  `json:"analystNotes"`
	ExtractedText      *string `json:"extractedText"`
}

func (in CreateEvidenceInput) validate() error {
	switch {
	case strings.TrimSpace(in.SEPractice) == "":
		return errors.New400Error("sePractice is required")
	case strings.TrimSpace(in.Claim) == "":
		return errors.New400Error("claim is required")
	case !models.EvidenceResult(in.ResultOfEvidence).Valid():
		return errors.New400Errorf("invalid resultOfEvidence %q", in.ResultOfEvidence)
	case in.TypeOfResearch != "" && !models.ResearchType(in.TypeOfResearch).Valid():
		return errors.New400Errorf("invalid typeOfResearch %q", in.TypeOfResearch)
	case in.TypeOfParticipants != "" && !models.ParticipantType(in.TypeOfParticipants).Valid():
		return errors.New400Errorf("invalid typeOfParticipants %q", in.TypeOfParticipants)
	case utf8.RuneCountInString(in.AnalystNotes) > models.MaxAnalystNotesLength:
		return errors.New400Errorf("analystNotes must be at most %d characters", models.MaxAnalystNotesLength)
	case in.ExtractedText != nil && utf8.RuneCountInString(*in.ExtractedText) > models.MaxExtractedTextLength:
		return errors.New400Errorf("extractedText must be at most %d characters", models.MaxExtractedTextLength)
	}
	return nil
}

type EvidencePage struct {
	Evidence    []models.EvidenceEntry `json:"evidence"`
	Total       int64                  `json:"total"`
	CurrentPage int                    `json:"currentPage"`
	TotalPages  int                    `json:"totalPages"`
}

type EvidenceService struct {
	submissions  SubmissionServiceDB
	evidence     EvidenceServiceDB
	publisher    EventPublisher
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewEvidenceService(submissions SubmissionServiceDB, evidence EvidenceServiceDB, publisher EventPublisher, defaultLimit, maxLimit int) *EvidenceService {
	return &EvidenceService{
		submissions:  submissions,
		evidence:     evidence,
		publisher:    publisher,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

// CreateEvidence attaches an analyst's finding to an accepted submission and
// moves the submission to Analyzed. Both writes commit together, and only
// while the stored submission is still Accepted.
func (s *EvidenceService) CreateEvidence(ctx context.Context, input CreateEvidenceInput, analystID string) (*models.EvidenceEntry, error) {
	submissionID, err := uuid.Parse(strings.TrimSpace(input.SubmissionID))
	if err != nil {
		return nil, errors.New400Errorf("invalid submission id %q", input.SubmissionID)
	}
	analyst, err := uuid.Parse(strings.TrimSpace(analystID))
	if err != nil {
		return nil, errors.New400Errorf("invalid analyst id %q", analystID)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	submission, err := loadSubmission(ctx, s.submissions, submissionID.String())
	if err != nil {
		return nil, err
	}
	if submission.Status != models.StatusAccepted {
		return nil, errors.NewStateConflictError(fmt.Sprintf("evidence can only be added to Accepted submissions, this one is %s", submission.Status))
	}

	now := s.now()
	if input.ExtractedText != nil {
		submission.ExtractedText = *input.ExtractedText
	}
	submission.Status = models.StatusAnalyzed
	submission.ModeratedBy = &analyst
	submission.ModeratedAt = &now

	entry := &models.EvidenceEntry{
		SubmissionID:       submission.ID,
		SEPractice:         strings.TrimSpace(input.SEPractice),
		Claim:              strings.TrimSpace(input.Claim),
		ResultOfEvidence:   models.EvidenceResult(input.ResultOfEvidence),
		TypeOfResearch:     models.ResearchType(input.TypeOfResearch),
		TypeOfParticipants: models.ParticipantType(input.TypeOfParticipants),
		StrengthOfEvidence: strings.TrimSpace(input.StrengthOfEvidence),
		AnalystNotes:       strings.TrimSpace(input.AnalystNotes),
		AnalyzedBy:         analyst,
	}
	if err := s.evidence.AttachEvidenceDB(ctx, submission, entry); err != nil {
		if stderrors.Is(err, ErrSubmissionNotAccepted) {
			return nil, errors.NewStateConflictError("submission changed state while evidence was being attached")
		}
		return nil, errors.New500Error(fmt.Errorf("failed to attach evidence: %w", err))
	}

	evidenceEntriesCreated.Inc()
	zerolog.Ctx(ctx).Info().
		Str("submission_id", submission.ID.String()).
		Str("evidence_id", entry.ID.String()).
		Msg("Evidence attached")
	publishSubmissionEvent(ctx, s.publisher, broker.EventAnalyzed, submission, now)
	return entry, nil
}

func (s *EvidenceService) GetEvidenceBySubmission(ctx context.Context, submissionID string) ([]models.EvidenceEntry, error) {
	id, err := uuid.Parse(strings.TrimSpace(submissionID))
	if err != nil {
		return nil, errors.New400Errorf("invalid submission id %q", submissionID)
	}
	entries, err := s.evidence.GetEvidenceBySubmissionDB(ctx, id)
	if err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to load evidence: %w", err))
	}
	return nonNil(entries), nil
}

// SearchEvidence pages through evidence matching the filter. An empty filter
// returns an empty page without touching the store.
func (s *EvidenceService) SearchEvidence(ctx context.Context, filter query.EvidenceFilter, page, limit int) (*EvidencePage, error) {
	p := query.NewPage(page, limit, s.defaultLimit, s.maxLimit)
	if filter.Empty() {
		return &EvidencePage{Evidence: []models.EvidenceEntry{}, CurrentPage: p.Page}, nil
	}

	entries, total, err := s.evidence.SearchEvidenceDB(ctx, filter.Normalized(), p)
	if err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to search evidence: %w", err))
	}
	return &EvidencePage{
		Evidence:    nonNil(entries),
		Total:       total,
		CurrentPage: p.Page,
		TotalPages:  query.TotalPages(total, p.Limit),
	}, nil
}
