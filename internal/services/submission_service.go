package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/bibtexparser"
	"speed_go_backend/internal/utils/broker"
	"speed_go_backend/internal/utils/query"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

type CreateSubmissionInput struct {
	Title           string   `json:"title" binding:"required"`
	Authors         []string `json:"authors" binding:"required,min=1"`
	AuthorRaw       string   `json:"authorRaw"`
	BibtexEntryType string   `json:"bibtexEntryType" binding:"required"`
	Year            *int     `json:"year"`
	Journal         string   `json:"journal" binding:"required"`
	Booktitle       string   `json:"booktitle"`
	Publisher       string   `json:"publisher"`
	DOI             string   `json:"doi" binding:"required"`
	URL             string   `json:"url"`
	Volume          string   `json:"volume"`
	Number          string   `json:"number"`
	Pages           string   `json:"pages"`
	Abstract        string   `json:"abstract"`
	RawBibtex       string   `json:"rawBibtex"`
}

// EditSubmissionInput lists the fields an owner may change. Nil fields are
// left as they are.
type EditSubmissionInput struct {
	Title           *string   `json:"title"`
	Authors         *[]string `json:"authors"`
	AuthorRaw       *string   `json:"authorRaw"`
	BibtexEntryType *string   `json:"bibtexEntryType"`
	Year            *int      `json:"year"`
	Journal         *string   `json:"journal"`
	Booktitle       *string   `json:"booktitle"`
	Publisher       *string   `json:"publisher"`
	DOI             *string   `json:"doi"`
	URL             *string   `json:"url"`
	Volume          *string   `json:"volume"`
	Number          *string   `json:"number"`
	Pages           *string   `json:"pages"`
	Abstract        *string   `json:"abstract"`
}

func (in EditSubmissionInput) empty() bool {
	return in.Title == nil && in.Authors == nil && in.AuthorRaw == nil && in.BibtexEntryType == nil &&
		in.Year == nil && in.Journal == nil && in.Booktitle == nil && in.Publisher == nil &&
		in.DOI == nil && in.URL == nil && in.Volume == nil && in.Number == nil &&
		in.Pages == nil && in.Abstract == nil
}

type SubmissionPage struct {
	Submissions []models.Submission `json:"submissions"`
	Total       int64               `json:"total"`
	CurrentPage int                 `json:"currentPage"`
	TotalPages  int                 `json:"totalPages"`
}

type SubmissionService struct {
	submissions  SubmissionServiceDB
	publisher    EventPublisher
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewSubmissionService(submissions SubmissionServiceDB, publisher EventPublisher, defaultLimit, maxLimit int) *SubmissionService {
	return &SubmissionService{
		submissions:  submissions,
		publisher:    publisher,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

func (s *SubmissionService) CreateSubmission(ctx context.Context, input CreateSubmissionInput, submitterID *uuid.UUID) (*models.Submission, error) {
	authors, err := cleanAuthors(input.Authors)
	if err != nil {
		return nil, err
	}
	submission := &models.Submission{
		Title:           strings.TrimSpace(input.Title),
		Authors:         datatypes.JSONSlice[string](authors),
		AuthorRaw:       strings.TrimSpace(input.AuthorRaw),
		BibtexEntryType: strings.TrimSpace(input.BibtexEntryType),
		Year:            input.Year,
		Journal:         strings.TrimSpace(input.Journal),
		Booktitle:       strings.TrimSpace(input.Booktitle),
		Publisher:       strings.TrimSpace(input.Publisher),
		DOI:             strings.TrimSpace(input.DOI),
		URL:             strings.TrimSpace(input.URL),
		Volume:          strings.TrimSpace(input.Volume),
		Number:          strings.TrimSpace(input.Number),
		Pages:           strings.TrimSpace(input.Pages),
		Abstract:        strings.TrimSpace(input.Abstract),
		RawBibtex:       input.RawBibtex,
		Status:          models.StatusPending,
		SubmitterID:     submitterID,
		EditHistory:     datatypes.JSONSlice[models.EditSnapshot]{},
	}
	if err := validateSubmission(submission); err != nil {
		return nil, err
	}

	if err := s.submissions.CreateSubmissionDB(ctx, submission); err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to create submission: %w", err))
	}

	submissionsCreated.Inc()
	zerolog.Ctx(ctx).Info().Str("submission_id", submission.ID.String()).Msg("Submission created")
	publishSubmissionEvent(ctx, s.publisher, broker.EventSubmitted, submission, submission.CreatedAt)
	return submission, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	return loadSubmission(ctx, s.submissions, id)
}

// SearchSubmissions matches q against title, authors, journal, doi and year.
// A blank query matches nothing.
func (s *SubmissionService) SearchSubmissions(ctx context.Context, q string) ([]models.Submission, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.Submission{}, nil
	}
	submissions, err := s.submissions.SearchSubmissionsDB(ctx, q)
	if err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to search submissions: %w", err))
	}
	return nonNil(submissions), nil
}

func (s *SubmissionService) FindByStatus(ctx context.Context, rawStatus string, page, limit int) (*SubmissionPage, error) {
	if strings.TrimSpace(rawStatus) == "" {
		return nil, errors.New400Error("status is required")
	}
	status, ok := models.ParseSubmissionStatus(rawStatus)
	if !ok {
		return nil, errors.New400Errorf("invalid status %q", rawStatus)
	}

	p := query.NewPage(page, limit, s.defaultLimit, s.maxLimit)
	submissions, total, err := s.submissions.ListSubmissionsByStatusDB(ctx, status, p)
	if err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to list submissions: %w", err))
	}
	return &SubmissionPage{
		Submissions: nonNil(submissions),
		Total:       total,
		CurrentPage: p.Page,
		TotalPages:  query.TotalPages(total, p.Limit),
	}, nil
}

func (s *SubmissionService) ListPendingModeration(ctx context.Context) ([]models.Submission, error) {
	submissions, err := s.submissions.ListPendingDB(ctx)
	if err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to list pending submissions: %w", err))
	}
	return nonNil(submissions), nil
}

func (s *SubmissionService) ListPendingBySubmitter(ctx context.Context, submitterID string) ([]models.Submission, error) {
	id, err := uuid.Parse(strings.TrimSpace(submitterID))
	if err != nil {
		return nil, errors.New400Errorf("invalid submitter id %q", submitterID)
	}
	submissions, err := s.submissions.ListPendingBySubmitterDB(ctx, id)
	if err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to list pending submissions: %w", err))
	}
	return nonNil(submissions), nil
}

// EditSubmission applies an owner's changes to a pending submission after
// recording the previous bibliographic core in the edit history.
func (s *SubmissionService) EditSubmission(ctx context.Context, id string, input EditSubmissionInput, editorID uuid.UUID) (*models.Submission, error) {
	if input.empty() {
		return nil, errors.New400Error("no fields to update")
	}
	submission, err := loadSubmission(ctx, s.submissions, id)
	if err != nil {
		return nil, err
	}
	if submission.Status != models.StatusPending {
		return nil, errors.NewStateConflictError(fmt.Sprintf("submission is %s and can no longer be edited", submission.Status))
	}
	if submission.SubmitterID == nil || *submission.SubmitterID != editorID {
		return nil, errors.New403Error("only the submitter can edit this submission")
	}

	updated := *submission
	if err := applyEdit(&updated, input); err != nil {
		return nil, err
	}
	if err := validateSubmission(&updated); err != nil {
		return nil, err
	}

	now := s.now()
	history := make(datatypes.JSONSlice[models.EditSnapshot], 0, len(submission.EditHistory)+1)
	history = append(history, submission.EditHistory...)
	updated.EditHistory = append(history, submission.Snapshot(now))

	if err := s.submissions.SaveSubmissionDB(ctx, &updated); err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to save submission: %w", err))
	}

	submissionsEdited.Inc()
	zerolog.Ctx(ctx).Info().
		Str("submission_id", updated.ID.String()).
		Int("revisions", len(updated.EditHistory)).
		Msg("Submission edited")
	publishSubmissionEvent(ctx, s.publisher, broker.EventEdited, &updated, now)
	return &updated, nil
}

// ParseBibTeX turns the first entry of a BibTeX document into a form draft.
func (s *SubmissionService) ParseBibTeX(content string) (*bibtexparser.Draft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New400Error("bibtex content is required")
	}
	draft, err := bibtexparser.ParseDraft(content)
	if err != nil {
		if stderrors.Is(err, bibtexparser.ErrNoEntries) {
			return nil, errors.New400Error("no BibTeX entries found")
		}
		return nil, errors.New400Errorf("invalid BibTeX: %v", err)
	}
	return draft, nil
}

func applyEdit(s *models.Submission, in EditSubmissionInput) error {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&s.Title, in.Title)
	setString(&s.AuthorRaw, in.AuthorRaw)
	setString(&s.BibtexEntryType, in.BibtexEntryType)
	setString(&s.Journal, in.Journal)
	setString(&s.Booktitle, in.Booktitle)
	setString(&s.Publisher, in.Publisher)
	setString(&s.DOI, in.DOI)
	setString(&s.URL, in.URL)
	setString(&s.Volume, in.Volume)
	setString(&s.Number, in.Number)
	setString(&s.Pages, in.Pages)
	setString(&s.Abstract, in.Abstract)
	if in.Year != nil {
		year := *in.Year
		s.Year = &year
	}
	if in.Authors != nil {
		authors, err := cleanAuthors(*in.Authors)
		if err != nil {
			return err
		}
		s.Authors = datatypes.JSONSlice[string](authors)
	}
	return nil
}

func validateSubmission(s *models.Submission) error {
	switch {
	case s.Title == "":
		return errors.New400Error("title is required")
	case len(s.Authors) == 0:
		return errors.New400Error("at least one author is required")
	case s.BibtexEntryType == "":
		return errors.New400Error("bibtexEntryType is required")
	case s.Journal == "":
		return errors.New400Error("journal is required")
	case s.DOI == "":
		return errors.New400Error("doi is required")
	case s.Year != nil && *s.Year < 1:
		return errors.New400Error("year must be a positive integer")
	case utf8.RuneCountInString(s.Abstract) > models.MaxAbstractLength:
		return errors.New400Errorf("abstract must be at most %d characters", models.MaxAbstractLength)
	}
	if s.URL != "" {
		u, err := url.ParseRequestURI(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New400Error("url must be an absolute URL")
		}
	}
	return nil
}

func cleanAuthors(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, errors.New400Error("at least one author is required")
	}
	authors := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" {
			return nil, errors.New400Error("author names must not be empty")
		}
		authors = append(authors, a)
	}
	return authors, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
