package services

import (
	"context"
	"testing"
	"time"

	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/broker"
	"speed_go_backend/internal/utils/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSubmissionService(db *MockSubmissionServiceDB, publisher EventPublisher) *SubmissionService {
	s := NewSubmissionService(db, publisher, 10, 100)
	s.now = func() time.Time { return fixedNow }
	return s
}

func validCreateInput() CreateSubmissionInput {
	year := 2000
	return CreateSubmissionInput{
		Title:           " Strengthening the Case for Pair Programming ",
		Authors:         []string{"Laurie Williams", " Robert Kessler "},
		BibtexEntryType: "ARTICLE",
		Year:            &year,
		Journal:         "IEEE Software",
		DOI:             "10.1109/52.854064",
		URL:             "https://doi.org/10.1109/52.854064",
	}
}

func TestCreateSubmission(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	publisher := new(MockPublisher)
	submitter := uuid.New()
	db.On("CreateSubmissionDB", mock.Anything, mock.AnythingOfType("*models.Submission")).Return(nil)
	publisher.On("Publish", broker.TopicSubmissions, mock.MatchedBy(func(e broker.Event) bool {
		return e.Type == broker.EventSubmitted && e.Status == "pending"
	})).Return(0)

	got, err := newTestSubmissionService(db, publisher).CreateSubmission(context.Background(), validCreateInput(), &submitter)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, "Strengthening the Case for Pair Programming", got.Title)
	assert.Equal(t, []string{"Laurie Williams", "Robert Kessler"}, []string(got.Authors))
	assert.Equal(t, submitter, *got.SubmitterID)
	assert.Empty(t, got.EditHistory)
	db.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateSubmissionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateSubmissionInput)
	}{
		{"missing title", func(in *CreateSubmissionInput) { in.Title = "  " }},
		{"no authors", func(in *CreateSubmissionInput) { in.Authors = nil }},
		{"blank author", func(in *CreateSubmissionInput) { in.Authors = []string{"A", " "} }},
		{"missing journal", func(in *CreateSubmissionInput) { in.Journal = "" }},
		{"missing doi", func(in *CreateSubmissionInput) { in.DOI = "" }},
		{"missing entry type", func(in *CreateSubmissionInput) { in.BibtexEntryType = "" }},
		{"relative url", func(in *CreateSubmissionInput) { in.URL = "/papers/1" }},
		{"long abstract", func(in *CreateSubmissionInput) { in.Abstract = string(make([]rune, models.MaxAbstractLength+1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockSubmissionServiceDB)
			input := validCreateInput()
			tt.mutate(&input)

			_, err := newTestSubmissionService(db, nil).CreateSubmission(context.Background(), input, nil)

			assert.True(t, errors.Is(err, errors.ErrorTypeBadRequest))
			db.AssertNotCalled(t, "CreateSubmissionDB", mock.Anything, mock.Anything)
		})
	}
}

func TestSearchSubmissionsBlankQuery(t *testing.T) {
	db := new(MockSubmissionServiceDB)

	got, err := newTestSubmissionService(db, nil).SearchSubmissions(context.Background(), "   ")
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	db.AssertNotCalled(t, "SearchSubmissionsDB", mock.Anything, mock.Anything)
}

func TestSearchSubmissions(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	found := []models.Submission{*submissionWithStatus(models.StatusAccepted)}
	db.On("SearchSubmissionsDB", mock.Anything, "pair (programming)").Return(found, nil)

	got, err := newTestSubmissionService(db, nil).SearchSubmissions(context.Background(), " pair (programming) ")
	require.NoError(t, err)
	assert.Equal(t, found, got)
}

func TestFindByStatus(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	db.On("ListSubmissionsByStatusDB", mock.Anything, models.StatusAccepted, query.Page{Page: 3, Limit: 10}).
		Return([]models.Submission{}, int64(23), nil)

	got, err := newTestSubmissionService(db, nil).FindByStatus(context.Background(), "ACCEPTED", 3, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(23), got.Total)
	assert.Equal(t, 3, got.CurrentPage)
	assert.Equal(t, 3, got.TotalPages)
	assert.NotNil(t, got.Submissions)
}

func TestFindByStatusClampsLimit(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	db.On("ListSubmissionsByStatusDB", mock.Anything, models.StatusPending, query.Page{Page: 1, Limit: 100}).
		Return(nil, int64(0), nil)

	got, err := newTestSubmissionService(db, nil).FindByStatus(context.Background(), "pending", -2, 5000)
	require.NoError(t, err)

	assert.Equal(t, 1, got.CurrentPage)
	assert.Equal(t, 0, got.TotalPages)
	assert.Equal(t, []models.Submission{}, got.Submissions)
}

func TestFindByStatusInvalid(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	svc := newTestSubmissionService(db, nil)

	_, err := svc.FindByStatus(context.Background(), "archived", 1, 10)
	assert.True(t, errors.Is(err, errors.ErrorTypeBadRequest))
	_, err = svc.FindByStatus(context.Background(), "", 1, 10)
	assert.True(t, errors.Is(err, errors.ErrorTypeBadRequest))
	db.AssertNotCalled(t, "ListSubmissionsByStatusDB", mock.Anything, mock.Anything, mock.Anything)
}

func TestEditSubmissionAfterModerationIsForbidden(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	owner := uuid.New()
	submission := submissionWithStatus(models.StatusAccepted)
	submission.SubmitterID = &owner
	db.On("GetSubmissionDB", mock.Anything, submission.ID).Return(submission, nil)

	title := "New title"
	_, err := newTestSubmissionService(db, nil).EditSubmission(context.Background(), submission.ID.String(), EditSubmissionInput{Title: &title}, owner)

	assert.True(t, errors.Is(err, errors.ErrorTypeStateConflict))
	assert.Empty(t, submission.EditHistory)
	db.AssertNotCalled(t, "SaveSubmissionDB", mock.Anything, mock.Anything)
}

func TestEditSubmissionRecordsHistory(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	owner := uuid.New()
	year := 1999
	submission := submissionWithStatus(models.StatusPending)
	submission.SubmitterID = &owner
	submission.Year = &year
	db.On("GetSubmissionDB", mock.Anything, submission.ID).Return(submission, nil)
	db.On("SaveSubmissionDB", mock.Anything, mock.AnythingOfType("*models.Submission")).Return(nil)

	title := "Pair Programming Improves Code Quality, Revisited"
	authors := []string{"L. Williams", "R. Kessler"}
	newYear := 2000
	got, err := newTestSubmissionService(db, nil).EditSubmission(context.Background(), submission.ID.String(),
		EditSubmissionInput{Title: &title, Authors: &authors, Year: &newYear}, owner)
	require.NoError(t, err)

	assert.Equal(t, title, got.Title)
	assert.Equal(t, authors, []string(got.Authors))
	assert.Equal(t, 2000, *got.Year)
	require.Len(t, got.EditHistory, 1)
	snap := got.EditHistory[0]
	assert.Equal(t, fixedNow, snap.EditedAt)
	assert.Equal(t, "Pair Programming Improves Code Quality", snap.Previous.Title)
	assert.Equal(t, []string{"L. Williams"}, snap.Previous.Authors)
	assert.Equal(t, 1999, *snap.Previous.Year)
	assert.Equal(t, "10.1109/52.854064", snap.Previous.DOI)
}

func TestEditSubmissionByOtherUser(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	owner := uuid.New()
	submission := submissionWithStatus(models.StatusPending)
	submission.SubmitterID = &owner
	db.On("GetSubmissionDB", mock.Anything, submission.ID).Return(submission, nil)

	title := "Hijacked"
	_, err := newTestSubmissionService(db, nil).EditSubmission(context.Background(), submission.ID.String(), EditSubmissionInput{Title: &title}, uuid.New())

	assert.True(t, errors.Is(err, errors.ErrorTypeForbidden))
	db.AssertNotCalled(t, "SaveSubmissionDB", mock.Anything, mock.Anything)
}

func TestEditSubmissionWithoutFields(t *testing.T) {
	db := new(MockSubmissionServiceDB)

	_, err := newTestSubmissionService(db, nil).EditSubmission(context.Background(), uuid.New().String(), EditSubmissionInput{}, uuid.New())
	assert.True(t, errors.Is(err, errors.ErrorTypeBadRequest))
}

func TestListPendingBySubmitter(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	submitter := uuid.New()
	db.On("ListPendingBySubmitterDB", mock.Anything, submitter).Return(nil, nil)
	svc := newTestSubmissionService(db, nil)

	got, err := svc.ListPendingBySubmitter(context.Background(), submitter.String())
	require.NoError(t, err)
	assert.Equal(t, []models.Submission{}, got)

	_, err = svc.ListPendingBySubmitter(context.Background(), "abc")
	assert.True(t, errors.Is(err, errors.ErrorTypeBadRequest))
}

func TestParseBibTeXErrors(t *testing.T) {
	svc := newTestSubmissionService(new(MockSubmissionServiceDB), nil)

	_, err := svc.ParseBibTeX("  ")
	assert.True(t, errors.Is(err, errors.ErrorTypeBadRequest))
	_, err = svc.ParseBibTeX("no entries here")
	assert.True(t, errors.Is(err, errors.ErrorTypeBadRequest))
}
