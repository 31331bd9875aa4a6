package services

import (
	"context"
	"fmt"
	"testing"

	"speed_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFindPotentialDuplicatesByDOI(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	exclude := uuid.New()
	upper := acceptedSubmission("Some Study", "10.1/X")
	lower := acceptedSubmission("Another Study", "10.1/x")
	db.On("FindAcceptedByDOIDB", mock.Anything, "10.1/x", exclude).Return([]models.Submission{upper, lower}, nil)

	got, err := NewDuplicateDetector(db).FindPotentialDuplicates(context.Background(), exclude, "", "10.1/X ")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, upper.ID, got[0].ID)
	assert.Equal(t, lower.ID, got[1].ID)
	for _, c := range got {
		assert.Equal(t, 1.0, c.SimilarityScore)
	}
	db.AssertNotCalled(t, "ListAcceptedWithTitleDB", mock.Anything, mock.Anything)
}

func TestFindPotentialDuplicatesByTitle(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	exclude := uuid.New()
	match := acceptedSubmission("Pair programming improves code quality!!", "")
	unrelated := acceptedSubmission("Test driven development", "")
	db.On("ListAcceptedWithTitleDB", mock.Anything, exclude).Return([]models.Submission{unrelated, match}, nil)

	got, err := NewDuplicateDetector(db).FindPotentialDuplicates(context.Background(), exclude, "Pair Programming Improves Code Quality", "  ")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
	assert.Equal(t, 1.0, got[0].SimilarityScore)
	assert.Equal(t, models.StatusAccepted, got[0].Status)
	db.AssertNotCalled(t, "FindAcceptedByDOIDB", mock.Anything, mock.Anything, mock.Anything)
}

func TestFindPotentialDuplicatesSkipsShortTitles(t *testing.T) {
	db := new(MockSubmissionServiceDB)

	got, err := NewDuplicateDetector(db).FindPotentialDuplicates(context.Background(), uuid.New(), "Go", "")
	require.NoError(t, err)

	assert.Empty(t, got)
	db.AssertNotCalled(t, "ListAcceptedWithTitleDB", mock.Anything, mock.Anything)
}

func TestFindPotentialDuplicatesIgnoresShortStoredTitles(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	exclude := uuid.New()
	db.On("ListAcceptedWithTitleDB", mock.Anything, exclude).Return([]models.Submission{acceptedSubmission("Go!", "")}, nil)

	got, err := NewDuplicateDetector(db).FindPotentialDuplicates(context.Background(), exclude, "Go programming language", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindPotentialDuplicatesCapsAndOrders(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	exclude := uuid.New()
	titles := []string{
		"Pair programming improves software quality",      // 0.83
		"Pair programming improved code quality",          // 0.94
		"Pair programming improves code",                  // 0.88
		"Pair programming improves code quality!!",        // 1.00
		"Pair programming improves code quality in teams", // 0.90
		"Pair programing improves code quality",           // 0.98
		"Pair programming improves the code quality",      // 0.93
	}
	pool := make([]models.Submission, len(titles))
	for i, title := range titles {
		pool[i] = acceptedSubmission(title, "")
	}
	db.On("ListAcceptedWithTitleDB", mock.Anything, exclude).Return(pool, nil)

	got, err := NewDuplicateDetector(db).FindPotentialDuplicates(context.Background(), exclude, "Pair Programming Improves Code Quality", "")
	require.NoError(t, err)

	require.Len(t, got, MaxDuplicateCandidates)
	wantOrder := []uuid.UUID{pool[3].ID, pool[5].ID, pool[1].ID, pool[6].ID, pool[4].ID}
	for i, c := range got {
		assert.Equal(t, wantOrder[i], c.ID, "position %d", i)
		assert.GreaterOrEqual(t, c.SimilarityScore, TitleSimilarityThreshold)
		if i > 0 {
			assert.LessOrEqual(t, c.SimilarityScore, got[i-1].SimilarityScore)
		}
	}
}

func TestFindPotentialDuplicatesMergesPasses(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	exclude := uuid.New()
	both := acceptedSubmission("Pair programming improves code", "10.5/pp")
	titleOnly := acceptedSubmission("Pair programming improves code quality!!", "10.5/other")
	db.On("FindAcceptedByDOIDB", mock.Anything, "10.5/pp", exclude).Return([]models.Submission{both}, nil)
	db.On("ListAcceptedWithTitleDB", mock.Anything, exclude).Return([]models.Submission{both, titleOnly}, nil)

	got, err := NewDuplicateDetector(db).FindPotentialDuplicates(context.Background(), exclude, "Pair Programming Improves Code Quality", "10.5/PP")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, both.ID, got[0].ID)
	assert.Equal(t, 1.0, got[0].SimilarityScore)
	assert.Equal(t, titleOnly.ID, got[1].ID)
	assert.Equal(t, 1.0, got[1].SimilarityScore)
}

func TestFindPotentialDuplicatesPropagatesStoreErrors(t *testing.T) {
	db := new(MockSubmissionServiceDB)
	db.On("FindAcceptedByDOIDB", mock.Anything, "10.1/x", mock.Anything).Return(nil, fmt.Errorf("connection refused"))

	_, err := NewDuplicateDetector(db).FindPotentialDuplicates(context.Background(), uuid.New(), "", "10.1/x")
	assert.ErrorContains(t, err, "connection refused")
}
