package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"speed_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	TitleSimilarityThreshold = 0.80
	MaxDuplicateCandidates   = 5
	minNormalizedTitleLength = 6
)

type DuplicateCandidate struct {
	ID              uuid.UUID               `json:"id"`
	Title           string                  `json:"title"`
	Authors         []string                `json:"authors"`
	Journal         string                  `json:"journal,omitempty"`
	Year            *int                    `json:"year,omitempty"`
	DOI             string                  `json:"doi,omitempty"`
	Status          models.SubmissionStatus `json:"status"`
	CreatedAt       time.Time               `json:"createdAt"`
	SimilarityScore float64                 `json:"similarityScore"`
}

func newDuplicateCandidate(s models.Submission, score float64) DuplicateCandidate {
	return DuplicateCandidate{
		ID:              s.ID,
		Title:           s.Title,
		Authors:         []string(s.Authors),
		Journal:         s.Journal,
		Year:            s.Year,
		DOI:             s.DOI,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		SimilarityScore: score,
	}
}

// DuplicateDetector looks for accepted submissions describing the same work.
type DuplicateDetector struct {
	submissions SubmissionServiceDB
}

func NewDuplicateDetector(submissions SubmissionServiceDB) *DuplicateDetector {
	return &DuplicateDetector{submissions: submissions}
}

// FindPotentialDuplicates returns at most five accepted submissions other
// than excludeID whose DOI matches doi or whose title is similar to title,
// best match first. Blank inputs skip their pass.
func (d *DuplicateDetector) FindPotentialDuplicates(ctx context.Context, excludeID uuid.UUID, title, doi string) ([]DuplicateCandidate, error) {
	found := candidateSet{index: make(map[uuid.UUID]int)}

	if doi = strings.ToLower(strings.TrimSpace(doi)); doi != "" {
		matches, err := d.submissions.FindAcceptedByDOIDB(ctx, doi, excludeID)
		if err != nil {
			return nil, fmt.Errorf("failed to match duplicates by doi: %w", err)
		}
		for _, m := range matches {
			found.add(m, 1.0)
		}
	}

	if normalized := normalizeTitle(title); len(normalized) >= minNormalizedTitleLength {
		pool, err := d.submissions.ListAcceptedWithTitleDB(ctx, excludeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load duplicate title pool: %w", err)
		}
		for _, s := range pool {
			other := normalizeTitle(s.Title)
			if len(other) < minNormalizedTitleLength {
				continue
			}
			if score := diceCoefficient(normalized, other); score >= TitleSimilarityThreshold {
				found.add(s, score)
			}
		}
	}

	result := found.ranked(MaxDuplicateCandidates)
	duplicateCandidatesFound.Observe(float64(len(result)))
	zerolog.Ctx(ctx).Debug().
		Str("submission_id", excludeID.String()).
		Int("candidates", len(result)).
		Msg("Duplicate detection finished")
	return result, nil
}

// candidateSet keeps the best score per submission in discovery order.
type candidateSet struct {
	items []DuplicateCandidate
	index map[uuid.UUID]int
}

func (c *candidateSet) add(s models.Submission, score float64) {
	if i, ok := c.index[s.ID]; ok {
		if score > c.items[i].SimilarityScore {
			c.items[i].SimilarityScore = score
		}
		return
	}
	c.index[s.ID] = len(c.items)
	c.items = append(c.items, newDuplicateCandidate(s, score))
}

func (c *candidateSet) ranked(limit int) []DuplicateCandidate {
	out := make([]DuplicateCandidate, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SimilarityScore > out[j].SimilarityScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
