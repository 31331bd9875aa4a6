package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EditSnapshot captures the bibliographic core of a submission before an edit.
type EditSnapshot struct {
	EditedAt time.Time           `json:"editedAt"`
	Previous SnapshotFieldValues `json:"previous"`
}

type SnapshotFieldValues struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Journal string   `json:"journal,omitempty"`
	Year    *int     `json:"year,omitempty"`
	DOI     string   `json:"doi,omitempty"`
}

type Submission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title           string                      `gorm:"not null" json:"title"`
	Authors         datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"authors"`
	AuthorRaw       string                      `json:"authorRaw,omitempty"`
	BibtexEntryType string                      `gorm:"not null;default:'ARTICLE'" json:"bibtexEntryType"`
	Year            *int                        `json:"year,omitempty"`
	Journal         string                      `json:"journal,omitempty"`
	Booktitle       string                      `json:"booktitle,omitempty"`
	Publisher       string                      `json:"publisher,omitempty"`
	DOI             string                      `gorm:"column:doi;index" json:"doi,omitempty"`
	URL             string                      `gorm:"column:url" json:"url,omitempty"`
	Volume          string                      `json:"volume,omitempty"`
	Number          string                      `json:"number,omitempty"`
	Pages           string                      `json:"pages,omitempty"`
	Abstract        string                      `gorm:"type:text" json:"abstract,omitempty"`
	RawBibtex       string                      `gorm:"type:text" json:"rawBibtex,omitempty"`
	ExtractedText   string                      `gorm:"type:text" json:"extractedText,omitempty"`

	Status          SubmissionStatus                  `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	SubmitterID     *uuid.UUID                        `gorm:"type:uuid;index" json:"submitterId,omitempty"`
	RejectionReason string                            `json:"rejectionReason,omitempty"`
	IsDuplicateOf   *uuid.UUID                        `gorm:"type:uuid" json:"isDuplicateOf,omitempty"`
	EditHistory     datatypes.JSONSlice[EditSnapshot] `gorm:"type:jsonb;not null;default:'[]'" json:"editHistory"`
	ModeratedBy     *uuid.UUID                        `gorm:"type:uuid" json:"moderatedBy,omitempty"`
	ModeratedAt     *time.Time                        `json:"moderatedAt,omitempty"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	if s.EditHistory == nil {
		s.EditHistory = datatypes.JSONSlice[EditSnapshot]{}
	}
	return nil
}

// Snapshot returns the fields recorded in the edit history.
func (s *Submission) Snapshot(at time.Time) EditSnapshot {
	authors := make([]string, len(s.Authors))
	copy(authors, s.Authors)
	var year *int
	if s.Year != nil {
		y := *s.Year
		year = &y
	}
	return EditSnapshot{
		EditedAt: at,
		Previous: SnapshotFieldValues{
			Title:   s.Title,
			Authors: authors,
			Journal: s.Journal,
			Year:    year,
			DOI:     s.DOI,
		},
	}
}

// SubmissionListColumns is the fixed projection used by paginated listings.
var SubmissionListColumns = []string{
	"id", "created_at", "updated_at", "title", "authors", "author_raw", "bibtex_entry_type",
	"year", "journal", "booktitle", "doi", "status", "rejection_reason", "is_duplicate_of",
	"submitter_id", "moderated_at",
}

// SubmissionSummaryColumns is the projection joined onto evidence search results.
var SubmissionSummaryColumns = []string{
	"id", "title", "authors", "author_raw", "year", "journal", "booktitle", "publisher",
	"doi", "url", "bibtex_entry_type", "raw_bibtex", "extracted_text",
}

// DuplicateCandidateColumns is the projection scanned by the duplicate detector.
var DuplicateCandidateColumns = []string{
	"id", "title", "authors", "journal", "year", "doi", "status", "created_at",
}
