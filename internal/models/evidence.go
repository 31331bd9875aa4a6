package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvidenceResult string

const (
	ResultSupports     EvidenceResult = "Supports Claim"
	ResultRefutes      EvidenceResult = "Refutes Claim"
	ResultInconclusive EvidenceResult = "Inconclusive/Mixed"
)

func (r EvidenceResult) Valid() bool {
	switch r {
	case ResultSupports, ResultRefutes, ResultInconclusive:
		return true
	}
	return false
}

type ResearchType string

const (
	ResearchCaseStudy        ResearchType = "Case Study"
	ResearchExperiment       ResearchType = "Experiment"
	ResearchSurvey           ResearchType = "Survey"
	ResearchLiteratureReview ResearchType = "Literature Review"
	ResearchOther            ResearchType = "Other"
)

func (r ResearchType) Valid() bool {
	switch r {
	case ResearchCaseStudy, ResearchExperiment, ResearchSurvey, ResearchLiteratureReview, ResearchOther:
		return true
	}
	return false
}

type ParticipantType string

const (
	ParticipantsStudents      ParticipantType = "Students"
	ParticipantsProfessionals ParticipantType = "Professionals"
	ParticipantsMixed         ParticipantType = "Mixed"
	ParticipantsNotApplicable ParticipantType = "Not Applicable"
)

func (p ParticipantType) Valid() bool {
	switch p {
	case ParticipantsStudents, ParticipantsProfessionals, ParticipantsMixed, ParticipantsNotApplicable:
		return true
	}
	return false
}

const (
	MaxAnalystNotesLength  = 2000
	MaxExtractedTextLength = 10000
	MaxAbstractLength      = 5000
)

type EvidenceEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SubmissionID uuid.UUID   `gorm:"type:uuid;not null;index" json:"submissionId"`
	Submission   *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`

	SEPractice         string          `gorm:"column:se_practice;not null" json:"sePractice"`
	Claim              string          `gorm:"not null" json:"claim"`
	ResultOfEvidence   EvidenceResult  `gorm:"type:varchar(32);not null" json:"resultOfEvidence"`
	TypeOfResearch     ResearchType    `gorm:"type:varchar(32)" json:"typeOfResearch,omitempty"`
	TypeOfParticipants ParticipantType `gorm:"type:varchar(32)" json:"typeOfParticipants,omitempty"`
	StrengthOfEvidence string          `json:"strengthOfEvidence,omitempty"`
	AnalystNotes       string          `gorm:"type:varchar(2000)" json:"analystNotes,omitempty"`
	AnalyzedBy         uuid.UUID       `gorm:"type:uuid;not null" json:"analyzedBy"`
}

func (e *EvidenceEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
