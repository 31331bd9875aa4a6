package services

import (
	"context"

	"speed_go_backend/internal/models"
	"speed_go_backend/internal/utils/broker"
	"speed_go_backend/internal/utils/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSubmissionServiceDB struct {
	mock.Mock
}

func (m *MockSubmissionServiceDB) CreateSubmissionDB(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionServiceDB) GetSubmissionDB(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionServiceDB) SaveSubmissionDB(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionServiceDB) SearchSubmissionsDB(ctx context.Context, q string) ([]models.Submission, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionServiceDB) ListSubmissionsByStatusDB(ctx context.Context, status models.SubmissionStatus, page query.Page) ([]models.Submission, int64, error) {
	args := m.Called(ctx, status, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Submission), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubmissionServiceDB) ListPendingDB(ctx context.Context) ([]models.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionServiceDB) ListPendingBySubmitterDB(ctx context.Context, submitterID uuid.UUID) ([]models.Submission, error) {
	args := m.Called(ctx, submitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionServiceDB) FindAcceptedByDOIDB(ctx context.Context, doi string, excludeID uuid.UUID) ([]models.Submission, error) {
	args := m.Called(ctx, doi, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionServiceDB) ListAcceptedWithTitleDB(ctx context.Context, excludeID uuid.UUID) ([]models.Submission, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

type MockEvidenceServiceDB struct {
	mock.Mock
}

func (m *MockEvidenceServiceDB) AttachEvidenceDB(ctx context.Context, submission *models.Submission, entry *models.EvidenceEntry) error {
	args := m.Called(ctx, submission, entry)
	return args.Error(0)
}

func (m *MockEvidenceServiceDB) GetEvidenceBySubmissionDB(ctx context.Context, submissionID uuid.UUID) ([]models.EvidenceEntry, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EvidenceEntry), args.Error(1)
}

func (m *MockEvidenceServiceDB) SearchEvidenceDB(ctx context.Context, filter query.EvidenceFilter, page query.Page) ([]models.EvidenceEntry, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.EvidenceEntry), args.Get(1).(int64), args.Error(2)
}

type MockUserServiceDB struct {
	mock.Mock
}

func (m *MockUserServiceDB) CreateUserDB(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserServiceDB) GetUserByEmailDB(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserServiceDB) GetUserByIDDB(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserServiceDB) UpdateUserRoleDB(ctx context.Context, user *models.User, role models.Role) error {
	args := m.Called(ctx, user, role)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topic string, msg broker.Event) int {
	args := m.Called(topic, msg)
	return args.Int(0)
}

func acceptedSubmission(title, doi string) models.Submission {
	return models.Submission{
		ID:      uuid.New(),
		Title:   title,
		Authors: []string{"A. Author"},
		DOI:     doi,
		Status:  models.StatusAccepted,
	}
}
