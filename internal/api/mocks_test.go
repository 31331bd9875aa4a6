package api

import (
	"context"
	"io"
	"sync"

	"speed_go_backend/internal/models"
	"speed_go_backend/internal/services"
	"speed_go_backend/internal/utils/bibtexparser"
	"speed_go_backend/internal/utils/query"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockSubmissionAPI struct {
	mock.Mock
}

func (m *MockSubmissionAPI) CreateSubmission(ctx context.Context, input services.CreateSubmissionInput, submitterID *uuid.UUID) (*models.Submission, error) {
	args := m.Called(ctx, input, submitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionAPI) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionAPI) SearchSubmissions(ctx context.Context, q string) ([]models.Submission, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionAPI) FindByStatus(ctx context.Context, status string, page, limit int) (*services.SubmissionPage, error) {
	args := m.Called(ctx, status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmissionPage), args.Error(1)
}

func (m *MockSubmissionAPI) ListPendingModeration(ctx context.Context) ([]models.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionAPI) ListPendingBySubmitter(ctx context.Context, submitterID string) ([]models.Submission, error) {
	args := m.Called(ctx, submitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionAPI) EditSubmission(ctx context.Context, id string, input services.EditSubmissionInput, editorID uuid.UUID) (*models.Submission, error) {
	args := m.Called(ctx, id, input, editorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionAPI) ParseBibTeX(content string) (*bibtexparser.Draft, error) {
	args := m.Called(content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bibtexparser.Draft), args.Error(1)
}

type MockModerationAPI struct {
	mock.Mock
}

func (m *MockModerationAPI) DetailsForModeration(ctx context.Context, id string) (*services.ModerationDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ModerationDetails), args.Error(1)
}

func (m *MockModerationAPI) Moderate(ctx context.Context, id string, input services.ModerationInput, moderatorID string) (*models.Submission, error) {
	args := m.Called(ctx, id, input, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

type MockEvidenceAPI struct {
	mock.Mock
}

func (m *MockEvidenceAPI) CreateEvidence(ctx context.Context, input services.CreateEvidenceInput, analystID string) (*models.EvidenceEntry, error) {
	args := m.Called(ctx, input, analystID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EvidenceEntry), args.Error(1)
}

func (m *MockEvidenceAPI) GetEvidenceBySubmission(ctx context.Context, submissionID string) ([]models.EvidenceEntry, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EvidenceEntry), args.Error(1)
}

func (m *MockEvidenceAPI) SearchEvidence(ctx context.Context, filter query.EvidenceFilter, page, limit int) (*services.EvidencePage, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EvidencePage), args.Error(1)
}

// memoryUsers is an in-memory UserServiceDB for issuing real tokens.
type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func (m *memoryUsers) CreateUserDB(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) GetUserByEmailDB(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) GetUserByIDDB(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) UpdateUserRoleDB(ctx context.Context, user *models.User, role models.Role) error {
	user.Role = role
	return nil
}

func zerologDiscard() zerolog.Logger {
	return zerolog.New(io.Discard)
}
