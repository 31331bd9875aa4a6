package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/mail"
	"strings"

	"speed_go_backend/internal/errors"
	"speed_go_backend/internal/models"
	authutil "speed_go_backend/internal/utils/auth"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type LoginResult struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	Token string      `json:"token"`
}

type AuthService struct {
	users  UserServiceDB
	tokens *authutil.TokenIssuer
}

func NewAuthService(users UserServiceDB, tokens *authutil.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup registers a new submitter account.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	return s.CreateUser(ctx, email, password, string(models.RoleSubmitter))
}

func (s *AuthService) CreateUser(ctx context.Context, email, password, rawRole string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, errors.New400Errorf("password must be at least %d characters", minPasswordLength)
	}
	role, ok := models.ParseRole(rawRole)
	if !ok {
		return nil, errors.New400Errorf("invalid role %q", rawRole)
	}

	if _, err := s.users.GetUserByEmailDB(ctx, email); err == nil {
		return nil, errors.New409Error("an account with this email already exists")
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New500Error(fmt.Errorf("failed to look up user: %w", err))
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return nil, errors.New500Error(err)
	}
	user := &models.User{Email: email, PasswordHash: hash, Role: role}
	if err := s.users.CreateUserDB(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New409Error("an account with this email already exists")
		}
		return nil, errors.New500Error(fmt.Errorf("failed to create user: %w", err))
	}

	zerolog.Ctx(ctx).Info().Str("user_id", user.ID.String()).Str("role", string(role)).Msg("User created")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmailDB(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New401Error("invalid email or password")
		}
		return nil, errors.New500Error(fmt.Errorf("failed to look up user: %w", err))
	}
	if !authutil.CheckPassword(user.PasswordHash, password) {
		return nil, errors.New401Error("invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, errors.New500Error(err)
	}
	return &LoginResult{Email: user.Email, Role: user.Role, Token: token}, nil
}

// Authenticate resolves a bearer token to its current user record, so role
// changes apply to tokens already issued.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, errors.New401Error("invalid or expired token")
	}
	user, err := s.users.GetUserByIDDB(ctx, uuid.MustParse(claims.UserID))
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New401Error("user no longer exists")
		}
		return nil, errors.New500Error(fmt.Errorf("failed to load user: %w", err))
	}
	return user, nil
}

func (s *AuthService) SetRole(ctx context.Context, email, rawRole string) (*models.User, error) {
	role, ok := models.ParseRole(rawRole)
	if !ok {
		return nil, errors.New400Errorf("invalid role %q", rawRole)
	}
	user, err := s.users.GetUserByEmailDB(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New404Error(fmt.Sprintf("user %s not found", email))
		}
		return nil, errors.New500Error(fmt.Errorf("failed to look up user: %w", err))
	}
	if err := s.users.UpdateUserRoleDB(ctx, user, role); err != nil {
		return nil, errors.New500Error(fmt.Errorf("failed to update role: %w", err))
	}
	return user, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Address != strings.TrimSpace(raw) {
		return "", errors.New400Error("a valid email address is required")
	}
	return strings.ToLower(addr.Address), nil
}
