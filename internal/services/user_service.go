package services

import (
	"context"

	"speed_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserServiceDB interface {
	CreateUserDB(ctx context.Context, user *models.User) error
	GetUserByEmailDB(ctx context.Context, email string) (*models.User, error)
	GetUserByIDDB(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUserRoleDB(ctx context.Context, user *models.User, role models.Role) error
}

type DefaultUserService struct {
	db *gorm.DB
}

func NewUserServiceDB(db *gorm.DB) UserServiceDB {
	return &DefaultUserService{db: db}
}

func (s *DefaultUserService) CreateUserDB(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *DefaultUserService) GetUserByEmailDB(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DefaultUserService) GetUserByIDDB(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DefaultUserService) UpdateUserRoleDB(ctx context.Context, user *models.User, role models.Role) error {
	if err := s.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return err
	}
	user.Role = role
	return nil
}
