package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/savvy/internal/dtos"
	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"github.com/justsurfingit/savvy/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{
		DB:     db,
		Logger: logger,
	}
}

// CreateUser requires a name and a netid. Nothing is written when either is
// blank.
func (s *UserService) CreateUser(ctx context.Context, req *dtos.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.NetID) == "" {
		return nil, apperrors.Validation("Missing name or NetID")
	}

	user := &models.User{
		Name:      req.Name,
		NetID:     req.NetID,
		ClassYear: req.ClassYear,
		Password:  req.Password,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}

	s.Logger.Info("user created", zap.Uint("user_id", user.ID), zap.String("netid", user.NetID))
	return user, nil
}

// GetUser returns the user with saved posts, applied posts and saved tags
// loaded, each ordered by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	tx := s.DB.WithContext(ctx).
		Preload("SavedPosts", byPostID).
		Preload("SavedPosts.Tags", byTagID).
		Preload("AppliedPosts", byPostID).
		Preload("AppliedPosts.Tags", byTagID).
		Preload("Tags", byTagID)
	if err := findByID(tx, &user, "user", id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, apperrors.Internal("failed to count users", err)
	}
	return count, nil
}
