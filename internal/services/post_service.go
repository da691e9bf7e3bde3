package services

import (
	"context"

	"github.com/justsurfingit/savvy/internal/dtos"
	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"github.com/justsurfingit/savvy/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PostService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewPostService(db *gorm.DB, logger *zap.Logger) *PostService {
	return &PostService{
		DB:     db,
		Logger: logger,
	}
}

// CreatePost stores a post without tags. Tags are attached afterwards through
// the AssociationManager.
func (s *PostService) CreatePost(ctx context.Context, req *dtos.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Position:       req.Position,
		Employer:       req.Employer,
		Description:    req.Description,
		Qualifications: req.Qualifications,
		Wage:           req.Wage,
		HowToApply:     req.HowToApply,
		Link:           req.Link,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to create post", err)
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := findByID(s.DB.WithContext(ctx).Preload("Tags", byTagID), &post, "post", id); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.WithContext(ctx).Preload("Tags", byTagID).Order("id").Find(&posts).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list posts", err)
	}
	return posts, nil
}

func (s *PostService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, apperrors.Internal("failed to count posts", err)
	}
	return count, nil
}
