package services

import (
	"context"

	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"github.com/justsurfingit/savvy/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TagService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewTagService(db *gorm.DB, logger *zap.Logger) *TagService {
	return &TagService{
		DB:     db,
		Logger: logger,
	}
}

// CreateTag always inserts a new row, even when the (type, name) pair is
// already present. Use FindOrCreate to deduplicate.
func (s *TagService) CreateTag(ctx context.Context, tagType, name string) (*models.Tag, error) {
	tag := &models.Tag{Type: tagType, Name: name}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(tag).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to create tag", err)
	}
	return tag, nil
}

// FindOrCreate returns the oldest tag with this (type, name) pair, creating it
// if none exists.
func (s *TagService) FindOrCreate(ctx context.Context, tagType, name string) (*models.Tag, error) {
	var tag models.Tag
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where(models.Tag{Type: tagType, Name: name}).
			Order("id").
			FirstOrCreate(&tag).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to find or create tag", err)
	}
	return &tag, nil
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := findByID(s.DB.WithContext(ctx), &tag, "tag", id); err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags returns every tag, or only the tags of one category when tagType
// is not empty.
func (s *TagService) ListTags(ctx context.Context, tagType string) ([]models.Tag, error) {
	var tags []models.Tag
	q := s.DB.WithContext(ctx).Order("id")
	if tagType != "" {
		q = q.Where("type = ?", tagType)
	}
	if err := q.Find(&tags).Error; err != nil {
		return nil, apperrors.Internal("failed to list tags", err)
	}
	return tags, nil
}
