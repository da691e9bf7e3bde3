package services

import (
	"context"

	"github.com/justsurfingit/savvy/internal/dtos"
	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"github.com/justsurfingit/savvy/internal/models"
	"gorm.io/gorm"
)

type MatcherService struct {
	DB *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{DB: db}
}

// FilterPosts returns the posts tagged with every non-empty value of the
// filter, matched against the tag of the same type. An empty filter returns
// every post.
func (s *MatcherService) FilterPosts(ctx context.Context, filter dtos.PostFilter) ([]models.Post, error) {
	db := s.DB.WithContext(ctx)
	q := db.Preload("Tags", byTagID).Order("posts.id")

	for _, want := range filterTags(filter) {
		// One subquery per requested tag, so a post has to carry all of them.
		tagged := db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.type = ? AND tags.name = ?", want.Type, want.Name)
		q = q.Where("posts.id IN (?)", tagged)
	}

	posts := []models.Post{}
	if err := q.Find(&posts).Error; err != nil {
		return nil, apperrors.Internal("failed to filter posts", err)
	}
	return posts, nil
}

func filterTags(filter dtos.PostFilter) []models.Tag {
	var tags []models.Tag
	add := func(tagType, name string) {
		if name != "" {
			tags = append(tags, models.Tag{Type: tagType, Name: name})
		}
	}
	add(models.TagTypeField, filter.Field)
	add(models.TagTypeLocation, filter.Location)
	add(models.TagTypePayment, filter.Payment)
	add(models.TagTypeQualifications, filter.Qualifications)
	return tags
}
