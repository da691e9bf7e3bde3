package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/justsurfingit/savvy/internal/dtos"
	"github.com/justsurfingit/savvy/internal/models"
	"go.uber.org/zap"
)

const (
	PaymentPaid   = "Paid"
	PaymentUnpaid = "Unpaid"

	QualificationFWS    = "FWS"
	QualificationNonFWS = "Non-FWS"
)

// Seeder imports the job dataset into an empty store.
type Seeder struct {
	Posts        *PostService
	Tags         *TagService
	Associations *AssociationManager
	Logger       *zap.Logger
}

func NewSeeder(posts *PostService, tags *TagService, assoc *AssociationManager, logger *zap.Logger) *Seeder {
	return &Seeder{
		Posts:        posts,
		Tags:         tags,
		Associations: assoc,
		Logger:       logger,
	}
}

// SeedFromFile imports the dataset at path if the store holds no posts yet.
// It returns the number of posts created.
func (s *Seeder) SeedFromFile(ctx context.Context, path string) (int, error) {
	count, err := s.Posts.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.Logger.Info("store already seeded, skipping", zap.Int64("posts", count))
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var dataset dtos.SeedDataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return 0, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	return s.Import(ctx, dataset.Jobs)
}

// Import creates one post per job and attaches its field, location, payment
// and qualifications tags. Tags are looked up by (type, name) before being
// created, so jobs sharing a value share the tag.
func (s *Seeder) Import(ctx context.Context, jobs []dtos.SeedJob) (int, error) {
	for i, job := range jobs {
		if err := s.importJob(ctx, job); err != nil {
			return i, fmt.Errorf("failed to import job %d (%s): %w", i, job.Position, err)
		}
	}
	s.Logger.Info("seed data imported", zap.Int("posts", len(jobs)))
	return len(jobs), nil
}

func (s *Seeder) importJob(ctx context.Context, job dtos.SeedJob) error {
	wanted := []models.Tag{
		{Type: models.TagTypeField, Name: job.Field},
		{Type: models.TagTypeLocation, Name: job.Location},
		{Type: models.TagTypePayment, Name: derivePayment(job)},
		{Type: models.TagTypeQualifications, Name: deriveQualification(job)},
	}

	tagIDs := make([]uint, 0, len(wanted))
	for _, w := range wanted {
		tag, err := s.Tags.FindOrCreate(ctx, w.Type, w.Name)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	post, err := s.Posts.CreatePost(ctx, &dtos.CreatePostRequest{
		Position:       job.Position,
		Employer:       job.Employer,
		Description:    job.Description,
		Qualifications: job.Qualifications,
		Wage:           job.Wage,
		HowToApply:     job.HowToApply,
		Link:           job.Link,
	})
	if err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if err := s.Associations.AddTagToPost(ctx, post.ID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// derivePayment keeps an explicit payment value and otherwise reads the wage:
// a blank wage or one mentioning unpaid/volunteer work is Unpaid.
func derivePayment(job dtos.SeedJob) string {
	if p := strings.TrimSpace(job.Payment); p != "" {
		return p
	}
	wage := strings.ToLower(strings.TrimSpace(job.Wage))
	if wage == "" || strings.Contains(wage, "unpaid") || strings.Contains(wage, "volunteer") {
		return PaymentUnpaid
	}
	return PaymentPaid
}

// deriveQualification tags a job as FWS when its qualifications ask for
// Federal Work Study.
func deriveQualification(job dtos.SeedJob) string {
	q := strings.ToLower(job.Qualifications)
	if strings.Contains(q, "non-fws") || strings.Contains(q, "non fws") {
		return QualificationNonFWS
	}
	if strings.Contains(q, "fws") || strings.Contains(q, "work study") || strings.Contains(q, "work-study") {
		return QualificationFWS
	}
	return QualificationNonFWS
}
