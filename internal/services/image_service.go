package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"github.com/justsurfingit/savvy/internal/models"
	"github.com/justsurfingit/savvy/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	saltLength      = 16
	maxNameAttempts = 5
)

// Extensions accepted in the declared type of a data URI, mapped to the
// content type the payload must sniff as.
var imageExtensions = map[string]string{
	"png":  "image/png",
	"gif":  "image/gif",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

type ImageService struct {
	DB         *gorm.DB
	Bucket     storage.Bucket
	Logger     *zap.Logger
	MaxRetries int
	RetryDelay time.Duration
}

func NewImageService(db *gorm.DB, bucket storage.Bucket, logger *zap.Logger, maxRetries int, retryDelay time.Duration) *ImageService {
	return &ImageService{
		DB:         db,
		Bucket:     bucket,
		Logger:     logger,
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
	}
}

// StoreImage uploads a base64 data URI (data:image/png;base64,...) and records
// it as an Asset. Any failure is returned as a typed error and leaves the
// store untouched.
func (s *ImageService) StoreImage(ctx context.Context, dataURI string) (*models.Asset, error) {
	if s.Bucket == nil {
		return nil, apperrors.Unavailable("image uploads are disabled", storage.ErrBucketNotConfigured)
	}

	ext, data, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.UnsupportedMedia("unreadable image data", err)
	}

	salt, err := s.freeSalt(ctx, ext)
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{
		BaseURL:   s.Bucket.BaseURL(),
		Salt:      salt,
		Extension: ext,
		Width:     cfg.Width,
		Height:    cfg.Height,
	}

	err = retry(ctx, s.MaxRetries, s.RetryDelay, s.Logger, func() error {
		return s.Bucket.Upload(ctx, asset.ObjectKey(), imageExtensions[ext], data)
	})
	if err != nil {
		return nil, apperrors.Upload("failed to upload image", err)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(asset).Error
	})
	if err != nil {
		s.Logger.Error("uploaded image could not be recorded", zap.String("key", asset.ObjectKey()), zap.Error(err))
		return nil, apperrors.Internal("failed to record image", err)
	}

	s.Logger.Info("image stored", zap.String("url", asset.URL()), zap.Int("bytes", len(data)))
	return asset, nil
}

// decodeDataURI returns the declared extension and the decoded payload, after
// checking that the payload really is an image of the declared kind.
func decodeDataURI(dataURI string) (string, []byte, error) {
	header, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, apperrors.Validation("image_data must be a base64 data URI")
	}

	mediaType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	ext := strings.ToLower(strings.TrimPrefix(mediaType, "image/"))
	want, ok := imageExtensions[ext]
	if !ok || !strings.HasPrefix(mediaType, "image/") {
		return "", nil, apperrors.UnsupportedMedia(fmt.Sprintf("unsupported image type %q", mediaType), nil)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, apperrors.Validation("image_data is not valid base64")
	}

	if got := mimetype.Detect(data); !got.Is(want) {
		return "", nil, apperrors.UnsupportedMedia(fmt.Sprintf("image data is %s, declared %s", got.String(), mediaType), nil)
	}
	return ext, data, nil
}

// freeSalt picks a random object name that is not taken in the bucket yet.
func (s *ImageService) freeSalt(ctx context.Context, ext string) (string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		salt := strings.ReplaceAll(uuid.NewString(), "-", "")[:saltLength]
		taken, err := s.Bucket.Exists(ctx, fmt.Sprintf("%s.%s", salt, ext))
		if err != nil {
			return "", apperrors.Upload("failed to check object name", err)
		}
		if !taken {
			return salt, nil
		}
		s.Logger.Warn("object name collision, retrying", zap.String("salt", salt))
	}
	return "", apperrors.Upload(fmt.Sprintf("no free object name after %d attempts", maxNameAttempts), nil)
}

// retry executes f with exponential backoff until it succeeds, attempts run
// out or ctx is done.
func retry(ctx context.Context, attempts int, sleep time.Duration, logger *zap.Logger, f func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		logger.Warn("object store error, retrying", zap.Error(err), zap.Duration("backoff", sleep))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
