package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const defaultGCSBaseURL = "https://storage.googleapis.com"

type GCSBucket struct {
	client  *gcs.Client
	bucket  *gcs.BucketHandle
	name    string
	baseURL string
}

// NewGCSBucket opens a client for the named bucket. baseURL overrides the
// public URL prefix, e.g. when the bucket sits behind a CDN.
func NewGCSBucket(ctx context.Context, name, baseURL string, opts ...option.ClientOption) (*GCSBucket, error) {
	if name == "" {
		return nil, ErrBucketNotConfigured
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s/%s", defaultGCSBaseURL, name)
	}
	return &GCSBucket{
		client:  client,
		bucket:  client.Bucket(name),
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (b *GCSBucket) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.bucket.Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s/%s: %w", b.name, key, err)
	}
	return true, nil
}

func (b *GCSBucket) Upload(ctx context.Context, key, contentType string, data []byte) error {
	w := b.bucket.Object(key).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write %s/%s: %w", b.name, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s/%s: %w", b.name, key, err)
	}
	return nil
}

func (b *GCSBucket) BaseURL() string {
	return b.baseURL
}

func (b *GCSBucket) Close() error {
	return b.client.Close()
}
