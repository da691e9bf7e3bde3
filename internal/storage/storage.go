package storage

import (
	"context"
	"errors"
)

var ErrBucketNotConfigured = errors.New("object store bucket is not configured")

// Bucket is the object store the image uploader writes to.
type Bucket interface {
	// Exists reports whether an object is already stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	Upload(ctx context.Context, key, contentType string, data []byte) error

	// BaseURL is the public prefix objects of this bucket are served from.
	BaseURL() string
}
