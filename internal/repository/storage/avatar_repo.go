package storage

import (
	"context"
	"io"
	"time"
)

// AvatarRepository defines the interface for avatar object storage
type AvatarRepository interface {
	Upload(ctx context.Context, objectKey string, data io.Reader, contentType string, size int64) error
	Delete(ctx context.Context, objectKey string) error
	PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}
