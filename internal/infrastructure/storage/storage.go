package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-clinic-management/config"
)

const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// ErrObjectNotFound is returned by Delete when nothing is stored under the name.
var ErrObjectNotFound = errors.New("stored object not found")

// ImageStore keeps uploaded homepage images under their sanitized file name.
// Saving an existing name overwrites it.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// LocalDirProvider is implemented by stores whose files the HTTP server can serve directly.
type LocalDirProvider interface {
	LocalDir() string
}

// NewImageStore picks the backend named by cfg.Type.
func NewImageStore(cfg config.StorageConfig) (ImageStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", TypeLocal:
		return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	case TypeS3:
		return NewS3Store(cfg.S3, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

func publicURL(base, key string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	return base + "/" + strings.TrimLeft(key, "/")
}
