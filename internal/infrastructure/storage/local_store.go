package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images into a directory served under a public base URL.
type LocalStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore creates the directory if it does not exist.
func NewLocalStore(baseDir, baseURL string) (*LocalStore, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "static/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir, baseURL: baseURL}, nil
}

func (s *LocalStore) LocalDir() string {
	return s.baseDir
}

func (s *LocalStore) Save(ctx context.Context, name string, data []byte, _ string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(name string) string {
	return publicURL(s.baseURL, name)
}

// path keeps every name inside baseDir.
func (s *LocalStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.baseDir, name), nil
}

var _ ImageStore = (*LocalStore)(nil)
var _ LocalDirProvider = (*LocalStore)(nil)
