package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go-clinic-management/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveOverwriteDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/static/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "hero.png", []byte("one"), "image/png"))
	require.NoError(t, store.Save(ctx, "hero.png", []byte("two"), "image/png"))

	data, err := os.ReadFile(filepath.Join(dir, "hero.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
	assert.Equal(t, "/static/uploads/hero.png", store.URL("hero.png"))
	assert.Equal(t, dir, store.LocalDir())

	require.NoError(t, store.Delete(ctx, "hero.png"))
	_, err = os.Stat(filepath.Join(dir, "hero.png"))
	assert.True(t, os.IsNotExist(err))

	err = store.Delete(ctx, "hero.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStore_RejectsPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	assert.Error(t, store.Save(context.Background(), "../escape.png", []byte("x"), ""))
	assert.Error(t, store.Delete(context.Background(), ""))
}

func TestNewImageStore(t *testing.T) {
	store, err := NewImageStore(config.StorageConfig{Type: "local", UploadDir: t.TempDir(), PublicBaseURL: "/static/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = NewImageStore(config.StorageConfig{Type: "s3"})
	assert.Error(t, err)

	_, err = NewImageStore(config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)

	store, err = NewImageStore(config.StorageConfig{
		Type:          "s3",
		PublicBaseURL: "https://cdn.example.com",
		S3: config.S3Config{
			Region:          "us-east-1",
			Bucket:          "clinic",
			Prefix:          "/home/",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Endpoint:        "minio:9000",
			ForcePathStyle:  true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/home/hero.png", store.URL("hero.png"))
}
