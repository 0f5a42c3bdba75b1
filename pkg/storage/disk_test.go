package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bitescout.app/bitescout/internal/testutil"
	"bitescout.app/bitescout/pkg/apperror"
	"bitescout.app/bitescout/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFiles(t *testing.T, root string) int {
	t.Helper()
	count := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func TestSaveUploadStoresImage(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStorage(root)
	require.NoError(t, err)

	fh := testutil.PNGFile(t, "latte.png", 64)
	url, err := storage.SaveUpload(context.Background(), store, fh, "food-items", 5<<20)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/food-items/"), "got %s", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "extension should be preserved, got %s", url)
	assert.Equal(t, 1, countFiles(t, root))
}

func TestSaveUploadUniqueNames(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStorage(root)
	require.NoError(t, err)

	first, err := storage.SaveUpload(context.Background(), store, testutil.PNGFile(t, "same.png", 32), "reviews", 0)
	require.NoError(t, err)
	second, err := storage.SaveUpload(context.Background(), store, testutil.PNGFile(t, "same.png", 32), "reviews", 0)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, countFiles(t, root))
}

func TestSaveUploadRejectsNonImage(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStorage(root)
	require.NoError(t, err)

	fh := testutil.FileHeader(t, "notes.txt", []byte("plain text, definitely not an image"))
	_, err = storage.SaveUpload(context.Background(), store, fh, "food-items", 5<<20)

	assert.ErrorIs(t, err, apperror.ErrUnsupportedMedia)
	assert.Equal(t, 0, countFiles(t, root), "nothing may be persisted for a rejected upload")
}

func TestSaveUploadRejectsOversize(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStorage(root)
	require.NoError(t, err)

	fh := testutil.PNGFile(t, "huge.png", 2048)
	_, err = storage.SaveUpload(context.Background(), store, fh, "food-items", 1024)

	assert.ErrorIs(t, err, apperror.ErrPayloadTooLarge)
	assert.Equal(t, 0, countFiles(t, root))
}

func TestDeleteImage(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStorage(root)
	require.NoError(t, err)

	url, err := storage.SaveUpload(context.Background(), store, testutil.PNGFile(t, "a.png", 32), "reviews", 0)
	require.NoError(t, err)
	require.Equal(t, 1, countFiles(t, root))

	require.NoError(t, store.DeleteImage(context.Background(), url))
	assert.Equal(t, 0, countFiles(t, root))

	// Deleting again is not an error
	assert.NoError(t, store.DeleteImage(context.Background(), url))
}

func TestDeleteImageRejectsForeignURL(t *testing.T) {
	store, err := storage.NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.DeleteImage(context.Background(), "/etc/passwd"))
	assert.Error(t, store.DeleteImage(context.Background(), "/uploads/../escape.png"))
}
