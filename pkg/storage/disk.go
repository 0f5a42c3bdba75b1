package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public path prefix uploaded images are served under.
const URLPrefix = "/uploads"

type diskStorage struct {
	root string
}

// NewDiskStorage creates a filesystem-backed implementation of ImageStorage
// rooted at the given directory. The directory is created if missing.
func NewDiskStorage(root string) (ImageStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("upload directory is not configured")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &diskStorage{root: root}, nil
}

func (s *diskStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage folder: %w", err)
	}

	// Timestamp plus random suffix keeps names collision-free under
	// concurrent uploads; the original extension is preserved.
	ext := strings.ToLower(filepath.Ext(fileName))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path.Join(URLPrefix, folder, name), nil
}

func (s *diskStorage) DeleteImage(ctx context.Context, fileURL string) error {
	rel := strings.TrimPrefix(fileURL, URLPrefix+"/")
	if rel == fileURL || rel == "" {
		return fmt.Errorf("file URL %q is not managed by this storage", fileURL)
	}

	rel = path.Clean(rel)
	if strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return fmt.Errorf("file URL %q escapes the upload directory", fileURL)
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
