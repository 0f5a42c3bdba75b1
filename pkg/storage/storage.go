package storage

import (
	"context"
	"io"
)

// ImageStorage defines the contract for the image storage provider.
type ImageStorage interface {
	// UploadImage stores image content from reader and returns its public URL path.
	// folder is a logical folder in storage (e.g. "food-items").
	UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeleteImage removes a previously stored image using its URL path.
	// Deleting an image that no longer exists is not an error.
	DeleteImage(ctx context.Context, fileURL string) error
}
