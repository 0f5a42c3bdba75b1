package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"bitescout.app/bitescout/pkg/apperror"
	"github.com/gabriel-vasile/mimetype"
)

// SaveUpload validates an uploaded file and stores it. Size and content type
// are checked before anything is written; only image content is accepted.
func SaveUpload(ctx context.Context, store ImageStorage, fh *multipart.FileHeader, folder string, maxBytes int64) (string, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return "", fmt.Errorf("file %q exceeds the %d byte limit: %w", fh.Filename, maxBytes, apperror.ErrPayloadTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("file %q has type %s, only images are accepted: %w",
			fh.Filename, mtype.String(), apperror.ErrUnsupportedMedia)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	return store.UploadImage(ctx, f, folder, fh.Filename)
}

// Discard removes a stored file on a rejection or replacement path. Failures
// are logged and never change the outcome already decided for the request.
func Discard(ctx context.Context, store ImageStorage, fileURL string) {
	if fileURL == "" {
		return
	}
	if err := store.DeleteImage(ctx, fileURL); err != nil {
		log.Printf("failed to clean up file %s: %v", fileURL, err)
	}
}
