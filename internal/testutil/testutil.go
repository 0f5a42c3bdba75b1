// Package testutil provides shared helpers for package tests: an isolated
// in-memory database per test and multipart upload fixtures.
package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"bitescout.app/bitescout/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PNGHeader is a valid PNG file signature, enough for content sniffing.
var PNGHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

// OpenDB opens an isolated in-memory database with foreign keys enforced
// and the full schema migrated.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.AutoMigrate(db))
	return db
}

// FileHeader builds a *multipart.FileHeader carrying the given content, the
// way a handler would receive it from a multipart request.
func FileHeader(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, fh, err := req.FormFile("image")
	require.NoError(t, err)
	return fh
}

// PNGFile builds an image upload fixture of the given total size.
func PNGFile(t *testing.T, fileName string, size int) *multipart.FileHeader {
	t.Helper()

	content := make([]byte, size)
	copy(content, PNGHeader)
	return FileHeader(t, fileName, content)
}
