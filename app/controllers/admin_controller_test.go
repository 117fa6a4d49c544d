package controllers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/upload"
)

func TestUploadKindFor(t *testing.T) {
	tests := []struct {
		selector string
		kind     string
		docType  string
		wantErr  bool
	}{
		{"image", upload.KindImage, "", false},
		{"", upload.KindDocument, models.DocumentTypeSubject, false},
		{"document", upload.KindDocument, models.DocumentTypeSubject, false},
		{"subject", upload.KindDocument, models.DocumentTypeSubject, false},
		{"correction", upload.KindDocument, models.DocumentTypeCorrection, false},
		{"video", "", "", true},
	}
	for _, tt := range tests {
		kind, docType, err := uploadKindFor(tt.selector)
		if tt.wantErr {
			assert.Error(t, err, "selector %q", tt.selector)
			continue
		}
		require.NoError(t, err, "selector %q", tt.selector)
		assert.Equal(t, tt.kind, kind, "selector %q", tt.selector)
		assert.Equal(t, tt.docType, docType, "selector %q", tt.selector)
	}
}

func enableTestStorage(t *testing.T) {
	t.Helper()
	t.Setenv("FILE_STORAGE_ENABLED", "true")
	t.Setenv("S3_ACCESS_KEY_ID", "test")
	t.Setenv("S3_SECRET_ACCESS_KEY", "test")
	t.Setenv("S3_BUCKET_NAME", "jangatub-test")
}

func newUploadApp() *fiber.App {
	app := fiber.New(fiber.Config{BodyLimit: 20 * 1024 * 1024})
	app.Post("/admin/upload", HandleAdminUpload)
	return app
}

func newUploadRequest(t *testing.T, uploadType, filename string, content []byte) (int, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if uploadType != "" {
		require.NoError(t, writer.WriteField("type", uploadType))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/admin/upload", body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())

	resp, err := newUploadApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

// paddedFile builds file content of the given size starting with the given
// magic bytes.
func paddedFile(head []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, head)
	return out
}

func TestHandleAdminUploadStorageDisabled(t *testing.T) {
	t.Setenv("FILE_STORAGE_ENABLED", "false")

	status, got := newUploadRequest(t, "image", "cover.png", []byte{0x89, 'P', 'N', 'G'})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Contains(t, got, "storage_unavailable")
}

func TestHandleAdminUploadOversizeImage(t *testing.T) {
	enableTestStorage(t)

	pngHead := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	status, got := newUploadRequest(t, "image", "cover.png", paddedFile(pngHead, 6*1024*1024))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "5MB")
}

func TestHandleAdminUploadImageWrongContent(t *testing.T) {
	enableTestStorage(t)

	status, got := newUploadRequest(t, "image", "cover.png", []byte("<!DOCTYPE html><html></html>"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "unsupported_file")
}

func TestHandleAdminUploadImageRejectsPDF(t *testing.T) {
	enableTestStorage(t)

	status, got := newUploadRequest(t, "image", "epreuve.pdf", []byte("%PDF-1.7\n"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "unsupported_file")
}

func TestHandleAdminUploadOversizeDocument(t *testing.T) {
	enableTestStorage(t)

	pdfHead := []byte("%PDF-1.7\n")
	status, got := newUploadRequest(t, "", "epreuve.pdf", paddedFile(pdfHead, 11*1024*1024))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "10MB")
}

func TestHandleAdminUploadUnknownType(t *testing.T) {
	enableTestStorage(t)

	status, got := newUploadRequest(t, "video", "clip.mp4", []byte("data"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "validation_failed")
}
