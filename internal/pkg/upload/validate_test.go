package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Magic bytes for the sniffing checks.
var (
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	pdfHead  = []byte("%PDF-1.7\n%some pdf content")
	htmlHead = []byte("<!DOCTYPE html><html><body>hi</body></html>")
)

func TestValidateImageBySniff(t *testing.T) {
	mime, err := ValidateImageBySniff("photo.png", pngHead)
	assert.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	mime, err = ValidateImageBySniff("photo.jpg", jpegHead)
	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	_, err = ValidateImageBySniff("doc.pdf", pdfHead)
	assert.Error(t, err, "pdf extension rejected on image path")

	_, err = ValidateImageBySniff("photo.png", htmlHead)
	assert.Error(t, err, "html content rejected regardless of extension")

	_, err = ValidateImageBySniff("image.svg", []byte("<svg xmlns=\"x\"></svg>"))
	assert.Error(t, err)
}

func TestValidateDocumentBySniff(t *testing.T) {
	mime, err := ValidateDocumentBySniff("epreuve.pdf", pdfHead)
	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	_, err = ValidateDocumentBySniff("epreuve.docx", []byte("PK\x03\x04"))
	assert.Error(t, err, "non-pdf extension rejected")

	_, err = ValidateDocumentBySniff("epreuve.pdf", htmlHead)
	assert.Error(t, err, "html posing as pdf rejected")
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(KindImage, MaxImageBytes))
	err := ValidateSize(KindImage, MaxImageBytes+1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")

	// 6MB image fails, 6MB document passes
	sixMB := int64(6 * 1024 * 1024)
	assert.Error(t, ValidateSize(KindImage, sixMB))
	assert.NoError(t, ValidateSize(KindDocument, sixMB))

	err = ValidateSize(KindDocument, MaxDocumentBytes+1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "10MB")

	assert.Error(t, ValidateSize("video", 10))
}
