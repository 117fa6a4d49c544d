package upload

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	// KindImage covers cover images and illustrations, KindDocument exam PDFs.
	KindImage    = "image"
	KindDocument = "document"

	MaxImageBytes    = 5 * 1024 * 1024
	MaxDocumentBytes = 10 * 1024 * 1024
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImageBySniff checks the provided filename (extension) and the first bytes (head)
// against a whitelist of image types. Returns detected mime or an error.
func ValidateImageBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", errors.New("only JPG, JPEG, PNG, GIF and WEBP images are supported")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		// Block SVG/XML until a sanitizer is in place
		return "", errors.New("SVG/XML files are not supported")
	}

	if allowedImageMime[detected] {
		return detected, nil
	}

	return "", errors.New("unsupported image type")
}

// ValidateDocumentBySniff accepts PDF files only.
func ValidateDocumentBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return "", errors.New("only PDF documents are supported")
	}

	detected := http.DetectContentType(head)
	if detected != "application/pdf" {
		return "", errors.New("file content is not a valid PDF")
	}
	return detected, nil
}

// ValidateSize enforces the per-kind size cap.
func ValidateSize(kind string, size int64) error {
	switch kind {
	case KindImage:
		if size > MaxImageBytes {
			return fmt.Errorf("image exceeds the %dMB limit", MaxImageBytes/(1024*1024))
		}
	case KindDocument:
		if size > MaxDocumentBytes {
			return fmt.Errorf("document exceeds the %dMB limit", MaxDocumentBytes/(1024*1024))
		}
	default:
		return fmt.Errorf("unknown upload kind %q", kind)
	}
	return nil
}
