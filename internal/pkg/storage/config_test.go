package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	cfg := &Config{}
	key := cfg.ObjectKey("documents", "0f2d7c1e", ".pdf", 2025, 6)
	assert.Equal(t, "documents/2025/06/0f2d7c1e.pdf", key)
}

func TestPublicURL(t *testing.T) {
	cfg := &Config{
		BucketName:    "jangatub-files",
		Region:        "eu-west-1",
		PublicBaseURL: "https://files.jangatub.sn",
	}
	assert.Equal(t, "https://files.jangatub.sn/documents/2025/06/a.pdf", cfg.PublicURL("documents/2025/06/a.pdf"))

	cfg.PublicBaseURL = ""
	cfg.EndpointURL = "https://s3.sn-dakar-1.example.com"
	assert.Equal(t, "https://s3.sn-dakar-1.example.com/jangatub-files/documents/2025/06/a.pdf", cfg.PublicURL("documents/2025/06/a.pdf"))

	cfg.EndpointURL = ""
	assert.Equal(t, "https://jangatub-files.s3.eu-west-1.amazonaws.com/documents/2025/06/a.pdf", cfg.PublicURL("documents/2025/06/a.pdf"))
}
