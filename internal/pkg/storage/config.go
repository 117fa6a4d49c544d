package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/env"
)

// Config holds S3 file storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // Base URL under which uploaded objects are served
	Enabled         bool
}

// LoadConfig loads S3 configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "eu-west-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   strings.TrimRight(env.GetEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		Enabled:         env.GetEnv("FILE_STORAGE_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when file storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when file storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when file storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if file storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey generates a standardized S3 object key for an uploaded file.
// Format: <kind>/YYYY/MM/<uuid><ext>
func (c *Config) ObjectKey(kind, fileUUID, fileExtension string, year, month int) string {
	return fmt.Sprintf("%s/%04d/%02d/%s%s", kind, year, month, fileUUID, fileExtension)
}

// PublicURL returns the externally reachable URL for an object key.
func (c *Config) PublicURL(objectKey string) string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL + "/" + objectKey
	}
	if c.EndpointURL != "" {
		return strings.TrimRight(c.EndpointURL, "/") + "/" + c.BucketName + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, objectKey)
}
