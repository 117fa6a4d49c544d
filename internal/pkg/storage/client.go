package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

// Client wraps the S3 client for uploaded document and image files
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// UploadResult describes a stored object
type UploadResult struct {
	ObjectKey   string
	URL         string
	Size        int64
	ContentType string
}

// NewClient creates a new S3 storage client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("file storage is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible services need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	log.Infof("[Storage] Initialized S3 client for bucket: %s", cfg.BucketName)
	return client, nil
}

// Upload streams a file to S3 and returns its public URL
func (c *Client) Upload(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) (*UploadResult, error) {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.BucketName),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Infof("[Storage] Uploaded s3://%s/%s (%d bytes)", c.config.BucketName, objectKey, size)
	return &UploadResult{
		ObjectKey:   objectKey,
		URL:         c.config.PublicURL(objectKey),
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Delete removes an object from S3
func (c *Client) Delete(ctx context.Context, objectKey string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete s3://%s/%s: %w", c.config.BucketName, objectKey, err)
	}
	return nil
}
