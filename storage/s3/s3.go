// Package s3 stores exported artifacts in an S3-compatible bucket and hands
// back presigned GET URLs for retrieval.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/promptstudio/promptstudio"
)

// defaultURLTTL is how long presigned URLs stay valid when Config.URLTTL is
// zero.
const defaultURLTTL = 7 * 24 * time.Hour

// Config configures the S3 store.
type Config struct {
	// Endpoint for S3-compatible services (e.g. "s3.us-east-1.amazonaws.com"
	// or a MinIO host). Empty uses the SDK default.
	Endpoint string

	// Region, e.g. "us-east-1"
	Region string

	// AccessKey and SecretKey for static credentials. Empty falls back to
	// the SDK's default credential chain.
	AccessKey string
	SecretKey string

	// Bucket to store artifacts in
	Bucket string

	// URLTTL is the validity of returned presigned URLs
	URLTTL time.Duration
}

// Store implements promptstudio.Storage on an S3-compatible bucket.
type Store struct {
	client *awss3.Client
	bucket string
	urlTTL time.Duration
	logger *slog.Logger
}

// Ensure Store implements the interface.
var _ promptstudio.Storage = (*Store)(nil)

// New creates an S3-backed store.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s", cfg.Endpoint))
		}
	})

	urlTTL := cfg.URLTTL
	if urlTTL <= 0 {
		urlTTL = defaultURLTTL
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		urlTTL: urlTTL,
		logger: logger,
	}, nil
}

// SaveFile uploads data under path and returns a presigned GET URL.
func (s *Store) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	presignClient := awss3.NewPresignClient(s.client)
	presigned, err := presignClient.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, func(o *awss3.PresignOptions) {
		o.Expires = s.urlTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", path, err)
	}

	s.logger.Debug("artifact exported",
		"bucket", s.bucket,
		"key", path,
		"size", len(data),
		"content_type", contentType,
	)
	return presigned.URL, nil
}
