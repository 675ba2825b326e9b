// Package backup uploads backup files to S3-compatible storage.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"rental-records/internal/config"
)

const contentType = "text/plain; charset=utf-8"

// Uploader stores one object
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
}

// S3Uploader uploads objects to one bucket
type S3Uploader struct {
	client *s3.Client
	bucket string
}

// NewS3Uploader creates an uploader for cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Uploader(ctx context.Context, cfg config.S3Config, optFns ...func(*s3.Options)) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("backup bucket not configured")
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	opts := make([]func(*s3.Options), 0, len(optFns)+1)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}
	opts = append(opts, optFns...)

	return &S3Uploader{
		client: s3.NewFromConfig(awsCfg, opts...),
		bucket: cfg.Bucket,
	}, nil
}

// Upload puts body under key
func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// ObjectKey places the base name of file under prefix
func ObjectKey(prefix, file string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return filepath.Base(file)
	}
	return path.Join(prefix, filepath.Base(file))
}

// UploadFile uploads a local backup file and returns its object key
func UploadFile(ctx context.Context, u Uploader, prefix, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("failed to open backup %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	key := ObjectKey(prefix, file)
	if err := u.Upload(ctx, key, f, contentType); err != nil {
		return "", err
	}
	return key, nil
}
