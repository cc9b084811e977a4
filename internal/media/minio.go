package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"autocare/internal/log"
)

// MinioConfig carries the connection parameters for an S3-compatible bucket.
type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	Region          string
}

// MinioMedia stores photos in an S3-compatible bucket.
type MinioMedia struct {
	client *minio.Client
	bucket string
	logger *log.Logger
}

// NewMinioMedia connects to the endpoint and ensures the bucket exists.
func NewMinioMedia(ctx context.Context, cfg MinioConfig, logger *log.Logger) (*MinioMedia, error) {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentMedia})
	}
	logger = logger.WithComponent(log.ComponentMedia)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
		logger.InfoContext(ctx, "Media bucket created", "bucket", cfg.Bucket)
	}

	return &MinioMedia{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (m *MinioMedia) Put(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	key, err := newKey(contentType)
	if err != nil {
		return "", err
	}
	info, err := m.client.PutObject(ctx, m.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	m.logger.DebugContext(ctx, "Photo uploaded", "key", key, "size", info.Size)
	return key, nil
}

func (m *MinioMedia) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	// GetObject is lazy; a missing key only surfaces on first read.
	if _, err := object.Stat(); err != nil {
		object.Close()
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("stat photo: %w", err)
	}
	return object, nil
}

func (m *MinioMedia) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}
