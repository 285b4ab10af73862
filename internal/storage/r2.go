package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/smarterpicks/backend/internal/config"
)

// R2Store stores attachments in an S3-compatible bucket (Cloudflare R2 in
// production, MinIO locally).
type R2Store struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewR2Store creates a store backed by the configured bucket
func NewR2Store(cfg config.StorageConfig) (*R2Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &R2Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: baseURL,
	}, nil
}

// Put uploads an object and returns its public URL
func (s *R2Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.publicBaseURL + key, nil
}

// Delete removes an object from the bucket
func (s *R2Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
