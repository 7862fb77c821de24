package minio_storage

import (
	"LearnHub/internal/config"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	BucketReferences = "references"
	BucketCovers     = "covers"
)

// publicReadPolicy lets anonymous clients GET objects, so stored URLs need no presigning.
const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

type MinioStorage struct {
	client        *minio.Client
	buckets       map[string]config.BucketConfig
	publicBaseURL string
}

func NewMinioStorage(ctx context.Context, cfg config.Minio) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}

	s := &MinioStorage{client: client, buckets: cfg.Buckets, publicBaseURL: strings.TrimRight(base, "/")}
	for _, bc := range cfg.Buckets {
		if err := s.ensureBucket(ctx, bc.Name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Bucket resolves a logical bucket name from config, defaulting to the logical name itself.
func (s *MinioStorage) Bucket(name string) string {
	if bc, ok := s.buckets[name]; ok && bc.Name != "" {
		return bc.Name
	}
	return name
}

func (s *MinioStorage) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket %s: %w", bucket, err)
		}
	}
	if err := s.client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("error setting policy on bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *MinioStorage) put(ctx context.Context, bucket, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(objectKey))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}
	_, err := s.client.PutObject(ctx, bucket, objectKey, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s/%s: %w", bucket, objectKey, err)
	}
	return s.objectURL(bucket, objectKey), nil
}

func (s *MinioStorage) remove(ctx context.Context, bucket, objectKey string) error {
	return s.client.RemoveObject(ctx, bucket, objectKey, minio.RemoveObjectOptions{})
}

func (s *MinioStorage) objectURL(bucket, objectKey string) string {
	return s.publicBaseURL + "/" + bucket + "/" + (&url.URL{Path: objectKey}).EscapedPath()
}
