package supabase_storage

import (
	"LearnHub/internal/config"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// SupabaseStorage uploads objects to public Supabase Storage buckets.
type SupabaseStorage struct {
	client  *storage.Client
	baseURL string
}

func NewSupabaseStorage(cfg config.Supabase) (*SupabaseStorage, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}
	base := strings.TrimRight(cfg.URL, "/")
	return &SupabaseStorage{
		client:  storage.NewClient(base+"/storage/v1", cfg.Key, nil),
		baseURL: base,
	}, nil
}

func (s *SupabaseStorage) put(_ context.Context, bucket, objectKey string, reader io.Reader, contentType string) (string, error) {
	options := storage.FileOptions{}
	if contentType != "" {
		options.ContentType = &contentType
	}
	if _, err := s.client.UploadFile(bucket, objectKey, reader, options); err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, objectKey, err)
	}
	return s.PublicURL(bucket, objectKey), nil
}

func (s *SupabaseStorage) PublicURL(bucket, objectKey string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, (&url.URL{Path: objectKey}).EscapedPath())
}

// Bucket is an upload target for a single Supabase bucket.
type Bucket struct {
	storage *SupabaseStorage
	name    string
}

func (s *SupabaseStorage) Bucket(name string) *Bucket {
	return &Bucket{storage: s, name: name}
}

func (b *Bucket) UploadReference(ctx context.Context, objectKey string, reader io.Reader, _ int64, contentType string) (string, error) {
	return b.storage.put(ctx, b.name, objectKey, reader, contentType)
}

func (b *Bucket) UploadCover(ctx context.Context, objectKey string, reader io.Reader, _ int64, contentType string) (string, error) {
	return b.storage.put(ctx, b.name, objectKey, reader, contentType)
}
