package minio_storage

import (
	"context"
	"io"
)

// ReferenceStorage keeps reference files teachers attach in the course wizard.
type ReferenceStorage struct {
	storage *MinioStorage
	bucket  string
}

func NewReferenceStorage(storage *MinioStorage) (*ReferenceStorage, error) {
	bucket := storage.Bucket(BucketReferences)
	if err := storage.ensureBucket(context.Background(), bucket); err != nil {
		return nil, err
	}
	return &ReferenceStorage{storage: storage, bucket: bucket}, nil
}

func (s *ReferenceStorage) UploadReference(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.storage.put(ctx, s.bucket, objectKey, reader, size, contentType)
}

func (s *ReferenceStorage) DeleteReference(ctx context.Context, objectKey string) error {
	return s.storage.remove(ctx, s.bucket, objectKey)
}
