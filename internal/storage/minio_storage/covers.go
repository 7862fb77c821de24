package minio_storage

import (
	"context"
	"io"
)

type CoverStorage struct {
	storage *MinioStorage
	bucket  string
}

func NewCoverStorage(storage *MinioStorage) (*CoverStorage, error) {
	bucket := storage.Bucket(BucketCovers)
	if err := storage.ensureBucket(context.Background(), bucket); err != nil {
		return nil, err
	}
	return &CoverStorage{storage: storage, bucket: bucket}, nil
}

func (s *CoverStorage) UploadCover(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.storage.put(ctx, s.bucket, objectKey, reader, size, contentType)
}
