package upload

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	s3store "github.com/campusbridge/campusbridge/pkg/store/s3"
)

// S3Storage stores uploads in an S3 bucket and references them by URL.
type S3Storage struct {
	adapter *s3store.Adapter
	prefix  string
	baseURL string
	maxSize int64
}

// NewS3Storage wraps a connected S3 adapter.
func NewS3Storage(adapter *s3store.Adapter, prefix, baseURL string, maxSize int64) (*S3Storage, error) {
	if adapter == nil {
		return nil, fmt.Errorf("s3 adapter is required")
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &S3Storage{adapter: adapter, prefix: prefix, baseURL: baseURL, maxSize: maxSize}, nil
}

// Store uploads the file under a random key and returns its reference
// URL.
func (s *S3Storage) Store(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext, err := validateFile(file, s.maxSize)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	key := s.prefix + uuid.New().String() + ext
	if err := s.adapter.Upload(ctx, key, src, contentTypeForExt(ext)); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}
