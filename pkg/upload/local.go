package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage writes uploads to a directory on disk and references
// them by URL path.
type LocalStorage struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(dir, baseURL string, maxSize int64) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &LocalStorage{dir: dir, baseURL: baseURL, maxSize: maxSize}, nil
}

// Store writes the file under a random name and returns its reference
// path.
func (s *LocalStorage) Store(_ context.Context, file *multipart.FileHeader) (string, error) {
	ext, err := validateFile(file, s.maxSize)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
