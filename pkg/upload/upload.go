// Package upload stores images attached to content-creation requests.
package upload

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// DefaultMaxSize is the upload size ceiling.
const DefaultMaxSize = 5 << 20

// allowedExts is the image-extension allow-list.
var allowedExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Storage persists an uploaded file and returns the reference path
// stored on the entity.
type Storage interface {
	Store(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// validateFile enforces the size ceiling and the extension allow-list,
// returning the normalized extension.
func validateFile(file *multipart.FileHeader, maxSize int64) (string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if file.Size > maxSize {
		return "", fmt.Errorf("file exceeds the %d byte limit", maxSize)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExts[ext]; !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
	return ext, nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
