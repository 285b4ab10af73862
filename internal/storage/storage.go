package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store abstracts the attachment bucket. Put returns a stable public URL for
// the stored object. Delete failures are expected to be logged by callers,
// not treated as fatal.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds a bucket key for an uploaded file: a random UUID plus the
// original extension, defaulting to jpg when the filename has none.
func ObjectKey(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	return uuid.New().String() + "." + ext
}

// KeyFromURL extracts the bucket key from a public attachment URL.
func KeyFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	idx := strings.LastIndex(rawURL, "/")
	if idx < 0 {
		return rawURL
	}
	return rawURL[idx+1:]
}
