package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileObjectStore accepts binary blobs at a relative path and hands back
// a durable URL under a configured base. It stands in for the object
// store collaborator.
type FileObjectStore struct {
	dir     string
	baseURL string
}

func NewFileObjectStore(dir, baseURL string) *FileObjectStore {
	return &FileObjectStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Store writes data at the given path and returns the URL it will be
// served from. Paths escaping the store root are rejected.
func (s *FileObjectStore) Store(ctx context.Context, path string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean(path)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object path %q", path)
	}

	full := filepath.Join(s.dir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}

	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}
