// Package storage holds the blob-storage collaborator used for article and
// avatar images. Services depend on the FileStorage interface; the disk
// implementation below is the default deployment target.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage uploads an image and returns its public URL.
type FileStorage interface {
	Upload(data []byte, path string) (string, error)
}

// DiskStorage writes uploads under a local directory served as static files.
type DiskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage creates a DiskStorage rooted at dir, returning URLs under
// baseURL.
func NewDiskStorage(dir, baseURL string) *DiskStorage {
	return &DiskStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload writes the bytes to <dir>/<path>.jpg and returns the public URL.
func (s *DiskStorage) Upload(data []byte, path string) (string, error) {
	name := path + ".jpg"
	full := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
