package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStore persists uploaded files.
type FileStore interface {
	// Save writes the file under <userID>/<subdir>/<filename> and returns
	// the path relative to the store root.
	Save(userID, subdir, filename string, src io.Reader) (string, error)
}

// LocalStore stores files on the local filesystem under a fixed root
// directory. Saved paths are recorded relative to that root.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &LocalStore{root: dir}, nil
}

// Save writes a file under the per-user directory tree.
func (s *LocalStore) Save(userID, subdir, filename string, src io.Reader) (string, error) {
	relPath := filepath.Join(userID, subdir, filename)
	fullPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return relPath, nil
}
