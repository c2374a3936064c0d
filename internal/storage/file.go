// Package storage implements string-keyed persistent stores for the
// contact list: JSON files on disk, a SQLite table, or process memory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalidKey indicates a key is empty or contains path traversal components.
var ErrInvalidKey = errors.New("storage: invalid key")

// FileStore persists each key as a file named <key>.json under a base directory.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a FileStore that saves values under baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Get reads the value stored under key.
// Returns (value, true, nil) if found, ("", false, nil) if not found.
func (s *FileStore) Get(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage: reading %s: %w", p, err)
	}
	return string(data), true, nil
}

// Set writes value under key, replacing any previous value. The file is
// written to a temporary sibling and renamed into place.
func (s *FileStore) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("storage: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.baseDir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: writing %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: writing %s: %w", p, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: replacing %s: %w", p, err)
	}
	return nil
}

// path returns the filesystem path for a key.
// It rejects keys that are empty, dot-segments, or contain path separators.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.baseDir, key+".json"), nil
}
