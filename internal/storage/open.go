package storage

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "contactbook.db"

// ErrUnknownBackend indicates an unsupported backend name.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// KV is a string-keyed store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Open returns the store for backend rooted at dir, plus a func that
// releases it. The release func is never nil.
func Open(backend, dir string) (KV, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case BackendFile:
		return NewFileStore(dir), noop, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(filepath.Join(dir, SQLiteFile))
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
