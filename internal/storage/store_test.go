package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// backends returns a fresh instance of every store for shared behavior tests.
func backends(t *testing.T) map[string]KV {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]KV{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "data")),
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStore_SetAndGet(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// Given a stored value
			value := `[{"id":"1","name":"Amy","phoneNumber":"555","email":"amy@x"}]`
			if err := store.Set("contacts", value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// When Get is called
			got, found, err := store.Get("contacts")

			// Then the same value is returned
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !found {
				t.Fatal("Get() found = false, want true")
			}
			if got != value {
				t.Errorf("Get() = %q, want %q", got, value)
			}
		})
	}
}

func TestStore_GetNotFound(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, found, err := store.Get("contacts")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if found {
				t.Errorf("Get() found = true, want false (value %q)", got)
			}
		})
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set("contacts", "[1,2,3]"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := store.Set("contacts", "[]"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, _, err := store.Get("contacts")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != "[]" {
				t.Errorf("Get() = %q, want %q", got, "[]")
			}
		})
	}
}

func TestStore_EmptyValueIsFound(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Set("contacts", ""); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, found, err := store.Get("contacts")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !found || got != "" {
				t.Errorf("Get() = %q, %v; want \"\", true", got, found)
			}
		})
	}
}

func TestFileStore_WritesKeyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewFileStore(dir)

	if err := store.Set("contacts", "[]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "contacts.json"))
	if err != nil {
		t.Fatalf("reading key file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("file content = %q, want %q", data, "[]")
	}

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestFileStore_InvalidKey(t *testing.T) {
	store := NewFileStore(t.TempDir())

	tests := []struct {
		name string
		key  string
	}{
		{name: "parent traversal", key: "../../etc/passwd"},
		{name: "slash in key", key: "foo/bar"},
		{name: "empty key", key: ""},
		{name: "dot dot", key: ".."},
		{name: "current dir", key: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Set(tt.key, "x"); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Set(%q) error = %v, want ErrInvalidKey", tt.key, err)
			}
			if _, _, err := store.Get(tt.key); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Get(%q) error = %v, want ErrInvalidKey", tt.key, err)
			}
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := first.Set("contacts", "[]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() reopen error = %v", err)
	}
	defer func() { _ = second.Close() }()

	got, found, err := second.Get("contacts")
	if err != nil || !found || got != "[]" {
		t.Errorf("Get() = %q, %v, %v; want \"[]\", true, nil", got, found, err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		want    any
	}{
		{BackendFile, &FileStore{}},
		{BackendSQLite, &SQLiteStore{}},
		{BackendMemory, &MemoryStore{}},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, release, err := Open(tt.backend, dir)
			if err != nil {
				t.Fatalf("Open(%q) error = %v", tt.backend, err)
			}
			defer func() { _ = release() }()

			switch tt.want.(type) {
			case *FileStore:
				if _, ok := store.(*FileStore); !ok {
					t.Errorf("Open(%q) = %T, want *FileStore", tt.backend, store)
				}
			case *SQLiteStore:
				if _, ok := store.(*SQLiteStore); !ok {
					t.Errorf("Open(%q) = %T, want *SQLiteStore", tt.backend, store)
				}
				if _, err := os.Stat(filepath.Join(dir, SQLiteFile)); err != nil {
					t.Errorf("database file not created: %v", err)
				}
			case *MemoryStore:
				if _, ok := store.(*MemoryStore); !ok {
					t.Errorf("Open(%q) = %T, want *MemoryStore", tt.backend, store)
				}
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, release, err := Open("redis", t.TempDir())
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(redis) error = %v, want ErrUnknownBackend", err)
	}
	if release == nil {
		t.Error("release func must not be nil")
	}
}
