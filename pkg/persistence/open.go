package persistence

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Backend selects a KV implementation.
type Backend string

// Supported backends.
const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// ParseBackend converts a case-insensitive backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendFile, BackendSQLite, BackendMemory:
		return b, nil
	case "":
		return BackendFile, nil
	}
	return "", fmt.Errorf("unknown state backend %q (want file, sqlite or memory)", s)
}

// DefaultPath returns where a backend keeps its data when no path is
// configured: the data directory for files and a database file inside it
// for SQLite.
func DefaultPath(b Backend) string {
	switch b {
	case BackendSQLite:
		return filepath.Join(DataDir(), AppName+".db")
	case BackendFile:
		return DataDir()
	}
	return ""
}

// Open creates a Store on the chosen backend. An empty path uses
// DefaultPath.
func Open(b Backend, path string, opts ...StoreOption) (*Store, error) {
	if path == "" {
		path = DefaultPath(b)
	}

	var kv KV
	switch b {
	case BackendMemory:
		kv = NewMemoryKV()
	case BackendFile:
		kv = NewFileKV(path)
	case BackendSQLite:
		s, err := OpenSQLiteKV(path)
		if err != nil {
			return nil, err
		}
		kv = s
	default:
		return nil, fmt.Errorf("unknown state backend %q", b)
	}
	return NewStore(kv, opts...), nil
}
