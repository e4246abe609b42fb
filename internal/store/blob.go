// Package store persists the campaign list and brand settings.
//
// Storage is a flat key-value blob store with two keys. Reads that fail for
// any reason yield empty defaults and writes that fail are logged and
// absorbed: the in-memory state is authoritative.
package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"mcc/internal/config"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// BlobStore is a durable string-keyed blob store.
type BlobStore interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(key string) (data []byte, ok bool, err error)
	Put(key string, data []byte) error
	Close() error
}

// Open creates the configured backend. Relative paths are anchored at workspace.
func Open(cfg config.StorageConfig, workspace string) (BlobStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		path := cfg.ResolvePath(workspace)
		if path == "" {
			path = filepath.Join(workspace, "mcc.db")
		}
		return NewSQLiteStore(path)
	case config.BackendFile:
		return NewFileStore(cfg.ResolvePath(workspace))
	case config.BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
}
