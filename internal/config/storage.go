package config

import (
	"fmt"
	"path/filepath"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// StorageConfig configures the persistence layer.
type StorageConfig struct {
	Backend string `yaml:"backend"` // sqlite, file, memory
	Path    string `yaml:"path"`    // database file or directory, relative to the workspace
}

// ResolvePath returns Path anchored at workspace unless it is already absolute.
func (s StorageConfig) ResolvePath(workspace string) string {
	if s.Path == "" || filepath.IsAbs(s.Path) {
		return s.Path
	}
	return filepath.Join(workspace, s.Path)
}

func (s StorageConfig) Validate() error {
	switch s.Backend {
	case BackendSQLite, BackendFile:
		if s.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", s.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s", s.Backend)
	}
	return nil
}
