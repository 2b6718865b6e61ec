package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// FileSystem is the file access the driver needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	MkdirAll(dir string) error
	WriteFile(path string, data []byte) error
}

// OSFileSystem accesses the real file system.
type OSFileSystem struct{}

// ReadFile reads the whole file at path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MkdirAll creates dir and any missing parents.
func (OSFileSystem) MkdirAll(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		slog.Info("creating output directory, since it does not exist", "dir", dir)
	}

	return os.MkdirAll(dir, 0o755)
}

// WriteFile replaces the file at path with data.
func (OSFileSystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
