package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

type FS struct{}

func NewFS() *FS { return &FS{} }

func (FS) Read(_ context.Context, path string) ([]byte, error) { return os.ReadFile(path) }

// WriteAtomic replaces path with data via a synced temp file and rename, so
// readers never observe a partial document.
func (FS) WriteAtomic(_ context.Context, path string, data []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, mode)
}

func (FS) MkdirAll(_ context.Context, dir string, mode fs.FileMode) error {
	return os.MkdirAll(dir, mode)
}
