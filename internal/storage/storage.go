package storage

import (
	"context"
	"io/fs"
)

type Storage interface {
	Read(ctx context.Context, path string) ([]byte, error)
	WriteAtomic(ctx context.Context, path string, data []byte, mode fs.FileMode) error
	MkdirAll(ctx context.Context, dir string, mode fs.FileMode) error
}
