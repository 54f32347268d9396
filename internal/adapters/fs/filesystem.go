// Package fs provides filesystem adapters for the build cache.
package fs

import (
	"context"
	iofs "io/fs"
	"os"

	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem reads file metadata and content from the host filesystem.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Stat returns file metadata for path. A missing file yields an error that
// matches fs.ErrNotExist.
func (f *FileSystem) Stat(ctx context.Context, path string) (iofs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return info, nil
}

// ReadFile returns the full content of path.
func (f *FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return data, nil
}
