package ports

import (
	"context"
	"io/fs"
)

// FileSystem is the narrow file system contract consumed by the cache.
//
// Stat must report a missing path with an error matching fs.ErrNotExist so it can be told
// apart from every other failure.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns the file info for path.
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	// ReadFile returns the full content of path.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}
