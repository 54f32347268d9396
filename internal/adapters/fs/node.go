package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hoard/internal/core/ports"
)

const (
	FileSystemNodeID graft.ID = "adapter.fs.filesystem"
	HasherNodeID     graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewFileSystem(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
