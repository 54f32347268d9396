package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hoard/internal/core/ports"
)

// NodeID is the graft node that provides the state store factory.
const NodeID graft.ID = "adapter.state_store"

func init() {
	graft.Register(graft.Node[ports.StateStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StateStoreFactory, error) {
			return func(path string) ports.StateStore {
				return NewStore(path)
			}, nil
		},
	})
}
