package cache

import (
	"context"

	"github.com/grindlemire/graft"
)

// StoreNodeID is the unique identifier for the process-wide cache store Graft node.
const StoreNodeID graft.ID = "engine.cache.store"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Store, error) {
			return NewStore(), nil
		},
	})
}
