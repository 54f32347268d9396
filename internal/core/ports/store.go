package ports

import (
	"context"

	"go.trai.ch/hoard/internal/core/domain"
)

// CacheStore is the keyed collection of reusable build artifacts.
// Artifacts are opaque to the cache and owned by the build pipeline.
type CacheStore interface {
	// Get returns the artifact stored under key.
	Get(key string) (any, bool)
	// Put stores artifact under key.
	Put(key string, artifact any)
	// Reset removes every artifact.
	Reset()
}

// StateStore persists a BuildCacheState between processes.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Load returns the persisted state. The boolean is false when nothing has been saved yet.
	Load(ctx context.Context) (domain.BuildCacheState, bool, error)
	// Save persists state, replacing any previous value.
	Save(ctx context.Context, state domain.BuildCacheState) error
	// Clear removes the persisted state.
	Clear(ctx context.Context) error
}

// StateStoreFactory opens the StateStore backed by the file at path.
type StateStoreFactory func(path string) StateStore
