// Package cache implements the incremental build cache: the artifact store, the
// timestamp oracle, the module hash ledger and the orchestrator that drives them
// through a build's lifecycle.
package cache

import (
	"maps"
	"slices"
	"sync"

	"go.trai.ch/hoard/internal/core/ports"
)

var _ ports.CacheStore = (*Store)(nil)

// Store is a keyed collection of build artifacts. It is safe for concurrent use.
//
// For composite builds a Store is sliced into isolated child stores, one per
// sub-build index. A child is created on first use and reused afterwards.
type Store struct {
	mu       sync.RWMutex
	cells    map[string]any
	children map[int]*Store
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		cells:    make(map[string]any),
		children: make(map[int]*Store),
	}
}

// Get returns the artifact stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	artifact, ok := s.cells[key]
	return artifact, ok
}

// Put stores artifact under key, replacing any previous value.
func (s *Store) Put(key string, artifact any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[key] = artifact
}

// Reset removes every artifact, including those of child stores. Child stores
// are cleared in place, so holders of a child keep sharing it with the parent.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells = make(map[string]any)
	for _, child := range s.children {
		child.Reset()
	}
}

// Len returns the number of artifacts held directly by this store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

// Keys returns the keys held directly by this store in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.cells))
}

// Child returns the isolated store for sub-build index i.
func (s *Store) Child(i int) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	child, ok := s.children[i]
	if !ok {
		child = NewStore()
		s.children[i] = child
	}
	return child
}

// Children returns the number of child stores created so far.
func (s *Store) Children() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.children)
}
