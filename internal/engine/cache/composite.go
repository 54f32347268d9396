package cache

import (
	"go.trai.ch/hoard/internal/core/ports"
)

// Composite holds one Orchestrator per sub-build of a composite build.
// Orchestrator i owns store.Child(i) and runs its lifecycle independently.
type Composite struct {
	orchestrators []*Orchestrator
}

// NewComposite creates n orchestrators over the child slices of store.
func NewComposite(
	store *Store,
	n int,
	fsys ports.FileSystem,
	hasher ports.Hasher,
	logger ports.Logger,
	opts ...Option,
) *Composite {
	c := &Composite{orchestrators: make([]*Orchestrator, n)}
	for i := range n {
		childOpts := append(append([]Option{}, opts...), WithSubBuild(i))
		c.orchestrators[i] = NewOrchestrator(store.Child(i), fsys, hasher, logger, childOpts...)
	}
	return c
}

// At returns the orchestrator for sub-build i.
func (c *Composite) At(i int) *Orchestrator {
	return c.orchestrators[i]
}

// Len returns the number of sub-builds.
func (c *Composite) Len() int {
	return len(c.orchestrators)
}
