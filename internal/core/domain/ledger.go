package domain

import (
	"maps"
	"slices"
)

// ModuleHashLedger maps a module resource path to the content hash recorded the last
// time that module was built. A ledger is never mutated; Merge returns a new one.
type ModuleHashLedger struct {
	hashes map[string]string
}

// NewModuleHashLedger creates a ledger from the given entries. The map is copied.
func NewModuleHashLedger(hashes map[string]string) *ModuleHashLedger {
	if hashes == nil {
		hashes = map[string]string{}
	}
	return &ModuleHashLedger{hashes: maps.Clone(hashes)}
}

// Get returns the recorded hash for resource.
func (l *ModuleHashLedger) Get(resource string) (string, bool) {
	if l == nil {
		return "", false
	}
	h, ok := l.hashes[resource]
	return h, ok
}

// Len returns the number of recorded resources.
func (l *ModuleHashLedger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.hashes)
}

// Resources returns the recorded resource paths in sorted order.
func (l *ModuleHashLedger) Resources() []string {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.hashes))
}

// Entries returns a copy of the ledger contents.
func (l *ModuleHashLedger) Entries() map[string]string {
	if l == nil {
		return map[string]string{}
	}
	return maps.Clone(l.hashes)
}

// Merge returns a new ledger with updates applied over the receiver's entries.
func (l *ModuleHashLedger) Merge(updates map[string]string) *ModuleHashLedger {
	merged := l.Entries()
	maps.Copy(merged, updates)
	return &ModuleHashLedger{hashes: merged}
}
