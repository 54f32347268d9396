package domain

import (
	"maps"
	"math"
	"slices"
)

// MtimeUnknown marks a path whose stat succeeded but reported no modification time.
// It compares newer than any build time, so dependents are always treated as changed.
const MtimeUnknown int64 = math.MaxInt64

// TimestampTable maps a dependency path to its adjusted modification time in
// milliseconds since the Unix epoch. Paths that were not found are absent.
type TimestampTable struct {
	entries map[string]int64
}

// NewTimestampTable creates a table from the given entries. The map is copied.
func NewTimestampTable(entries map[string]int64) *TimestampTable {
	return &TimestampTable{entries: maps.Clone(entries)}
}

// Get returns the adjusted modification time for path.
// The second return value is false when the path is unknown.
func (t *TimestampTable) Get(path string) (int64, bool) {
	if t == nil {
		return 0, false
	}
	ts, ok := t.entries[path]
	return ts, ok
}

// ChangedSince reports whether path may have changed at or after since.
// Unknown paths are always reported as changed.
func (t *TimestampTable) ChangedSince(path string, since int64) bool {
	ts, ok := t.Get(path)
	if !ok {
		return true
	}
	return ts >= since
}

// Len returns the number of known paths.
func (t *TimestampTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Paths returns the known paths in sorted order.
func (t *TimestampTable) Paths() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}
