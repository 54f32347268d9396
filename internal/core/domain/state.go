// Package domain contains the core domain types of the incremental build cache.
package domain

// BuildCacheState is the bookkeeping an orchestrator carries from one build to the next.
// Values are replaced wholesale; fields are never mutated in place once published.
type BuildCacheState struct {
	// Snapshot is the dependency set of the last successful build. Nil before the first build.
	Snapshot *DependencySnapshot
	// HashLedger holds the content hash of every module rebuilt so far.
	HashLedger *ModuleHashLedger
	// AccuracyWindow is the narrowest timestamp granularity observed so far.
	AccuracyWindow AccuracyWindow
}

// NewBuildCacheState returns the state of an orchestrator that has not built anything yet.
func NewBuildCacheState(window AccuracyWindow) BuildCacheState {
	return BuildCacheState{
		HashLedger:     NewModuleHashLedger(nil),
		AccuracyWindow: window,
	}
}

// HasSnapshot reports whether a previous build has been recorded.
func (s BuildCacheState) HasSnapshot() bool {
	return s.Snapshot != nil
}
