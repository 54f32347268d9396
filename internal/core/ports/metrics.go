package ports

// Metrics records counters and gauges about cache behavior.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ProbeCompleted records one finished timestamp probe batch.
	ProbeCompleted(paths, missing int)
	// AccuracyObserved records the accuracy window after a probe, in milliseconds.
	AccuracyObserved(window int64)
	// LedgerUpdated records how many resources were hashed after a build.
	LedgerUpdated(resources int)
	// ModulesProcessed records the module outcomes of one build.
	ModulesProcessed(built, cached, failed int)
	// BatchFailed records a fatal fan-out failure in the given phase.
	BatchFailed(phase string)
	// Snapshot returns the current value of every metric, keyed by metric name.
	Snapshot() map[string]float64
}
