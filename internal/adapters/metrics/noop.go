package metrics

import "go.trai.ch/hoard/internal/core/ports"

var _ ports.Metrics = NoOp{}

// NoOp discards every measurement.
type NoOp struct{}

func (NoOp) ProbeCompleted(int, int)        {}
func (NoOp) AccuracyObserved(int64)         {}
func (NoOp) LedgerUpdated(int)              {}
func (NoOp) ModulesProcessed(int, int, int) {}
func (NoOp) BatchFailed(string)             {}

// Snapshot returns an empty map.
func (NoOp) Snapshot() map[string]float64 { return map[string]float64{} }
