package domain

// Phase is the lifecycle state of a cache orchestrator.
type Phase uint8

const (
	// PhaseIdle means no build is in progress.
	PhaseIdle Phase = iota
	// PhaseProbing means dependency timestamps are being resolved.
	PhaseProbing
	// PhaseBuilding means the timestamp table is published and modules are being built.
	PhaseBuilding
	// PhaseFinalizing means the snapshot and hash ledger are being updated.
	PhaseFinalizing
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseProbing:
		return "probing"
	case PhaseBuilding:
		return "building"
	case PhaseFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}
