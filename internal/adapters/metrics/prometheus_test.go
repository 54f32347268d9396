package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hoard/internal/adapters/metrics"
)

func TestPrometheus_Snapshot(t *testing.T) {
	t.Parallel()

	p := metrics.NewPrometheus()
	p.ProbeCompleted(4, 1)
	p.ProbeCompleted(3, 0)
	p.AccuracyObserved(10000)
	p.AccuracyObserved(10)
	p.LedgerUpdated(2)
	p.ModulesProcessed(2, 5, 1)
	p.BatchFailed("probe")
	p.BatchFailed("probe")
	p.BatchFailed("ledger")

	snap := p.Snapshot()

	assert.InDelta(t, 2, snap["hoard_cache_probes_total"], 0)
	assert.InDelta(t, 7, snap["hoard_cache_probed_paths_total"], 0)
	assert.InDelta(t, 1, snap["hoard_cache_missing_dependencies_total"], 0)
	assert.InDelta(t, 10, snap["hoard_cache_accuracy_window_ms"], 0)
	assert.InDelta(t, 2, snap["hoard_cache_ledger_updates_total"], 0)
	assert.InDelta(t, 2, snap[`hoard_cache_modules_total{status="built"}`], 0)
	assert.InDelta(t, 5, snap[`hoard_cache_modules_total{status="cached"}`], 0)
	assert.InDelta(t, 1, snap[`hoard_cache_modules_total{status="failed"}`], 0)
	assert.InDelta(t, 2, snap[`hoard_cache_batch_failures_total{phase="probe"}`], 0)
	assert.InDelta(t, 1, snap[`hoard_cache_batch_failures_total{phase="ledger"}`], 0)
}

func TestPrometheus_FreshRegistry(t *testing.T) {
	t.Parallel()

	a := metrics.NewPrometheus()
	b := metrics.NewPrometheus()
	a.LedgerUpdated(3)

	assert.InDelta(t, 3, a.Snapshot()["hoard_cache_ledger_updates_total"], 0)
	assert.InDelta(t, 0, b.Snapshot()["hoard_cache_ledger_updates_total"], 0)

	families, err := b.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNoOp(t *testing.T) {
	t.Parallel()

	var m metrics.NoOp
	m.ProbeCompleted(1, 1)
	m.AccuracyObserved(1)
	m.LedgerUpdated(1)
	m.ModulesProcessed(1, 1, 1)
	m.BatchFailed("probe")
	assert.Empty(t, m.Snapshot())
}
