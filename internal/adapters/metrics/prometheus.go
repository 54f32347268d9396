// Package metrics implements ports.Metrics on a private Prometheus registry.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.trai.ch/hoard/internal/core/ports"
)

const (
	namespace = "hoard"
	subsystem = "cache"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus records cache behavior as Prometheus collectors.
type Prometheus struct {
	registry      *prometheus.Registry
	probes        prometheus.Counter
	probedPaths   prometheus.Counter
	missing       prometheus.Counter
	ledgerUpdates prometheus.Counter
	modules       *prometheus.CounterVec
	batchFailures *prometheus.CounterVec
	accuracy      prometheus.Gauge
}

// NewPrometheus creates the collectors and registers them on a fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		probes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "probes_total",
			Help: "Number of timestamp probe batches run.",
		}),
		probedPaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "probed_paths_total",
			Help: "Number of paths submitted to timestamp probes.",
		}),
		missing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "missing_dependencies_total",
			Help: "Number of probed paths that no longer existed.",
		}),
		ledgerUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "ledger_updates_total",
			Help: "Number of module content hashes written to the ledger.",
		}),
		modules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "modules_total",
			Help: "Number of modules processed, by outcome.",
		}, []string{"status"}),
		batchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "batch_failures_total",
			Help: "Number of fan-out batches that aborted a build, by phase.",
		}, []string{"phase"}),
		accuracy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "accuracy_window_ms",
			Help: "Current timestamp accuracy window in milliseconds.",
		}),
	}

	p.registry.MustRegister(
		p.probes,
		p.probedPaths,
		p.missing,
		p.ledgerUpdates,
		p.modules,
		p.batchFailures,
		p.accuracy,
	)
	return p
}

// Registry returns the registry the collectors are registered on.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// ProbeCompleted records one finished probe batch.
func (p *Prometheus) ProbeCompleted(paths, missing int) {
	p.probes.Inc()
	p.probedPaths.Add(float64(paths))
	p.missing.Add(float64(missing))
}

// AccuracyObserved records the accuracy window after a probe.
func (p *Prometheus) AccuracyObserved(window int64) {
	p.accuracy.Set(float64(window))
}

// LedgerUpdated records how many resources were hashed.
func (p *Prometheus) LedgerUpdated(resources int) {
	p.ledgerUpdates.Add(float64(resources))
}

// ModulesProcessed records the module outcomes of one build.
func (p *Prometheus) ModulesProcessed(built, cached, failed int) {
	p.modules.WithLabelValues("built").Add(float64(built))
	p.modules.WithLabelValues("cached").Add(float64(cached))
	p.modules.WithLabelValues("failed").Add(float64(failed))
}

// BatchFailed records a fatal fan-out failure in phase.
func (p *Prometheus) BatchFailed(phase string) {
	p.batchFailures.WithLabelValues(phase).Inc()
}

// Snapshot gathers every metric. Labeled series are keyed as name{label="value"}.
func (p *Prometheus) Snapshot() map[string]float64 {
	families, err := p.registry.Gather()
	if err != nil {
		return map[string]float64{}
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			out[seriesName(mf.GetName(), m.GetLabel())] = metricValue(mf.GetType(), m)
		}
	}
	return out
}

func seriesName(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}

	parts := make([]string, 0, len(labels))
	for _, lp := range labels {
		parts = append(parts, lp.GetName()+`="`+lp.GetValue()+`"`)
	}
	sort.Strings(parts)
	return name + "{" + strings.Join(parts, ",") + "}"
}

func metricValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_UNTYPED:
		return m.GetUntyped().GetValue()
	default:
		return 0
	}
}
