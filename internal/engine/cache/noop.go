package cache

import (
	"context"

	"go.trai.ch/hoard/internal/core/ports"
)

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) SetAttribute(string, any) {}

type noopMetrics struct{}

func (noopMetrics) ProbeCompleted(int, int)        {}
func (noopMetrics) AccuracyObserved(int64)         {}
func (noopMetrics) LedgerUpdated(int)              {}
func (noopMetrics) ModulesProcessed(int, int, int) {}
func (noopMetrics) BatchFailed(string)             {}
func (noopMetrics) Snapshot() map[string]float64   { return map[string]float64{} }
