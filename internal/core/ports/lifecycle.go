// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/hoard/internal/core/domain"
)

// BuildObserver receives the lifecycle events of one build pipeline.
// The pipeline fires them in order: BuildStarted, GraphReady, BuildFinished.
//
//go:generate mockgen -source=lifecycle.go -destination=mocks/mock_lifecycle.go -package=mocks
type BuildObserver interface {
	// BuildStarted is fired before any module is resolved.
	// A returned error aborts the build attempt.
	BuildStarted(ctx context.Context) error
	// GraphReady is fired once per build attempt. The observer attaches the cache
	// and freshness data to bc for the module build logic to consult.
	GraphReady(bc *BuildContext) error
	// BuildFinished is fired after every module has been processed.
	// A returned error aborts the build attempt.
	BuildFinished(ctx context.Context, result *domain.BuildResult) error
}

// Freshness decides whether a module resource needs to be rebuilt.
type Freshness interface {
	// Changed reports whether path may have changed at or after since, a build time in
	// milliseconds since the Unix epoch.
	Changed(ctx context.Context, path string, since int64) bool
}

// BuildContext is the shared state a build pipeline reads during one build attempt.
type BuildContext struct {
	// BuildID identifies the build attempt.
	BuildID string
	// Cache holds the reusable module artifacts.
	Cache CacheStore
	// Timestamps is the published table for this build. Nil on the first build.
	Timestamps *domain.TimestampTable
	// Ledger is the hash ledger as of the previous build. Nil when the ledger is disabled.
	Ledger *domain.ModuleHashLedger
	// Freshness combines the timestamp table and ledger into a rebuild decision.
	Freshness Freshness
}
