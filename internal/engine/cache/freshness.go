package cache

import (
	"context"

	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
)

var _ ports.Freshness = (*Freshness)(nil)

// Freshness decides whether a module resource must be rebuilt.
//
// A path missing from the table is unknown and always changed. A path whose bumped
// timestamp is older than the module's build time is unchanged. Otherwise the path is
// possibly changed: when the ledger holds a hash for it, the current content is hashed
// and compared; without a recorded hash it is changed.
type Freshness struct {
	table  *domain.TimestampTable
	ledger *domain.ModuleHashLedger
	fs     ports.FileSystem
	hasher ports.Hasher
	logger ports.Logger
}

// NewFreshness creates a Freshness over a published table. ledger may be nil to
// disable the content hash fallback.
func NewFreshness(
	table *domain.TimestampTable,
	ledger *domain.ModuleHashLedger,
	fsys ports.FileSystem,
	hasher ports.Hasher,
	logger ports.Logger,
) *Freshness {
	return &Freshness{table: table, ledger: ledger, fs: fsys, hasher: hasher, logger: logger}
}

// Changed reports whether path may have changed at or after since.
func (f *Freshness) Changed(ctx context.Context, path string, since int64) bool {
	if _, ok := f.table.Get(path); !ok {
		return true
	}
	if !f.table.ChangedSince(path, since) {
		return false
	}

	recorded, ok := f.ledger.Get(path)
	if !ok {
		return true
	}

	data, err := f.fs.ReadFile(ctx, path)
	if err != nil {
		f.logger.Debug("hash fallback unavailable", "path", path, "error", err)
		return true
	}

	if f.hasher.HashContent(data) != recorded {
		return true
	}
	f.logger.Debug("content unchanged despite timestamp", "path", path)
	return false
}
