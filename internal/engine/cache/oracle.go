package cache

import (
	"context"
	"errors"
	"io/fs"

	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ProbeResult is the outcome of one successful probe batch.
type ProbeResult struct {
	// Table holds the bumped modification time of every path that was found.
	Table *domain.TimestampTable
	// Window is the accuracy window after observing every timestamp in the batch.
	Window domain.AccuracyWindow
	// Missing lists the paths that no longer exist.
	Missing []string
}

// Oracle resolves the current modification times of a dependency snapshot.
type Oracle struct {
	fs    ports.FileSystem
	limit int
}

// NewOracle creates an Oracle that runs at most limit stat calls at once.
func NewOracle(fsys ports.FileSystem, limit int) *Oracle {
	return &Oracle{fs: fsys, limit: max(limit, 1)}
}

type probe struct {
	mtime int64
	found bool
}

// Probe stats every path in snapshot concurrently and waits for all of them.
//
// Paths that do not exist are left out of the table. Any other stat failure cancels
// the remaining probes and fails the batch with domain.ErrProbeFailed; no table is
// returned in that case. Once every probe has settled, each observed time narrows
// window and every recorded time is bumped by the final window.
func (o *Oracle) Probe(
	ctx context.Context,
	snapshot *domain.DependencySnapshot,
	window domain.AccuracyWindow,
) (ProbeResult, error) {
	paths := snapshot.Paths()
	results := make([]probe, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			info, err := o.fs.Stat(gctx, path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return zerr.With(zerr.Wrap(err, "stat failed"), "path", path)
			}

			mtime := domain.MtimeUnknown
			if mt := info.ModTime(); !mt.IsZero() {
				mtime = mt.UnixMilli()
			}
			results[i] = probe{mtime: mtime, found: true}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ProbeResult{}, errors.Join(domain.ErrProbeFailed, err)
	}

	// Narrowing is a running minimum, so applying it after the barrier in path order
	// gives the same window as applying it as each probe completes.
	for _, r := range results {
		if r.found && r.mtime != domain.MtimeUnknown {
			window = window.Observe(r.mtime)
		}
	}

	entries := make(map[string]int64, len(paths))
	var missing []string
	for i, r := range results {
		switch {
		case !r.found:
			missing = append(missing, paths[i])
		case r.mtime == domain.MtimeUnknown:
			entries[paths[i]] = r.mtime
		default:
			entries[paths[i]] = r.mtime + window.Milliseconds()
		}
	}

	return ProbeResult{
		Table:   domain.NewTimestampTable(entries),
		Window:  window,
		Missing: missing,
	}, nil
}
