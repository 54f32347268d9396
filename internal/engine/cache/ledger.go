package cache

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// LedgerUpdater computes content hashes for the modules rebuilt in a build.
type LedgerUpdater struct {
	fs     ports.FileSystem
	hasher ports.Hasher
	limit  int
}

// NewLedgerUpdater creates a LedgerUpdater that hashes at most limit files at once.
func NewLedgerUpdater(fsys ports.FileSystem, hasher ports.Hasher, limit int) *LedgerUpdater {
	return &LedgerUpdater{fs: fsys, hasher: hasher, limit: max(limit, 1)}
}

// Hash returns resource -> hash for every rebuilt module. Cached and failed modules
// are ignored.
//
// A module that carries the digest of the bytes it was built from is recorded with
// that digest, so a file saved while the build ran does not match on the next build.
// Other modules are read and digested now. The first read failure cancels the
// remaining reads and fails the batch with domain.ErrHashComputationFailed.
func (u *LedgerUpdater) Hash(ctx context.Context, modules []domain.ModuleRecord) (map[string]string, error) {
	result := domain.BuildResult{Modules: modules}
	updates := make(map[string]string)

	var resources []string
	for _, m := range result.Rebuilt() {
		if m.ContentHash != "" {
			updates[m.Resource] = m.ContentHash
			continue
		}
		resources = append(resources, m.Resource)
	}
	slices.Sort(resources)
	resources = slices.Compact(resources)
	resources = slices.DeleteFunc(resources, func(resource string) bool {
		_, ok := updates[resource]
		return ok
	})

	hashes := make([]string, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.limit)

	for i, resource := range resources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := u.fs.ReadFile(gctx, resource)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "read failed"), "resource", resource)
			}
			hashes[i] = u.hasher.HashContent(data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Join(domain.ErrHashComputationFailed, err)
	}

	for i, resource := range resources {
		updates[resource] = hashes[i]
	}
	return updates, nil
}
