package bundler

import (
	"time"

	"go.trai.ch/hoard/internal/core/domain"
)

// Asset is the single output file of a build.
type Asset struct {
	// Name is the asset's file name.
	Name string
	// Content is the concatenated bundle.
	Content []byte
	// Hash is the content hash of Content.
	Hash string
}

// Stats summarizes one build.
type Stats struct {
	BuildID  string
	Asset    Asset
	Emitted  bool
	Errors   []error
	Result   *domain.BuildResult
	Duration time.Duration
}

// Built returns how many modules were built.
func (s *Stats) Built() int {
	return s.Result.Count(domain.ModuleBuilt)
}

// Cached returns how many modules were reused from the cache.
func (s *Stats) Cached() int {
	return s.Result.Count(domain.ModuleCached)
}

// HasErrors reports whether any module failed.
func (s *Stats) HasErrors() bool {
	return len(s.Errors) > 0
}
