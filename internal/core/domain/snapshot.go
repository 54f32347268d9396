package domain

import "slices"

// DependencySnapshot is the set of paths that were read to produce one build.
// It is immutable once constructed; a finished build replaces it wholesale.
type DependencySnapshot struct {
	fileDependencies    []string
	contextDependencies []string
}

// NewDependencySnapshot creates a snapshot from the given file and directory paths.
// Both sets are copied, sorted and deduplicated.
func NewDependencySnapshot(files, contexts []string) *DependencySnapshot {
	return &DependencySnapshot{
		fileDependencies:    normalizePaths(files),
		contextDependencies: normalizePaths(contexts),
	}
}

// FileDependencies returns the individual files read by the build.
func (s *DependencySnapshot) FileDependencies() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.fileDependencies)
}

// ContextDependencies returns the directories whose listing was read by the build.
func (s *DependencySnapshot) ContextDependencies() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.contextDependencies)
}

// Paths returns the union of file and context dependencies in sorted order.
func (s *DependencySnapshot) Paths() []string {
	if s == nil {
		return nil
	}
	all := make([]string, 0, len(s.fileDependencies)+len(s.contextDependencies))
	all = append(all, s.fileDependencies...)
	all = append(all, s.contextDependencies...)
	return normalizePaths(all)
}

// Len returns the number of distinct paths in the snapshot.
func (s *DependencySnapshot) Len() int {
	return len(s.Paths())
}

func normalizePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
