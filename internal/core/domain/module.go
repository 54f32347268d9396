package domain

// ModuleStatus represents what happened to a module during one build.
type ModuleStatus string

const (
	// ModuleBuilt indicates the module was read and built in this build.
	ModuleBuilt ModuleStatus = "built"
	// ModuleCached indicates the module was served from the cache store unchanged.
	ModuleCached ModuleStatus = "cached"
	// ModuleFailed indicates the module could not be built.
	ModuleFailed ModuleStatus = "failed"
)

// ModuleRecord describes one module processed by a build.
type ModuleRecord struct {
	// Key is the module's cache key.
	Key string
	// Resource is the absolute path of the module's source file. Empty for synthetic modules.
	Resource string
	// Status is the outcome for this module.
	Status ModuleStatus
	// ContentHash is the digest of the source bytes the module was built from.
	// Set only when Status is ModuleBuilt.
	ContentHash string
	// Err is set when Status is ModuleFailed.
	Err error
}

// BuildResult is what a finished build reports to the cache lifecycle.
type BuildResult struct {
	// FileDependencies are the files read by the build.
	FileDependencies []string
	// ContextDependencies are the directories whose listing was read by the build.
	ContextDependencies []string
	// Modules lists every module the build touched.
	Modules []ModuleRecord
}

// Rebuilt returns the modules that were actually built and have a resource path.
func (r *BuildResult) Rebuilt() []ModuleRecord {
	if r == nil {
		return nil
	}
	var out []ModuleRecord
	for _, m := range r.Modules {
		if m.Status == ModuleBuilt && m.Resource != "" {
			out = append(out, m)
		}
	}
	return out
}

// Count returns how many modules ended with the given status.
func (r *BuildResult) Count(status ModuleStatus) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, m := range r.Modules {
		if m.Status == status {
			n++
		}
	}
	return n
}
