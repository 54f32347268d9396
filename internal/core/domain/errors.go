package domain

import "go.trai.ch/zerr"

var (
	// ErrProbeFailed is returned when a dependency timestamp probe fails for a reason other than
	// the path not existing. It aborts the current build attempt.
	ErrProbeFailed = zerr.New("failed to probe dependency timestamps")

	// ErrHashComputationFailed is returned when a rebuilt module's content cannot be read or hashed
	// while updating the module hash ledger.
	ErrHashComputationFailed = zerr.New("failed to compute module content hash")

	// ErrInvalidTransition is returned when a lifecycle event arrives in a phase that does not accept it.
	ErrInvalidTransition = zerr.New("lifecycle event not allowed in current phase")

	// ErrInvalidAccuracy is returned when an accuracy window is not one of the supported granularities.
	ErrInvalidAccuracy = zerr.New("invalid accuracy window")

	// ErrStateReadFailed is returned when the persisted cache state cannot be read.
	ErrStateReadFailed = zerr.New("failed to read cache state")

	// ErrStateWriteFailed is returned when the cache state cannot be written.
	ErrStateWriteFailed = zerr.New("failed to write cache state")

	// ErrStateCorrupt is returned when the persisted cache state fails its integrity check.
	ErrStateCorrupt = zerr.New("cache state is corrupt")

	// ErrStateEncodeFailed is returned when the cache state cannot be encoded.
	ErrStateEncodeFailed = zerr.New("failed to encode cache state")

	// ErrStateDecodeFailed is returned when the cache state cannot be decoded.
	ErrStateDecodeFailed = zerr.New("failed to decode cache state")

	// ErrConfigNotFound is returned when no hoard.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find hoard.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file fails validation.
	ErrConfigInvalid = zerr.New("invalid config")

	// ErrModuleNotFound is returned when a require request cannot be resolved to a file.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrModuleBuildFailed is returned when a module's source cannot be read.
	ErrModuleBuildFailed = zerr.New("module build failed")

	// ErrBuildFailed is returned when a build finished with one or more module errors.
	ErrBuildFailed = zerr.New("build failed")

	// ErrAssetWriteFailed is returned when the emitted bundle cannot be written to disk.
	ErrAssetWriteFailed = zerr.New("failed to write asset")

	// ErrWatcherFailed is returned when the file system watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start watcher")
)
