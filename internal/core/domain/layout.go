package domain

import "path/filepath"

const (
	// HoardDirName is the name of the internal workspace directory.
	HoardDirName = ".hoard"

	// StateFileName is the name of the persisted cache state file.
	StateFileName = "state"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "hoard.yaml"

	// DefaultOutput is the bundle path used when the config does not name one.
	DefaultOutput = "dist/bundle.js"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStatePath returns the default path for the persisted cache state.
// It joins .hoard and state.
func DefaultStatePath() string {
	return filepath.Join(HoardDirName, StateFileName)
}
