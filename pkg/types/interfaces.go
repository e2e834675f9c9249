package types

import (
	"io/fs"
)

// FS is the filesystem interface required by the value store and loaders
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// SymlinkResolver is implemented by filesystems that can evaluate symlinks.
// Filesystems without symlink support leave paths untouched.
type SymlinkResolver interface {
	EvalSymlinks(path string) (string, error)
}
