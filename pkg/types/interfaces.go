package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotgirl operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat does not follow symlinks; implementations without symlink
	// support may fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Prompt is the interactive capability the link engine uses to resolve
// conflicts. Implementations must fail with an ENVIRONMENT error rather
// than block or crash when no interactive terminal is available.
type Prompt interface {
	// Confirm asks a yes/no question and returns the answer
	Confirm(message string) (bool, error)

	// Select presents choices and returns the index of the chosen one
	Select(message string, choices []string) (int, error)
}
