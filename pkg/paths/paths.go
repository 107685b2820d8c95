// Package paths centralizes the storage layout: where the storage root
// lives, where the lock file and per-bundle directories go, and how input
// paths map to storage-local names.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/happenslol/dotgirl/pkg/errors"
)

// Environment variable names
const (
	// EnvStorageDir overrides the storage root directory
	EnvStorageDir = "DOTGIRL_STORAGE_DIR"
)

// Storage layout names. These define dotgirl's on-disk structure and are
// not user-configurable; they must stay consistent across installations.
const (
	// StorageDirName is the storage root directory name under $HOME
	StorageDirName = "dotgirl"

	// BundleDirName is the subdirectory holding one directory per bundle
	BundleDirName = "bundle"

	// LockFileName is the name of the global lock file
	LockFileName = "lock.toml"

	// BundleFileName is the name of the per-bundle metadata file
	BundleFileName = "bundle.toml"
)

// Paths resolves every location dotgirl reads or writes
type Paths struct {
	storageRoot string
}

// New resolves the storage root from DOTGIRL_STORAGE_DIR, falling back to
// <home>/dotgirl. Fails with HOMEDIR_NOT_FOUND when the fallback is needed
// and no home directory can be determined.
func New() (*Paths, error) {
	if root := os.Getenv(EnvStorageDir); root != "" {
		return &Paths{storageRoot: filepath.Clean(root)}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHomedirNotFound, "could not determine home directory")
	}

	return &Paths{storageRoot: filepath.Join(home, StorageDirName)}, nil
}

// NewWithRoot creates a Paths rooted at an explicit storage directory
func NewWithRoot(root string) *Paths {
	return &Paths{storageRoot: filepath.Clean(root)}
}

// StorageRoot returns the storage root directory
func (p *Paths) StorageRoot() string {
	return p.storageRoot
}

// LockFilePath returns the location of the global lock file
func (p *Paths) LockFilePath() string {
	return filepath.Join(p.storageRoot, LockFileName)
}

// BundleDir returns the storage directory for the given bundle id
func (p *Paths) BundleDir(id string) string {
	return filepath.Join(p.storageRoot, BundleDirName, id)
}

// BundleMetaPath returns the metadata file location for the given bundle id
func (p *Paths) BundleMetaPath(id string) string {
	return filepath.Join(p.BundleDir(id), BundleFileName)
}

// EntryName derives the storage-local name for an input path: the final
// path component with a single leading dot stripped, so ".bashrc" is stored
// as "bashrc". Fails with PATH_COMPONENT_INVALID when the path has no
// nameable final component (e.g. the root directory).
func EntryName(path string) (string, error) {
	base := filepath.Base(filepath.Clean(path))
	if base == "/" || base == "." || base == ".." {
		return "", errors.Newf(errors.ErrPathComponentInvalid, "path has no usable final component: %s", path)
	}

	// Stripping the dot must not produce a traversal component: a final
	// component of "..." would otherwise become ".." and place the entry
	// outside the bundle directory
	name := strings.TrimPrefix(base, ".")
	if name == "" || name == "." || name == ".." {
		return "", errors.Newf(errors.ErrPathComponentInvalid, "path has no usable final component: %s", path)
	}

	return name, nil
}
