// Package store persists the Lock and per-bundle metadata as TOML files
// inside the storage area.
package store

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/happenslol/dotgirl/pkg/errors"
	"github.com/happenslol/dotgirl/pkg/filesystem"
	"github.com/happenslol/dotgirl/pkg/paths"
	"github.com/happenslol/dotgirl/pkg/types"
)

// LoadLock reads the global lock file. A missing lock file is not an
// error; it simply means nothing has been linked yet.
func LoadLock(fsys types.FS, p *paths.Paths) (types.Lock, error) {
	var lock types.Lock

	lockPath := p.LockFilePath()
	if !filesystem.IsFile(fsys, lockPath) {
		return lock, nil
	}

	data, err := filesystem.Read(fsys, lockPath)
	if err != nil {
		return lock, err
	}

	if err := toml.Unmarshal(data, &lock); err != nil {
		return lock, errors.Wrapf(err, errors.ErrSerialization, "malformed lock file %s", lockPath)
	}

	return lock, nil
}

// SaveLock serializes and fully overwrites the global lock file, creating
// the storage root if it does not exist yet.
func SaveLock(fsys types.FS, p *paths.Paths, lock types.Lock) error {
	if err := filesystem.MkdirAll(fsys, p.StorageRoot()); err != nil {
		return err
	}

	data, err := toml.Marshal(lock)
	if err != nil {
		return errors.Wrap(err, errors.ErrSerialization, "failed to serialize lock")
	}

	return filesystem.Write(fsys, p.LockFilePath(), data)
}

// LoadBundle reads a bundle's metadata from its storage directory
func LoadBundle(fsys types.FS, p *paths.Paths, id string) (types.Bundle, error) {
	var bundle types.Bundle

	dir := p.BundleDir(id)
	if !filesystem.IsDir(fsys, dir) {
		return bundle, errors.Newf(errors.ErrBundleNotFound, "no bundle named %q in storage", id)
	}

	metaPath := p.BundleMetaPath(id)
	if !filesystem.IsFile(fsys, metaPath) {
		return bundle, errors.Newf(errors.ErrBundleMissingMetadata, "bundle %q has no metadata file", id)
	}

	data, err := filesystem.Read(fsys, metaPath)
	if err != nil {
		return bundle, err
	}

	if err := toml.Unmarshal(data, &bundle); err != nil {
		return bundle, errors.Wrapf(err, errors.ErrSerialization, "malformed bundle metadata %s", metaPath)
	}

	return bundle, nil
}

// SaveBundle serializes and fully overwrites a bundle's metadata file,
// creating the bundle directory if needed.
func SaveBundle(fsys types.FS, p *paths.Paths, bundle types.Bundle) error {
	if err := filesystem.MkdirAll(fsys, p.BundleDir(bundle.ID)); err != nil {
		return err
	}

	data, err := toml.Marshal(bundle)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSerialization, "failed to serialize bundle %q", bundle.ID)
	}

	return filesystem.Write(fsys, p.BundleMetaPath(bundle.ID), data)
}
