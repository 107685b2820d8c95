package filesystem

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/happenslol/dotgirl/pkg/errors"
	"github.com/happenslol/dotgirl/pkg/types"
)

// The functions in this file express the storage capability contract over
// any types.FS, so the engine and commands run identically against the OS
// and the in-memory test filesystem. All failures carry an error code.

// Read returns the content of the file at path
func Read(fsys types.FS, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", path)
	}
	return data, nil
}

// Write creates or replaces the file at path with content
func Write(fsys types.FS, path string, content []byte) error {
	if err := fsys.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", path)
	}
	return nil
}

// MkdirAll creates path and every missing ancestor as directories. It is
// idempotent for paths made entirely of existing directories and fails with
// PATH_CONFLICT when any segment already exists as a non-directory.
func MkdirAll(fsys types.FS, path string) error {
	path = filepath.Clean(path)

	prefix := string(filepath.Separator)
	for _, seg := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if seg == "" {
			continue
		}
		prefix = filepath.Join(prefix, seg)

		info, err := fsys.Lstat(prefix)
		if err != nil {
			break
		}
		if !info.IsDir() {
			return errors.Newf(errors.ErrPathConflict, "%s exists and is not a directory", prefix)
		}
	}

	if err := fsys.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create directory %s", path)
	}
	return nil
}

// RemoveAll deletes path and everything nested under it. Removing a path
// where nothing exists is a no-op, not an error.
func RemoveAll(fsys types.FS, path string) error {
	if err := fsys.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to remove %s", path)
	}
	return nil
}

// CopyAll recursively duplicates the file, directory or symlink at from,
// overwriting existing content at to. Fails with SOURCE_NOT_FOUND when
// nothing exists at from.
func CopyAll(fsys types.FS, from, to string) error {
	info, err := fsys.Lstat(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceNotFound, "copy source does not exist: %s", from)
	}
	return copyNode(fsys, from, to, info)
}

func copyNode(fsys types.FS, from, to string, info fs.FileInfo) error {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := fsys.Readlink(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to read symlink %s", from)
		}
		if err := fsys.RemoveAll(to); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to replace %s", to)
		}
		if err := fsys.Symlink(target, to); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to create symlink %s", to)
		}

	case info.IsDir():
		if existing, err := fsys.Lstat(to); err == nil && !existing.IsDir() {
			if err := fsys.RemoveAll(to); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to replace %s", to)
			}
		}
		if err := fsys.MkdirAll(to, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to create directory %s", to)
		}
		entries, err := fsys.ReadDir(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to read directory %s", from)
		}
		for _, entry := range entries {
			entryInfo, err := entry.Info()
			if err != nil {
				return errors.Wrapf(err, errors.ErrIO, "failed to stat %s", filepath.Join(from, entry.Name()))
			}
			if err := copyNode(fsys, filepath.Join(from, entry.Name()), filepath.Join(to, entry.Name()), entryInfo); err != nil {
				return err
			}
		}

	default:
		data, err := fsys.ReadFile(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to read %s", from)
		}
		if err := fsys.WriteFile(to, data, info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "failed to write %s", to)
		}
	}

	return nil
}

// IsDir reports whether a directory exists at path, following symlinks.
// The predicates never fail; any error reads as false.
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether a regular file exists at path, following symlinks
func IsFile(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsSymlink reports whether path itself is a symlink
func IsSymlink(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// Exists reports whether anything exists at path, without following it
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}
