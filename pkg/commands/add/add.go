// Package add implements the add command: it relocates paths into a
// bundle's storage directory and replaces the originals with symlinks.
package add

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/happenslol/dotgirl/pkg/errors"
	"github.com/happenslol/dotgirl/pkg/filesystem"
	"github.com/happenslol/dotgirl/pkg/linker"
	"github.com/happenslol/dotgirl/pkg/logging"
	"github.com/happenslol/dotgirl/pkg/paths"
	"github.com/happenslol/dotgirl/pkg/store"
	"github.com/happenslol/dotgirl/pkg/types"
)

// Options holds the inputs for the add command
type Options struct {
	// BundleID names the bundle to create or extend
	BundleID string

	// Paths are the absolute paths to ingest into the bundle
	Paths []string

	// Storage resolves the storage layout; defaults to the user's home
	Storage *paths.Paths

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	Prompt types.Prompt
}

// Result describes what the add command did
type Result struct {
	// Bundle is the persisted bundle, including entries from earlier
	// add calls on the same id
	Bundle types.Bundle

	// Linked is the subset of entries recorded in the lock
	Linked []types.Entry

	// Skipped lists input paths excluded because they are symlinks
	Skipped []string

	// Created reports whether the bundle directory was newly created
	Created bool
}

// Run ingests the given paths into the bundle and links them. Each input
// is copied into storage under its final path component with a single
// leading dot stripped, the original is deleted, and a symlink takes its
// place. Inputs that are themselves symlinks are skipped.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.add")
	logger.Info().
		Str("bundle", opts.BundleID).
		Strs("paths", opts.Paths).
		Msg("Adding paths to bundle")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	layout := opts.Storage
	if layout == nil {
		resolved, err := paths.New()
		if err != nil {
			return nil, err
		}
		layout = resolved
	}

	lock, err := store.LoadLock(fsys, layout)
	if err != nil {
		return nil, err
	}

	// A symlink cannot be relocated into storage and re-pointed, so it
	// is excluded rather than failing the whole command
	var inputs []string
	var skipped []string
	for _, path := range opts.Paths {
		if filesystem.IsSymlink(fsys, path) {
			logger.Warn().Str("path", path).Msg("Input is a symlink, skipping")
			skipped = append(skipped, path)
			continue
		}
		inputs = append(inputs, path)
	}

	bundleDir := layout.BundleDir(opts.BundleID)
	created := !filesystem.IsDir(fsys, bundleDir)
	if created {
		if err := filesystem.MkdirAll(fsys, bundleDir); err != nil {
			return nil, err
		}
	}

	bundle := types.Bundle{ID: opts.BundleID}
	if !created {
		// Repeated adds extend the bundle: keep what earlier calls
		// recorded and let same-remote entries replace their older
		// version
		existing, err := store.LoadBundle(fsys, layout, opts.BundleID)
		if err == nil {
			bundle.Entries = existing.Entries
		} else if !errors.IsErrorCode(err, errors.ErrBundleMissingMetadata) {
			return nil, err
		}
	}

	for _, remote := range inputs {
		entry, err := ingest(fsys, logger, bundleDir, remote)
		if err != nil {
			return nil, err
		}
		bundle.Upsert(entry)
	}

	if err := store.SaveBundle(fsys, layout, bundle); err != nil {
		return nil, err
	}

	// Freshly copied content never needs a conflict prompt; the engine
	// still clears any stale state at the remote locations
	linked, err := linker.Link(linker.Options{
		Bundle:       bundle,
		OverwriteAll: true,
		FileSystem:   fsys,
		Prompt:       opts.Prompt,
	})
	if err != nil {
		return nil, err
	}

	lock.Replace(types.Bundle{ID: opts.BundleID, Entries: linked})
	if err := store.SaveLock(fsys, layout, lock); err != nil {
		return nil, err
	}

	logger.Info().
		Str("bundle", opts.BundleID).
		Int("linked", len(linked)).
		Int("skipped", len(skipped)).
		Msg("Add completed")

	return &Result{
		Bundle:  bundle,
		Linked:  linked,
		Skipped: skipped,
		Created: created,
	}, nil
}

// ingest copies one path into storage and removes the original
func ingest(fsys types.FS, logger zerolog.Logger, bundleDir, remote string) (types.Entry, error) {
	name, err := paths.EntryName(remote)
	if err != nil {
		return types.Entry{}, err
	}

	local := filepath.Join(bundleDir, name)
	if err := filesystem.CopyAll(fsys, remote, local); err != nil {
		return types.Entry{}, err
	}
	if err := filesystem.RemoveAll(fsys, remote); err != nil {
		return types.Entry{}, err
	}

	logger.Debug().
		Str("remote", remote).
		Str("local", local).
		Msg("Moved path into storage")

	return types.Entry{Local: local, Remote: remote}, nil
}
