// Package link implements the link command: it re-establishes the symlinks
// of an already-added bundle from its stored metadata.
package link

import (
	"github.com/happenslol/dotgirl/pkg/filesystem"
	"github.com/happenslol/dotgirl/pkg/linker"
	"github.com/happenslol/dotgirl/pkg/logging"
	"github.com/happenslol/dotgirl/pkg/paths"
	"github.com/happenslol/dotgirl/pkg/store"
	"github.com/happenslol/dotgirl/pkg/types"
)

// Options holds the inputs for the link command
type Options struct {
	// BundleID names the bundle to link
	BundleID string

	// Storage resolves the storage layout; defaults to the user's home
	Storage *paths.Paths

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	Prompt types.Prompt
}

// Result describes what the link command did
type Result struct {
	// Bundle is the bundle as loaded from storage metadata
	Bundle types.Bundle

	// Linked is the subset of entries that were actually linked and
	// recorded in the lock; entries the user skipped are absent
	Linked []types.Entry
}

// Run links the named bundle. Remotes recorded in the bundle's previous
// lock record are pre-authorized so an unchanged re-link never prompts;
// entries the user skips are dropped from the lock record, so the next
// link will ask about them again.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.link")
	logger.Info().Str("bundle", opts.BundleID).Msg("Linking bundle")

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
	preAuthorized := lock.Remotes(opts.BundleID)

	bundle, err := store.LoadBundle(fsys, layout, opts.BundleID)
	if err != nil {
		return nil, err
	}

	linked, err := linker.Link(linker.Options{
		Bundle:        bundle,
		PreAuthorized: preAuthorized,
		FileSystem:    fsys,
		Prompt:        opts.Prompt,
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
		Msg("Link completed")

	return &Result{Bundle: bundle, Linked: linked}, nil
}
