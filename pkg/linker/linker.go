// Package linker implements the link-reconciliation engine: given a bundle,
// it re-establishes a symlink at every entry's remote location pointing at
// the entry's storage copy, resolving conflicts with whatever already
// occupies those locations.
package linker

import (
	"fmt"
	"path/filepath"

	"github.com/happenslol/dotgirl/pkg/errors"
	"github.com/happenslol/dotgirl/pkg/filesystem"
	"github.com/happenslol/dotgirl/pkg/logging"
	"github.com/happenslol/dotgirl/pkg/types"
)

// Choices presented when something already occupies a remote location
const (
	choiceSkip = iota
	choiceOverwrite
	choiceOverwriteAll
)

var conflictChoices = []string{"skip", "overwrite", "overwrite all"}

// Options holds the inputs for a link pass
type Options struct {
	// Bundle holds the entries to link, in order
	Bundle types.Bundle

	// PreAuthorized is the set of remote paths that may be overwritten
	// without prompting, taken from the bundle's previous lock record
	PreAuthorized map[string]bool

	// OverwriteAll suppresses all conflict prompts from the start
	OverwriteAll bool

	FileSystem types.FS
	Prompt     types.Prompt
}

// Link walks the bundle's entries in order and symlinks each remote to its
// storage copy. Entries the user chooses to skip are left untouched and
// omitted from the result. Filesystem errors and declined ancestor
// conflicts abort the pass; entries linked before the abort stay linked.
func Link(opts Options) ([]types.Entry, error) {
	logger := logging.GetLogger("linker")
	logger.Debug().
		Str("bundle", opts.Bundle.ID).
		Int("entries", len(opts.Bundle.Entries)).
		Int("preAuthorized", len(opts.PreAuthorized)).
		Bool("overwriteAll", opts.OverwriteAll).
		Msg("Starting link pass")

	fsys := opts.FileSystem
	overwriteAll := opts.OverwriteAll
	linked := make([]types.Entry, 0, len(opts.Bundle.Entries))

	for _, entry := range opts.Bundle.Entries {
		if err := prepareAncestors(fsys, opts.Prompt, entry); err != nil {
			return linked, err
		}

		if filesystem.Exists(fsys, entry.Remote) {
			if !overwriteAll && !opts.PreAuthorized[entry.Remote] {
				choice, err := opts.Prompt.Select(
					fmt.Sprintf("%s already exists.", entry.Remote),
					conflictChoices,
				)
				if err != nil {
					return linked, err
				}

				switch choice {
				case choiceSkip:
					logger.Info().Str("remote", entry.Remote).Msg("Skipping entry")
					continue
				case choiceOverwriteAll:
					overwriteAll = true
				}
			}

			if err := filesystem.RemoveAll(fsys, entry.Remote); err != nil {
				return linked, err
			}
		}

		if err := fsys.Symlink(entry.Local, entry.Remote); err != nil {
			return linked, errors.Wrapf(err, errors.ErrIO, "failed to create symlink at %s", entry.Remote)
		}

		logger.Debug().
			Str("remote", entry.Remote).
			Str("local", entry.Local).
			Msg("Linked entry")
		linked = append(linked, entry)
	}

	logger.Debug().
		Str("bundle", opts.Bundle.ID).
		Int("linked", len(linked)).
		Msg("Link pass finished")
	return linked, nil
}

// prepareAncestors makes sure the remote's parent exists as a directory.
// A parent that exists as a regular file occupies the space where the
// directory chain is needed; the user can confirm its removal, and a
// declined confirmation aborts the whole invocation.
func prepareAncestors(fsys types.FS, prompt types.Prompt, entry types.Entry) error {
	parent := filepath.Dir(entry.Remote)

	if filesystem.IsFile(fsys, parent) {
		message := fmt.Sprintf(
			"You're trying to link %s, but %s is a file. Do you want to overwrite the file and create a directory instead?",
			entry.Remote, parent,
		)

		confirmed, err := prompt.Confirm(message)
		if err != nil {
			return err
		}
		if !confirmed {
			return errors.Newf(errors.ErrUserDeclined, "cannot link %s while %s is a file", entry.Remote, parent)
		}

		if err := filesystem.RemoveAll(fsys, parent); err != nil {
			return err
		}
	}

	if !filesystem.IsDir(fsys, parent) {
		return filesystem.MkdirAll(fsys, parent)
	}
	return nil
}
