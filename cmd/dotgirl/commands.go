package main

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/happenslol/dotgirl/pkg/commands/add"
	"github.com/happenslol/dotgirl/pkg/commands/link"
	"github.com/happenslol/dotgirl/pkg/errors"
	"github.com/happenslol/dotgirl/pkg/ui/prompt"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <bundle> <input...>",
		Short: "Add paths to a bundle and link them",
		Long: `Copies each input into the bundle's storage directory, deletes the
original and puts a symlink in its place. Inputs that are themselves
symlinks are skipped. The bundle is created if it does not exist yet.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundleID := args[0]

			inputs := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				abs, err := filepath.Abs(arg)
				if err != nil {
					return errors.Wrapf(err, errors.ErrPathComponentInvalid, "invalid path %q", arg)
				}
				inputs = append(inputs, abs)
			}

			result, err := add.Run(add.Options{
				BundleID: bundleID,
				Paths:    inputs,
				Prompt:   prompt.NewConsole(),
			})
			if err != nil {
				return err
			}

			if result.Created {
				pterm.Info.Printfln("creating bundle `%s`", bundleID)
			} else {
				pterm.Info.Printfln("adding to existing bundle `%s`", bundleID)
			}
			for _, skipped := range result.Skipped {
				pterm.Warning.Printfln("skipped symlink %s", skipped)
			}
			pterm.Success.Printfln("linked %d entries", len(result.Linked))

			return nil
		},
	}
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <bundle>",
		Short: "Re-link an already-added bundle",
		Long: `Reads the bundle's stored metadata and re-establishes a symlink for
every entry. Entries linked by the previous run are re-linked without
prompting; anything else occupying an entry's location asks for a
skip/overwrite decision.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := link.Run(link.Options{
				BundleID: args[0],
				Prompt:   prompt.NewConsole(),
			})
			if err != nil {
				return err
			}

			skipped := len(result.Bundle.Entries) - len(result.Linked)
			if skipped > 0 {
				pterm.Warning.Printfln("skipped %d entries", skipped)
			}
			pterm.Success.Printfln("linked %d entries", len(result.Linked))

			return nil
		},
	}
}
