package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/happenslol/dotgirl/internal/version"
	"github.com/happenslol/dotgirl/pkg/logging"
)

var verbosity int

// NewRootCmd builds the dotgirl command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dotgirl",
		Short: "A symlink-based dotfiles manager",
		Long: `dotgirl moves your configuration files into a managed storage
directory and replaces the originals with symlinks, so the managed copies
can be versioned or shared while everything stays where your system
expects it.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dotgirl %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
