package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	applycmd "github.com/arthur-debert/seam/cmd/seam/commands/apply"
	createcmd "github.com/arthur-debert/seam/cmd/seam/commands/create"
	rollbackcmd "github.com/arthur-debert/seam/cmd/seam/commands/rollback"
	statuscmd "github.com/arthur-debert/seam/cmd/seam/commands/status"
	"github.com/arthur-debert/seam/internal/version"
	"github.com/arthur-debert/seam/pkg/logging"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "seam",
		Short: "Binary-exact directory patching with transactional rollback",
		Long: `seam ships binary changesets between two versions of a directory of
files: a manifest of per-file operations (patch, add, delete) plus the
delta artifacts needed to carry them out.

Applying a patch is transactional: every file about to be mutated is
backed up first, every entry is verified against its expected content
hash immediately after it is applied, and the first failure rolls the
target back to exactly the state it was found in.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(createcmd.NewCommand())
	rootCmd.AddCommand(applycmd.NewCommand())
	rootCmd.AddCommand(rollbackcmd.NewCommand())
	rootCmd.AddCommand(statuscmd.NewCommand())
}
