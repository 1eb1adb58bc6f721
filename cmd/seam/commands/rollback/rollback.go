package rollback

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/seam/internal/cli"
	"github.com/arthur-debert/seam/pkg/patch"
)

// NewCommand creates the rollback command
func NewCommand() *cobra.Command {
	var (
		force      bool
		keepBackup bool
	)

	cmd := &cobra.Command{
		Use:     "rollback <target-dir> [manifest-path]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := cli.NewEngine()
			if err != nil {
				return err
			}

			manifestPath := ""
			if len(args) > 1 {
				manifestPath = args[1]
			}

			result, err := engine.Rollback(args[0], manifestPath, patch.RollbackOptions{
				Force:      force,
				KeepBackup: keepBackup,
				OnProgress: cli.ProgressPrinter(),
			})
			if err != nil {
				return err
			}

			pterm.Success.Printfln("Rolled back: %d files restored, %d added files removed", result.Restored, result.Removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the check that the target is in the patched state")
	cmd.Flags().BoolVar(&keepBackup, "keep-backup", false, "Keep the backup directory after a successful rollback")

	return cmd
}
