package apply

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/seam/internal/cli"
	"github.com/arthur-debert/seam/pkg/patch"
)

// NewCommand creates the apply command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apply <target-dir> <patch-dir>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := cli.NewEngine()
			if err != nil {
				return err
			}

			result, err := engine.Apply(args[0], args[1], patch.ApplyOptions{
				OnProgress: cli.ProgressPrinter(),
			})
			if err != nil {
				return err
			}

			pterm.Success.Printfln("Applied %d entries; backup retained at %s", result.Applied, result.BackupDir)
			return nil
		},
	}

	return cmd
}
