package status

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/seam/internal/cli"
)

// NewCommand creates the status command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status <target-dir> [patch-dir]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := cli.NewEngine()
			if err != nil {
				return err
			}

			patchDir := ""
			if len(args) > 1 {
				patchDir = args[1]
			}

			st, err := engine.Status(args[0], patchDir)
			if err != nil {
				return err
			}

			if st.AlreadyPatched {
				pterm.Info.Printfln("Target is patched (backup present at %s)", engine.BackupPath(args[0]))
			} else {
				pterm.Info.Printfln("Target is not patched")
			}

			if st.Summary != nil {
				s := st.Summary
				title := s.Title
				if title == "" {
					title = "(untitled)"
				}
				pterm.Info.Printfln("Patch %s: version %d, %d entries (%d patched, %d added, %d deleted)",
					title, s.Version, s.Total, s.Patches, s.Additions, s.Deletions)
			}
			return nil
		},
	}

	return cmd
}
