package create

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/seam/internal/cli"
	"github.com/arthur-debert/seam/pkg/patch"
)

// NewCommand creates the create command
func NewCommand() *cobra.Command {
	var (
		patchVersion    int
		title           string
		allowRestricted bool
	)

	cmd := &cobra.Command{
		Use:     "create <original-dir> <new-dir> <patch-output-dir>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := cli.NewEngine()
			if err != nil {
				return err
			}

			result, err := engine.Create(args[0], args[1], args[2], patch.CreateOptions{
				Version:         patchVersion,
				Title:           title,
				AllowRestricted: allowRestricted,
				OnProgress:      cli.ProgressPrinter(),
			})
			if err != nil {
				return err
			}

			summary := result.Manifest.Summary()
			pterm.Success.Printfln("Created patch in %s: %d patched, %d added, %d deleted",
				result.OutputDir, summary.Patches, summary.Additions, summary.Deletions)
			return nil
		},
	}

	cmd.Flags().IntVar(&patchVersion, "patch-version", 0, "Manifest version tag (default: current format version)")
	cmd.Flags().StringVar(&title, "title", "", "Human-readable patch name recorded in the manifest")
	cmd.Flags().BoolVar(&allowRestricted, "allow-restricted", false, "Allow the patch to touch restricted paths (trusted patches only)")

	return cmd
}
