// Package cli holds the glue shared by seam's subcommands: engine
// construction and terminal rendering of progress and errors.
package cli

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/seam/pkg/config"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/filesystem"
	"github.com/arthur-debert/seam/pkg/patch"
	"github.com/arthur-debert/seam/pkg/types"
)

// NewEngine builds a patch engine over the OS filesystem with the
// effective configuration (embedded defaults plus SEAM_CONFIG).
func NewEngine() (*patch.Engine, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	return patch.NewEngine(filesystem.NewOS(), cfg), nil
}

var actionLabels = map[types.ProgressAction]string{
	types.ProgressValidating: "Validating",
	types.ProgressChecking:   "Checking",
	types.ProgressBackingUp:  "Backing up",
	types.ProgressSkipping:   "Skipping",
	types.ProgressPatching:   "Patching",
	types.ProgressAdding:     "Adding",
	types.ProgressDeleting:   "Deleting",
	types.ProgressVerifying:  "Verifying",
	types.ProgressRestoring:  "Restoring",
	types.ProgressRemoving:   "Removing",
}

// ProgressPrinter returns a ProgressFunc that renders one line per
// entry per phase.
func ProgressPrinter() types.ProgressFunc {
	return func(p types.Progress) {
		label, ok := actionLabels[p.Action]
		if !ok {
			label = string(p.Action)
		}
		pterm.Info.Printfln("%s [%d/%d]: %s", label, p.Index+1, p.Total, p.File)
	}
}

// RenderError prints err for a human, naming the offending file when
// the error carries one.
func RenderError(err error) {
	if err == nil {
		return
	}
	if details := errors.GetErrorDetails(err); details != nil {
		if file, ok := details["file"].(string); ok && file != "" {
			pterm.Error.Printfln("%s (file: %s)", err.Error(), file)
			return
		}
	}
	pterm.Error.Printfln("%s", err.Error())
}
