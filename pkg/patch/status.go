package patch

import (
	"github.com/arthur-debert/seam/pkg/types"
)

// Status describes a target directory's patch state.
type Status struct {
	// AlreadyPatched reports whether a backup directory is present
	AlreadyPatched bool

	// Summary describes the manifest found alongside the backup (or
	// the one passed in via a patch directory); nil when none is
	// available
	Summary *types.ManifestSummary
}

// Status inspects targetDir and, when patchDir is non-empty, the
// patch asset there. It never mutates anything.
func (e *Engine) Status(targetDir, patchDir string) (*Status, error) {
	patched, err := e.IsAlreadyPatched(targetDir)
	if err != nil {
		return nil, err
	}
	st := &Status{AlreadyPatched: patched}

	if patchDir != "" {
		m, err := e.ValidatePatchDir(patchDir)
		if err != nil {
			return nil, err
		}
		summary := m.Summary()
		st.Summary = &summary
	}

	return st, nil
}
