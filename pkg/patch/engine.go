package patch

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/seam/pkg/config"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/restrict"
	"github.com/arthur-debert/seam/pkg/types"
)

// Engine runs patch creation, application and rollback against a
// filesystem. It is not safe for concurrent runs against the same
// target directory; the design assumes exclusive access for the
// duration of one run.
type Engine struct {
	fs     types.FS
	layout config.Layout
	policy *restrict.Policy
	logger zerolog.Logger
}

// NewEngine creates an engine over fs with the given configuration.
func NewEngine(fs types.FS, cfg *config.Config) *Engine {
	return &Engine{
		fs:     fs,
		layout: cfg.Layout,
		policy: restrict.New(cfg.Restrictions),
		logger: logging.GetLogger("patch.engine"),
	}
}

// Layout exposes the engine's layout constants.
func (e *Engine) Layout() config.Layout {
	return e.layout
}

// BackupPath returns the backup directory for a target.
func (e *Engine) BackupPath(targetDir string) string {
	return filepath.Join(targetDir, e.layout.BackupDir)
}

// IsAlreadyPatched reports whether targetDir carries a backup
// directory, the marker left behind by a completed (or aborted)
// apply run. This is a convention, not a lock: it does not protect
// against concurrent runs.
func (e *Engine) IsAlreadyPatched(targetDir string) (bool, error) {
	info, err := e.fs.Stat(e.BackupPath(targetDir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (e *Engine) manifestPath(patchDir string) string {
	return filepath.Join(patchDir, e.layout.ManifestFilename)
}

func (e *Engine) diffPath(patchDir, file string) string {
	return filepath.Join(patchDir, e.layout.DiffsDir, file+e.layout.DiffExtension)
}

func (e *Engine) addPath(patchDir, file string) string {
	return filepath.Join(patchDir, e.layout.FilesDir, file)
}
