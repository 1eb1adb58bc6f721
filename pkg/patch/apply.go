package patch

import (
	"strings"

	"github.com/arthur-debert/seam/pkg/backup"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/manifest"
	"github.com/arthur-debert/seam/pkg/types"
)

// ApplyOptions configures one apply run.
type ApplyOptions struct {
	// OnProgress receives per-entry notifications for every phase
	OnProgress types.ProgressFunc
}

// ApplyResult reports what a successful apply did.
type ApplyResult struct {
	// Manifest is the manifest that was applied
	Manifest *types.Manifest

	// Applied is the number of entries executed (including idempotent
	// delete no-ops)
	Applied int

	// BackupDir is the retained backup directory
	BackupDir string
}

// Apply applies the patch at patchDir to targetDir.
//
// Failures before the first mutation (manifest, restrictions,
// validation, backup) abort with the target untouched. Failures
// during apply or verify roll back every entry executed so far,
// including the failing one, and then return the triggering error.
// If that rollback itself fails the returned error is ErrRollback:
// the target is in neither the original nor the patched state and
// the backup directory is the remaining source of truth.
func (e *Engine) Apply(targetDir, patchDir string, opts ApplyOptions) (*ApplyResult, error) {
	logger := e.logger.With().
		Str("targetDir", targetDir).
		Str("patchDir", patchDir).
		Logger()
	done := logging.LogOperationStart(logger, "apply")
	defer done()

	m, err := e.ValidatePatchDir(patchDir)
	if err != nil {
		return nil, err
	}

	if violations := e.policy.CheckManifest(m, targetDir); len(violations) > 0 {
		lines := make([]string, len(violations))
		for i, v := range violations {
			lines[i] = v.String()
		}
		return nil, errors.Newf(errors.ErrRestricted, "cannot patch restricted paths:\n  %s",
			strings.Join(lines, "\n  ")).
			WithDetail("violations", lines).
			WithFile(violations[0].File)
	}

	// Refuse to stack a second apply on top of an existing backup
	// area, whether it came from a completed run or an aborted one.
	patched, err := e.IsAlreadyPatched(targetDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation, "cannot inspect target directory")
	}
	if patched {
		return nil, errors.Newf(errors.ErrAlreadyPatched,
			"backup directory %s already exists; target is already patched or a previous run aborted (rollback it first)",
			e.BackupPath(targetDir))
	}

	if err := validateEntries(e.fs, m.Entries, targetDir, opts.OnProgress); err != nil {
		logger.Error().Err(err).Msg("Validation phase failed")
		return nil, err
	}

	backupDir := e.BackupPath(targetDir)
	if err := backup.BackupEntries(e.fs, m.Entries, targetDir, backupDir, opts.OnProgress); err != nil {
		// No mutation has happened; the partial backup directory is
		// left in place as diagnostic residue.
		logger.Error().Err(err).Msg("Backup phase failed")
		return nil, err
	}

	if err := e.applyAndVerify(m, targetDir, patchDir, backupDir, opts.OnProgress); err != nil {
		return nil, err
	}

	// Snapshot the manifest next to the backups so a later rollback
	// does not depend on the patch directory still being around.
	if err := manifest.Save(e.fs, m, e.manifestPath(backupDir)); err != nil {
		logger.Warn().Err(err).Msg("Failed to record manifest snapshot in backup directory")
	}

	logger.Info().
		Int("entries", len(m.Entries)).
		Str("backupDir", backupDir).
		Msg("Patch applied")
	return &ApplyResult{
		Manifest:  m,
		Applied:   len(m.Entries),
		BackupDir: backupDir,
	}, nil
}

// applyAndVerify runs the apply+verify loop in manifest order and
// rolls back the applied prefix on the first failure.
func (e *Engine) applyAndVerify(m *types.Manifest, targetDir, patchDir, backupDir string, onProgress types.ProgressFunc) error {
	total := len(m.Entries)
	var applied []types.ManifestEntry

	for i, entry := range m.Entries {
		onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: applyAction(entry.Op)})

		// The failing entry may already have mutated the target, so
		// it joins the rollback set before its outcome is known.
		applied = append(applied, entry)

		if err := ApplyEntry(e.fs, e.layout, entry, targetDir, patchDir); err != nil {
			e.logger.Error().Err(err).Str("file", entry.File).Msg("Apply failed, rolling back")
			return e.rollbackAfterFailure(applied, targetDir, backupDir, err, onProgress)
		}

		onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressVerifying})
		if err := VerifyEntry(e.fs, entry, targetDir); err != nil {
			e.logger.Error().Err(err).Str("file", entry.File).Msg("Verification failed, rolling back")
			return e.rollbackAfterFailure(applied, targetDir, backupDir, err, onProgress)
		}
	}
	return nil
}

// rollbackAfterFailure restores the applied prefix and reports the
// original failure. A failed restore takes precedence: it is the more
// severe condition, and the backup directory must be preserved for
// manual recovery.
func (e *Engine) rollbackAfterFailure(applied []types.ManifestEntry, targetDir, backupDir string, cause error, onProgress types.ProgressFunc) error {
	if _, _, err := rollbackEntries(e.fs, applied, targetDir, backupDir, onProgress); err != nil {
		e.logger.Error().Err(err).Msg("Rollback failed; target state is indeterminate, backup directory preserved")
		return err
	}
	e.logger.Info().Int("entries", len(applied)).Msg("Rolled back applied entries")
	return cause
}

func applyAction(op types.Operation) types.ProgressAction {
	switch op {
	case types.OperationPatch:
		return types.ProgressPatching
	case types.OperationAdd:
		return types.ProgressAdding
	default:
		return types.ProgressDeleting
	}
}
