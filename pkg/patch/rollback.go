package patch

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/seam/pkg/backup"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/manifest"
	"github.com/arthur-debert/seam/pkg/types"
)

// RollbackOptions configures a standalone rollback run.
type RollbackOptions struct {
	// Force skips the check that the target is in the patched state.
	// Use it when the target has since been altered by other means
	// and the strict check would block a legitimate rollback. Backup
	// integrity is still verified.
	Force bool

	// KeepBackup retains the backup directory after a successful
	// rollback instead of removing it
	KeepBackup bool

	// OnProgress receives per-entry notifications
	OnProgress types.ProgressFunc
}

// RollbackResult reports what a rollback did.
type RollbackResult struct {
	// Restored is the number of files copied back from backup
	Restored int

	// Removed is the number of added files deleted
	Removed int

	// BackupRemoved reports whether the backup directory was cleaned up
	BackupRemoved bool
}

// Rollback restores targetDir from its backup directory, undoing a
// previously applied patch: every backed-up file is copied back and
// every added file is removed. It works the same whether the apply
// succeeded long ago or aborted half-way.
//
// manifestPath may be empty, in which case the manifest snapshot the
// apply recorded inside the backup directory is used.
func (e *Engine) Rollback(targetDir, manifestPath string, opts RollbackOptions) (*RollbackResult, error) {
	logger := e.logger.With().
		Str("targetDir", targetDir).
		Bool("force", opts.Force).
		Logger()
	done := logging.LogOperationStart(logger, "rollback")
	defer done()

	backupDir := e.BackupPath(targetDir)
	if _, err := e.fs.Stat(backupDir); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrRollback, "backup directory not found: %s", backupDir)
		}
		return nil, errors.Wrapf(err, errors.ErrRollback, "cannot inspect backup directory %s", backupDir)
	}

	if manifestPath == "" {
		manifestPath = e.manifestPath(backupDir)
	}
	m, err := manifest.Load(e.fs, manifestPath)
	if err != nil {
		return nil, err
	}

	if err := validateBackup(e.fs, m.Entries, backupDir, opts.OnProgress); err != nil {
		logger.Error().Err(err).Msg("Backup integrity check failed")
		return nil, err
	}

	if !opts.Force {
		if err := validatePatchedEntries(e.fs, m.Entries, targetDir, opts.OnProgress); err != nil {
			return nil, errors.Wrap(err, errors.ErrRollback,
				"target is not in the patched state (use --force to roll back anyway)")
		}
	}

	restored, removed, err := rollbackEntries(e.fs, m.Entries, targetDir, backupDir, opts.OnProgress)
	if err != nil {
		logger.Error().Err(err).Msg("Rollback incomplete; backup directory preserved")
		return nil, err
	}

	result := &RollbackResult{Restored: restored, Removed: removed}
	if !opts.KeepBackup {
		if err := e.fs.RemoveAll(backupDir); err != nil {
			logger.Warn().Err(err).Str("backupDir", backupDir).Msg("Failed to remove backup directory")
		} else {
			result.BackupRemoved = true
		}
	}

	logger.Info().
		Int("restored", restored).
		Int("removed", removed).
		Msg("Rollback completed")
	return result, nil
}

// rollbackEntries undoes the given entries: patch and delete targets
// are restored from backup (a delete target with no backup copy was
// already absent at apply time and is left alone), added files are
// removed.
//
// A restore failure does not stop the loop: every remaining file that
// can be put back is put back, and the failures are reported together
// afterwards. Stopping at the first failure would only enlarge the
// indeterminate region of the target.
func rollbackEntries(fs types.FS, entries []types.ManifestEntry, targetDir, backupDir string, onProgress types.ProgressFunc) (restored, removed int, err error) {
	logger := logging.GetLogger("patch.rollback")
	total := len(entries)
	var failures []error

	for i, entry := range entries {
		targetPath := filepath.Join(targetDir, entry.File)

		switch entry.Op {
		case types.OperationPatch:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressRestoring})
			if restoreErr := backup.RestoreFile(fs, targetPath, backupDir); restoreErr != nil {
				logger.Error().Err(restoreErr).Str("file", entry.File).Msg("Restore failed")
				failures = append(failures, restoreErr)
				continue
			}
			restored++

		case types.OperationDelete:
			// Only restore if a backup copy exists; otherwise the file
			// was already absent before the apply
			backupPath := filepath.Join(backupDir, entry.File)
			if _, statErr := fs.Stat(backupPath); os.IsNotExist(statErr) {
				onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressSkipping})
				continue
			}
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressRestoring})
			if restoreErr := backup.RestoreFile(fs, targetPath, backupDir); restoreErr != nil {
				logger.Error().Err(restoreErr).Str("file", entry.File).Msg("Restore failed")
				failures = append(failures, restoreErr)
				continue
			}
			restored++

		case types.OperationAdd:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressRemoving})
			if _, statErr := fs.Stat(targetPath); os.IsNotExist(statErr) {
				continue
			}
			if removeErr := fs.Remove(targetPath); removeErr != nil {
				removeErr = errors.Wrapf(removeErr, errors.ErrRollback, "failed to remove added file %q", entry.File).WithFile(entry.File)
				logger.Error().Err(removeErr).Str("file", entry.File).Msg("Remove failed")
				failures = append(failures, removeErr)
				continue
			}
			removed++
		}
	}

	if len(failures) > 0 {
		return restored, removed, errors.Wrapf(failures[0], errors.ErrRollback,
			"rollback incomplete: %d of %d entries failed", len(failures), total).
			WithDetail("failed", len(failures))
	}
	return restored, removed, nil
}
