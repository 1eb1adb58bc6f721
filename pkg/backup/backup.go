// Package backup copies files into an isolated backup area before the
// engine mutates them, and restores them on demand during rollback.
//
// The backup area is flat: each copy keeps its original name. Its
// presence at a target root is also the marker that the directory is
// already patched (or that a previous apply aborted mid-way), so it is
// never removed as a side effect of a successful apply.
package backup

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/types"
)

// BackupFile copies path into backupDir under its base name, creating
// backupDir if absent. Any I/O failure reports ErrBackup with the
// offending file.
func BackupFile(fs types.FS, path, backupDir string) error {
	name := filepath.Base(path)

	if err := fs.MkdirAll(backupDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "failed to create backup directory %s", backupDir).WithFile(name)
	}

	info, err := fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "cannot read %s", path).WithFile(name)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "cannot read %s", path).WithFile(name)
	}

	dest := filepath.Join(backupDir, name)
	if err := fs.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrBackup, "cannot write backup copy %s", dest).WithFile(name)
	}
	return nil
}

// RestoreFile copies the backed-up copy of path's base name from
// backupDir back over path. A missing backup copy is an internal
// inconsistency: it cannot happen if the backup phase completed, so
// it reports ErrRollback rather than a not-found condition.
func RestoreFile(fs types.FS, path, backupDir string) error {
	name := filepath.Base(path)
	src := filepath.Join(backupDir, name)

	info, err := fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrRollback, "backup copy missing for %s", name).WithFile(name)
		}
		return errors.Wrapf(err, errors.ErrRollback, "cannot read backup copy %s", src).WithFile(name)
	}

	data, err := fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRollback, "cannot read backup copy %s", src).WithFile(name)
	}

	if err := fs.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrRollback, "cannot restore %s", path).WithFile(name)
	}
	return nil
}

// BackupEntries snapshots every file the given entries will mutate:
// patch and delete targets are copied, add targets are skipped (they
// do not exist yet), and a delete target that is already absent is
// skipped as well.
func BackupEntries(fs types.FS, entries []types.ManifestEntry, targetDir, backupDir string, onProgress types.ProgressFunc) error {
	logger := logging.GetLogger("backup")
	total := len(entries)

	for i, entry := range entries {
		switch entry.Op {
		case types.OperationPatch, types.OperationDelete:
			targetPath := filepath.Join(targetDir, entry.File)
			if _, err := fs.Stat(targetPath); os.IsNotExist(err) {
				// Delete targets may already be gone
				onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressSkipping})
				continue
			}
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressBackingUp})
			if err := BackupFile(fs, targetPath, backupDir); err != nil {
				logger.Error().Err(err).Str("file", entry.File).Msg("Backup failed")
				return err
			}
		case types.OperationAdd:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressSkipping})
		}
	}

	logger.Debug().
		Str("backupDir", backupDir).
		Int("entries", total).
		Msg("Backup phase completed")
	return nil
}
