package patch

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/seam/pkg/checksum"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/manifest"
	"github.com/arthur-debert/seam/pkg/types"
)

// ValidatePatchDir loads the manifest from patchDir and checks that
// every artifact it references exists: a delta per patch entry, a
// payload file per add entry. Delete entries reference nothing inside
// the patch. Returns the loaded manifest on success.
func (e *Engine) ValidatePatchDir(patchDir string) (*types.Manifest, error) {
	m, err := manifest.Load(e.fs, e.manifestPath(patchDir))
	if err != nil {
		return nil, err
	}

	for _, entry := range m.Entries {
		switch entry.Op {
		case types.OperationPatch:
			if _, err := e.fs.Stat(e.diffPath(patchDir, entry.File)); err != nil {
				return nil, errors.Newf(errors.ErrDiffNotFound, "diff artifact not found for %q", entry.File).WithFile(entry.File)
			}
		case types.OperationAdd:
			if _, err := e.fs.Stat(e.addPath(patchDir, entry.File)); err != nil {
				return nil, errors.Newf(errors.ErrFileNotFound, "payload file not found for %q", entry.File).WithFile(entry.File)
			}
		}
	}

	return m, nil
}

// validateEntries rechecks every entry's precondition against the
// current target state before anything is mutated:
//
//   - patch: target exists and its digest equals original_hash
//   - delete: same, except an absent target passes as already applied
//   - add: target must not exist (it would be overwritten)
//
// Any failure aborts the whole apply with no side effects.
func validateEntries(fs types.FS, entries []types.ManifestEntry, targetDir string, onProgress types.ProgressFunc) error {
	total := len(entries)
	for i, entry := range entries {
		targetPath := filepath.Join(targetDir, entry.File)

		switch entry.Op {
		case types.OperationPatch:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressValidating})
			if _, err := fs.Stat(targetPath); err != nil {
				return errors.Newf(errors.ErrValidation, "file not found in target").WithFile(entry.File)
			}
			if err := compareDigest(fs, entry, targetPath); err != nil {
				return err
			}

		case types.OperationDelete:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressValidating})
			if _, err := fs.Stat(targetPath); os.IsNotExist(err) {
				// Already gone: the entry is satisfied as-is
				continue
			}
			if err := compareDigest(fs, entry, targetPath); err != nil {
				return err
			}

		case types.OperationAdd:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressChecking})
			if _, err := fs.Stat(targetPath); err == nil {
				return errors.Newf(errors.ErrValidation, "file already exists in target").WithFile(entry.File)
			}
		}
	}
	return nil
}

func compareDigest(fs types.FS, entry types.ManifestEntry, targetPath string) error {
	actual, err := checksum.File(fs, targetPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrValidation, "failed to read file").WithFile(entry.File)
	}
	if actual != entry.OriginalHash {
		return errors.Newf(errors.ErrValidation, "hash mismatch: expected %s, got %s", entry.OriginalHash, actual).
			WithFile(entry.File).
			WithDetail("expected", entry.OriginalHash.String()).
			WithDetail("actual", actual.String())
	}
	return nil
}

// validateBackup checks that the backup area contains what the
// manifest says it should before a rollback trusts it: every patch
// entry must have a copy matching original_hash; delete entries'
// copies are checked when present (a delete target that was already
// absent at apply time has none); add entries have no backup.
func validateBackup(fs types.FS, entries []types.ManifestEntry, backupDir string, onProgress types.ProgressFunc) error {
	total := len(entries)
	for i, entry := range entries {
		backupPath := filepath.Join(backupDir, entry.File)

		switch entry.Op {
		case types.OperationPatch:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressValidating})
			if _, err := fs.Stat(backupPath); err != nil {
				return errors.Newf(errors.ErrRollback, "backup copy not found for %q", entry.File).WithFile(entry.File)
			}
			if err := compareBackupDigest(fs, entry, backupPath); err != nil {
				return err
			}

		case types.OperationDelete:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressValidating})
			if _, err := fs.Stat(backupPath); os.IsNotExist(err) {
				continue
			}
			if err := compareBackupDigest(fs, entry, backupPath); err != nil {
				return err
			}

		case types.OperationAdd:
			onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressSkipping})
		}
	}
	return nil
}

func compareBackupDigest(fs types.FS, entry types.ManifestEntry, backupPath string) error {
	actual, err := checksum.File(fs, backupPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRollback, "cannot read backup copy for %q", entry.File).WithFile(entry.File)
	}
	if actual != entry.OriginalHash {
		return errors.Newf(errors.ErrRollback, "backup hash mismatch for %q: expected %s, got %s",
			entry.File, entry.OriginalHash, actual).
			WithFile(entry.File).
			WithDetail("expected", entry.OriginalHash.String()).
			WithDetail("actual", actual.String())
	}
	return nil
}

// validatePatchedEntries confirms the target is in the fully patched
// state: patch and add targets match final_hash, delete targets are
// absent. Rollback runs this before touching anything so it does not
// tear up a directory that was modified by other means; --force
// skips exactly this check.
func validatePatchedEntries(fs types.FS, entries []types.ManifestEntry, targetDir string, onProgress types.ProgressFunc) error {
	total := len(entries)
	for i, entry := range entries {
		onProgress.Notify(types.Progress{File: entry.File, Index: i, Total: total, Action: types.ProgressValidating})
		if err := VerifyEntry(fs, entry, targetDir); err != nil {
			return err
		}
	}
	return nil
}
