package patch

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/seam/pkg/bindiff"
	"github.com/arthur-debert/seam/pkg/config"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/types"
)

// ApplyEntry executes one manifest entry against the target
// directory.
//
// Precondition failures (a patch target or artifact that should have
// been caught by the validation phase) report ErrValidation; genuine
// runtime failures in the operation itself (delta application, I/O)
// report ErrApply. Both are fatal, but they are diagnostically
// distinct: the former means the target changed under us or the
// validation phase was skipped, the latter means permissions, disk
// space or a corrupt delta.
func ApplyEntry(fs types.FS, layout config.Layout, entry types.ManifestEntry, targetDir, patchDir string) error {
	switch entry.Op {
	case types.OperationPatch:
		return applyPatchEntry(fs, layout, entry, targetDir, patchDir)
	case types.OperationAdd:
		return applyAddEntry(fs, layout, entry, targetDir, patchDir)
	case types.OperationDelete:
		return applyDeleteEntry(fs, entry, targetDir)
	default:
		return errors.Newf(errors.ErrInternal, "unknown operation %q", entry.Op).WithFile(entry.File)
	}
}

func applyPatchEntry(fs types.FS, layout config.Layout, entry types.ManifestEntry, targetDir, patchDir string) error {
	targetPath := filepath.Join(targetDir, entry.File)
	diffPath := filepath.Join(patchDir, layout.DiffsDir, entry.File+layout.DiffExtension)

	info, err := fs.Stat(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrValidation, "target file not found").WithFile(entry.File)
		}
		return errors.Wrap(err, errors.ErrValidation, "cannot stat target file").WithFile(entry.File)
	}
	if _, err := fs.Stat(diffPath); err != nil {
		return errors.Newf(errors.ErrValidation, "diff artifact not found in patch").WithFile(entry.File)
	}

	original, err := fs.ReadFile(targetPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrApply, "failed to read target file").WithFile(entry.File)
	}
	delta, err := fs.ReadFile(diffPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrApply, "failed to read diff artifact").WithFile(entry.File)
	}

	patched, err := bindiff.Apply(original, delta)
	if err != nil {
		return errors.Wrap(err, errors.ErrApply, "failed to apply diff").WithFile(entry.File)
	}

	if err := fs.WriteFile(targetPath, patched, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, errors.ErrApply, "failed to write patched file").WithFile(entry.File)
	}
	return nil
}

func applyAddEntry(fs types.FS, layout config.Layout, entry types.ManifestEntry, targetDir, patchDir string) error {
	sourcePath := filepath.Join(patchDir, layout.FilesDir, entry.File)
	targetPath := filepath.Join(targetDir, entry.File)

	info, err := fs.Stat(sourcePath)
	if err != nil {
		return errors.Newf(errors.ErrValidation, "source file not found in patch").WithFile(entry.File)
	}
	if _, err := fs.Stat(targetPath); err == nil {
		return errors.Newf(errors.ErrValidation, "file already exists in target").WithFile(entry.File)
	}

	data, err := fs.ReadFile(sourcePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrApply, "failed to read source file").WithFile(entry.File)
	}
	if err := fs.WriteFile(targetPath, data, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, errors.ErrApply, "failed to copy new file").WithFile(entry.File)
	}
	return nil
}

func applyDeleteEntry(fs types.FS, entry types.ManifestEntry, targetDir string) error {
	targetPath := filepath.Join(targetDir, entry.File)

	// Already deleted is not an error: re-running a partially applied
	// patch must be able to pass over deletes it already performed.
	if _, err := fs.Stat(targetPath); os.IsNotExist(err) {
		return nil
	}
	if err := fs.Remove(targetPath); err != nil {
		return errors.Wrap(err, errors.ErrApply, "failed to delete file").WithFile(entry.File)
	}
	return nil
}
