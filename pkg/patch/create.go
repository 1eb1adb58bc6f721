package patch

import (
	"path/filepath"

	"github.com/arthur-debert/seam/pkg/bindiff"
	"github.com/arthur-debert/seam/pkg/checksum"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/manifest"
	"github.com/arthur-debert/seam/pkg/scan"
	"github.com/arthur-debert/seam/pkg/types"
)

// CreateOptions configures patch creation.
type CreateOptions struct {
	// Version is the manifest version tag; zero means the current
	// format version
	Version int

	// Title is an optional human-readable patch name
	Title string

	// AllowRestricted marks the manifest as exempt from the path
	// restriction policy. Only set it for patches you would trust
	// with the files the policy protects.
	AllowRestricted bool

	// OnProgress receives per-entry notifications
	OnProgress types.ProgressFunc
}

// CreateResult reports what a create run produced.
type CreateResult struct {
	Manifest  *types.Manifest
	OutputDir string
}

// Create builds a patch asset in outDir from the difference between
// origDir and newDir: a delta artifact per modified file, a full copy
// per added file, a manifest recording every operation with its
// digests. Entry order is lexicographic by filename, which is also
// the order a later apply will execute.
func (e *Engine) Create(origDir, newDir, outDir string, opts CreateOptions) (*CreateResult, error) {
	logger := logging.GetLogger("patch.create").With().
		Str("origDir", origDir).
		Str("newDir", newDir).
		Str("outDir", outDir).
		Logger()
	done := logging.LogOperationStart(logger, "create")
	defer done()

	changes, err := scan.CategorizeFiles(e.fs, origDir, newDir)
	if err != nil {
		return nil, err
	}

	if err := e.fs.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatchCreate, "cannot create output directory %s", outDir)
	}

	diffsDir := filepath.Join(outDir, e.layout.DiffsDir)
	filesDir := filepath.Join(outDir, e.layout.FilesDir)
	for _, c := range changes {
		if c.Kind == types.ChangeModified {
			if err := e.fs.MkdirAll(diffsDir, 0755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrPatchCreate, "cannot create %s", diffsDir)
			}
		}
		if c.Kind == types.ChangeAdded {
			if err := e.fs.MkdirAll(filesDir, 0755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrPatchCreate, "cannot create %s", filesDir)
			}
		}
	}

	version := opts.Version
	if version == 0 {
		version = types.ManifestVersion
	}
	m := types.NewManifest(opts.Title)
	m.Version = version
	m.AllowRestricted = opts.AllowRestricted

	total := len(changes)
	for i, change := range changes {
		switch change.Kind {
		case types.ChangeModified:
			opts.OnProgress.Notify(types.Progress{File: change.File, Index: i, Total: total, Action: types.ProgressPatching})
			entry, err := e.createDiffEntry(change, origDir, newDir, diffsDir)
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, entry)

		case types.ChangeAdded:
			opts.OnProgress.Notify(types.Progress{File: change.File, Index: i, Total: total, Action: types.ProgressAdding})
			data, err := e.fs.ReadFile(filepath.Join(newDir, change.File))
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrPatchCreate, "cannot read %s", change.File).WithFile(change.File)
			}
			if err := e.fs.WriteFile(filepath.Join(filesDir, change.File), data, 0644); err != nil {
				return nil, errors.Wrapf(err, errors.ErrPatchCreate, "cannot write payload for %s", change.File).WithFile(change.File)
			}
			m.Entries = append(m.Entries, types.ManifestEntry{
				File:      change.File,
				Op:        types.OperationAdd,
				FinalHash: change.FinalHash,
			})

		case types.ChangeRemoved:
			opts.OnProgress.Notify(types.Progress{File: change.File, Index: i, Total: total, Action: types.ProgressDeleting})
			// Nothing to write; the manifest records the deletion
			m.Entries = append(m.Entries, types.ManifestEntry{
				File:         change.File,
				Op:           types.OperationDelete,
				OriginalHash: change.OriginalHash,
			})
		}
	}

	if err := manifest.Save(e.fs, m, e.manifestPath(outDir)); err != nil {
		return nil, err
	}

	summary := m.Summary()
	logger.Info().
		Int("patches", summary.Patches).
		Int("additions", summary.Additions).
		Int("deletions", summary.Deletions).
		Msg("Patch created")
	return &CreateResult{Manifest: m, OutputDir: outDir}, nil
}

func (e *Engine) createDiffEntry(change types.FileChange, origDir, newDir, diffsDir string) (types.ManifestEntry, error) {
	origData, err := e.fs.ReadFile(filepath.Join(origDir, change.File))
	if err != nil {
		return types.ManifestEntry{}, errors.Wrapf(err, errors.ErrPatchCreate, "cannot read %s", change.File).WithFile(change.File)
	}
	newData, err := e.fs.ReadFile(filepath.Join(newDir, change.File))
	if err != nil {
		return types.ManifestEntry{}, errors.Wrapf(err, errors.ErrPatchCreate, "cannot read %s", change.File).WithFile(change.File)
	}

	delta, err := bindiff.Create(origData, newData)
	if err != nil {
		return types.ManifestEntry{}, errors.Wrapf(err, errors.ErrPatchCreate, "cannot create diff for %s", change.File).WithFile(change.File)
	}

	diffPath := filepath.Join(diffsDir, change.File+e.layout.DiffExtension)
	if err := e.fs.WriteFile(diffPath, delta, 0644); err != nil {
		return types.ManifestEntry{}, errors.Wrapf(err, errors.ErrPatchCreate, "cannot write diff for %s", change.File).WithFile(change.File)
	}

	return types.ManifestEntry{
		File:         change.File,
		Op:           types.OperationPatch,
		OriginalHash: change.OriginalHash,
		DiffHash:     checksum.FromBytes(delta),
		FinalHash:    change.FinalHash,
	}, nil
}
