// Package scan diffs two directory snapshots by content hash and
// categorizes every file into modified, added or removed. The result
// order is lexicographic by filename, which makes categorization
// reproducible; entry order later becomes apply order.
package scan

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/seam/pkg/checksum"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/types"
)

// ListFiles returns the names of the regular files directly inside
// dir, sorted lexicographically. Subdirectories and symlinks are not
// classified as files; there is no recursion.
func ListFiles(fs types.FS, dir string) ([]string, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot read directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", dir)
	}

	dirEntries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot read directory %s", dir)
	}

	var files []string
	for _, de := range dirEntries {
		if de.Type().IsRegular() {
			files = append(files, de.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// CategorizeFiles compares origDir and newDir and returns one
// FileChange per differing file:
//
//   - present in both with differing hash: modified
//   - present only in newDir: added
//   - present only in origDir: removed
//   - present in both with identical hash: no change recorded
func CategorizeFiles(fs types.FS, origDir, newDir string) ([]types.FileChange, error) {
	logger := logging.GetLogger("scan")

	origFiles, err := ListFiles(fs, origDir)
	if err != nil {
		return nil, err
	}
	newFiles, err := ListFiles(fs, newDir)
	if err != nil {
		return nil, err
	}

	inOrig := make(map[string]bool, len(origFiles))
	for _, f := range origFiles {
		inOrig[f] = true
	}
	inNew := make(map[string]bool, len(newFiles))
	for _, f := range newFiles {
		inNew[f] = true
	}

	// Sorted union so the change order is fixed for a given pair of
	// snapshots.
	union := append([]string{}, origFiles...)
	for _, f := range newFiles {
		if !inOrig[f] {
			union = append(union, f)
		}
	}
	sort.Strings(union)

	var changes []types.FileChange
	for _, name := range union {
		switch {
		case inOrig[name] && inNew[name]:
			origHash, err := checksum.File(fs, filepath.Join(origDir, name))
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot hash %s", name)
			}
			newHash, err := checksum.File(fs, filepath.Join(newDir, name))
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot hash %s", name)
			}
			if origHash != newHash {
				changes = append(changes, types.FileChange{
					File:         name,
					Kind:         types.ChangeModified,
					OriginalHash: origHash,
					FinalHash:    newHash,
				})
			}
		case inNew[name]:
			newHash, err := checksum.File(fs, filepath.Join(newDir, name))
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot hash %s", name)
			}
			changes = append(changes, types.FileChange{
				File:      name,
				Kind:      types.ChangeAdded,
				FinalHash: newHash,
			})
		default:
			origHash, err := checksum.File(fs, filepath.Join(origDir, name))
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot hash %s", name)
			}
			changes = append(changes, types.FileChange{
				File:         name,
				Kind:         types.ChangeRemoved,
				OriginalHash: origHash,
			})
		}
	}

	logger.Debug().
		Str("origDir", origDir).
		Str("newDir", newDir).
		Int("changes", len(changes)).
		Msg("Directories categorized")
	return changes, nil
}
