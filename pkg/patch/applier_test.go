package patch

import (
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/seam/pkg/bindiff"
	"github.com/arthur-debert/seam/pkg/checksum"
	"github.com/arthur-debert/seam/pkg/config"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/filesystem"
	"github.com/arthur-debert/seam/pkg/testutil"
	"github.com/arthur-debert/seam/pkg/types"
)

func testLayout() config.Layout {
	return config.Default().Layout
}

// writePatchArtifact creates the delta artifact for file inside
// patchDir and returns a valid patch entry for it.
func writePatchArtifact(t *testing.T, patchDir, file, oldContent, newContent string) types.ManifestEntry {
	t.Helper()
	layout := testLayout()

	delta, err := bindiff.Create([]byte(oldContent), []byte(newContent))
	require.NoError(t, err)
	testutil.CreateFile(t, filepath.Join(patchDir, layout.DiffsDir), file+layout.DiffExtension, string(delta))

	return types.ManifestEntry{
		File:         file,
		Op:           types.OperationPatch,
		OriginalHash: checksum.FromBytes([]byte(oldContent)),
		DiffHash:     checksum.FromBytes(delta),
		FinalHash:    checksum.FromBytes([]byte(newContent)),
	}
}

func TestApplyEntryPatch(t *testing.T) {
	fs := filesystem.NewOS()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")
	testutil.CreateFile(t, targetDir, "a.bin", contentOrigA)
	entry := writePatchArtifact(t, patchDir, "a.bin", contentOrigA, contentNewA)

	require.NoError(t, ApplyEntry(fs, testLayout(), entry, targetDir, patchDir))
	assert.Equal(t, contentNewA, testutil.ReadFile(t, filepath.Join(targetDir, "a.bin")))
}

func TestApplyEntryPatchMissingTarget(t *testing.T) {
	fs := filesystem.NewOS()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")
	entry := writePatchArtifact(t, patchDir, "a.bin", contentOrigA, contentNewA)

	err := ApplyEntry(fs, testLayout(), entry, targetDir, patchDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
}

func TestApplyEntryPatchMissingDiff(t *testing.T) {
	fs := filesystem.NewOS()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")
	testutil.CreateFile(t, targetDir, "a.bin", contentOrigA)

	entry := types.ManifestEntry{
		File: "a.bin", Op: types.OperationPatch,
		OriginalHash: digest.FromString("1"),
		DiffHash:     digest.FromString("2"),
		FinalHash:    digest.FromString("3"),
	}

	err := ApplyEntry(fs, testLayout(), entry, targetDir, patchDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
}

func TestApplyEntryPatchCorruptDelta(t *testing.T) {
	fs := filesystem.NewOS()
	layout := testLayout()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")
	testutil.CreateFile(t, targetDir, "a.bin", contentOrigA)
	testutil.CreateFile(t, filepath.Join(patchDir, layout.DiffsDir), "a.bin"+layout.DiffExtension, "garbage")

	entry := types.ManifestEntry{
		File: "a.bin", Op: types.OperationPatch,
		OriginalHash: checksum.FromBytes([]byte(contentOrigA)),
		DiffHash:     digest.FromString("2"),
		FinalHash:    digest.FromString("3"),
	}

	err := ApplyEntry(fs, layout, entry, targetDir, patchDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrApply))
	// A failed delta application must not clobber the target
	assert.Equal(t, contentOrigA, testutil.ReadFile(t, filepath.Join(targetDir, "a.bin")))
}

func TestApplyEntryAdd(t *testing.T) {
	fs := filesystem.NewOS()
	layout := testLayout()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")
	testutil.CreateFile(t, filepath.Join(patchDir, layout.FilesDir), "c.bin", contentNewC)

	entry := types.ManifestEntry{
		File: "c.bin", Op: types.OperationAdd,
		FinalHash: checksum.FromBytes([]byte(contentNewC)),
	}

	require.NoError(t, ApplyEntry(fs, layout, entry, targetDir, patchDir))
	assert.Equal(t, contentNewC, testutil.ReadFile(t, filepath.Join(targetDir, "c.bin")))
}

func TestApplyEntryAddExistingTarget(t *testing.T) {
	fs := filesystem.NewOS()
	layout := testLayout()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")
	testutil.CreateFile(t, filepath.Join(patchDir, layout.FilesDir), "c.bin", contentNewC)
	testutil.CreateFile(t, targetDir, "c.bin", "already here")

	entry := types.ManifestEntry{
		File: "c.bin", Op: types.OperationAdd,
		FinalHash: checksum.FromBytes([]byte(contentNewC)),
	}

	err := ApplyEntry(fs, layout, entry, targetDir, patchDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
	// The existing file is never overwritten
	assert.Equal(t, "already here", testutil.ReadFile(t, filepath.Join(targetDir, "c.bin")))
}

func TestApplyEntryAddMissingSource(t *testing.T) {
	fs := filesystem.NewOS()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")

	entry := types.ManifestEntry{
		File: "c.bin", Op: types.OperationAdd, FinalHash: digest.FromString("1"),
	}

	err := ApplyEntry(fs, testLayout(), entry, targetDir, patchDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrValidation))
}

func TestApplyEntryDelete(t *testing.T) {
	fs := filesystem.NewOS()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")
	testutil.CreateFile(t, targetDir, "b.bin", contentOrigB)

	entry := types.ManifestEntry{
		File: "b.bin", Op: types.OperationDelete,
		OriginalHash: checksum.FromBytes([]byte(contentOrigB)),
	}

	require.NoError(t, ApplyEntry(fs, testLayout(), entry, targetDir, patchDir))
	assert.False(t, testutil.FileExists(t, filepath.Join(targetDir, "b.bin")))
}

func TestApplyEntryDeleteAbsentTarget(t *testing.T) {
	fs := filesystem.NewOS()
	targetDir := testutil.TempDir(t, "target")
	patchDir := testutil.TempDir(t, "patch")

	entry := types.ManifestEntry{
		File: "b.bin", Op: types.OperationDelete,
		OriginalHash: digest.FromString("1"),
	}

	// Deleting a file that is already gone is a no-op, not a failure
	require.NoError(t, ApplyEntry(fs, testLayout(), entry, targetDir, patchDir))
}

func TestApplyEntryUnknownOperation(t *testing.T) {
	fs := filesystem.NewOS()
	targetDir := testutil.TempDir(t, "target")

	entry := types.ManifestEntry{File: "a.bin", Op: "rename"}

	err := ApplyEntry(fs, testLayout(), entry, targetDir, targetDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}
