package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/seam/pkg/checksum"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/filesystem"
	"github.com/arthur-debert/seam/pkg/testutil"
	"github.com/arthur-debert/seam/pkg/types"
)

func TestListFiles(t *testing.T) {
	dir := testutil.TempDir(t, "scan")
	testutil.CreateFile(t, dir, "b.bin", "b")
	testutil.CreateFile(t, dir, "a.bin", "a")
	testutil.CreateDir(t, dir, "subdir")

	files, err := ListFiles(filesystem.NewOS(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bin", "b.bin"}, files)
}

func TestListFilesIgnoresSymlinks(t *testing.T) {
	dir := testutil.TempDir(t, "scan")
	target := testutil.CreateFile(t, dir, "real.bin", "data")
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.bin")))

	files, err := ListFiles(filesystem.NewOS(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"real.bin"}, files)
}

func TestListFilesMissingDir(t *testing.T) {
	dir := testutil.TempDir(t, "scan")

	_, err := ListFiles(filesystem.NewOS(), filepath.Join(dir, "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestListFilesNotADirectory(t *testing.T) {
	dir := testutil.TempDir(t, "scan")
	path := testutil.CreateFile(t, dir, "file.bin", "data")

	_, err := ListFiles(filesystem.NewOS(), path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCategorizeFiles(t *testing.T) {
	fs := filesystem.NewOS()
	orig := testutil.TempDir(t, "orig")
	updated := testutil.TempDir(t, "new")

	testutil.CreateFile(t, orig, "a.bin", "old content")
	testutil.CreateFile(t, updated, "a.bin", "new content")

	testutil.CreateFile(t, orig, "b.bin", "doomed")

	testutil.CreateFile(t, updated, "c.bin", "fresh")

	testutil.CreateFile(t, orig, "same.bin", "unchanged")
	testutil.CreateFile(t, updated, "same.bin", "unchanged")

	changes, err := CategorizeFiles(fs, orig, updated)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	assert.Equal(t, "a.bin", changes[0].File)
	assert.Equal(t, types.ChangeModified, changes[0].Kind)
	assert.Equal(t, checksum.FromBytes([]byte("old content")), changes[0].OriginalHash)
	assert.Equal(t, checksum.FromBytes([]byte("new content")), changes[0].FinalHash)

	assert.Equal(t, "b.bin", changes[1].File)
	assert.Equal(t, types.ChangeRemoved, changes[1].Kind)
	assert.Equal(t, checksum.FromBytes([]byte("doomed")), changes[1].OriginalHash)
	assert.Empty(t, changes[1].FinalHash)

	assert.Equal(t, "c.bin", changes[2].File)
	assert.Equal(t, types.ChangeAdded, changes[2].Kind)
	assert.Empty(t, changes[2].OriginalHash)
	assert.Equal(t, checksum.FromBytes([]byte("fresh")), changes[2].FinalHash)
}

func TestCategorizeFilesIdenticalDirs(t *testing.T) {
	fs := filesystem.NewOS()
	orig := testutil.TempDir(t, "orig")
	updated := testutil.TempDir(t, "new")

	testutil.CreateFile(t, orig, "a.bin", "same")
	testutil.CreateFile(t, updated, "a.bin", "same")

	changes, err := CategorizeFiles(fs, orig, updated)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestCategorizeFilesDeterministicOrder(t *testing.T) {
	fs := filesystem.NewOS()
	orig := testutil.TempDir(t, "orig")
	updated := testutil.TempDir(t, "new")

	// Created out of order; the result must still be sorted
	testutil.CreateFile(t, updated, "z.bin", "z")
	testutil.CreateFile(t, orig, "m.bin", "m")
	testutil.CreateFile(t, updated, "a.bin", "a")

	changes, err := CategorizeFiles(fs, orig, updated)
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, "a.bin", changes[0].File)
	assert.Equal(t, "m.bin", changes[1].File)
	assert.Equal(t, "z.bin", changes[2].File)
}
