package patch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/testutil"
)

// appliedScenario applies the scenario patch so rollback has
// something to undo.
func appliedScenario(t *testing.T) *scenario {
	t.Helper()
	s := buildScenario(t)
	_, err := s.engine.Apply(s.targetDir, s.patchDir, ApplyOptions{})
	require.NoError(t, err)
	return s
}

func TestRollbackRestoresOriginalState(t *testing.T) {
	s := appliedScenario(t)

	result, err := s.engine.Rollback(s.targetDir, "", RollbackOptions{})
	require.NoError(t, err)

	assertOriginalState(t, s.targetDir)
	assert.Equal(t, 2, result.Restored) // a.bin and b.bin
	assert.Equal(t, 1, result.Removed)  // c.bin
	assert.True(t, result.BackupRemoved)
	assert.False(t, testutil.DirExists(t, s.engine.BackupPath(s.targetDir)))
}

func TestRollbackKeepBackup(t *testing.T) {
	s := appliedScenario(t)

	result, err := s.engine.Rollback(s.targetDir, "", RollbackOptions{KeepBackup: true})
	require.NoError(t, err)

	assertOriginalState(t, s.targetDir)
	assert.False(t, result.BackupRemoved)
	assert.True(t, testutil.DirExists(t, s.engine.BackupPath(s.targetDir)))
}

func TestRollbackWithExplicitManifest(t *testing.T) {
	s := appliedScenario(t)

	// Remove the snapshot so only the patch directory's manifest is
	// available
	backupDir := s.engine.BackupPath(s.targetDir)
	require.NoError(t, s.fs.Remove(filepath.Join(backupDir, s.engine.Layout().ManifestFilename)))

	manifestPath := filepath.Join(s.patchDir, s.engine.Layout().ManifestFilename)
	_, err := s.engine.Rollback(s.targetDir, manifestPath, RollbackOptions{})
	require.NoError(t, err)
	assertOriginalState(t, s.targetDir)
}

func TestRollbackWithoutBackupDir(t *testing.T) {
	s := buildScenario(t)

	_, err := s.engine.Rollback(s.targetDir, "", RollbackOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRollback))
	assert.Contains(t, err.Error(), "backup directory not found")
}

func TestRollbackRefusesModifiedTarget(t *testing.T) {
	s := appliedScenario(t)
	testutil.CreateFile(t, s.targetDir, "a.bin", "modified after apply")

	_, err := s.engine.Rollback(s.targetDir, "", RollbackOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRollback))
	assert.Contains(t, err.Error(), "--force")

	// Nothing was touched
	assert.Equal(t, "modified after apply", testutil.ReadFile(t, filepath.Join(s.targetDir, "a.bin")))
	assert.True(t, testutil.FileExists(t, filepath.Join(s.targetDir, "c.bin")))
}

func TestRollbackForce(t *testing.T) {
	s := appliedScenario(t)
	testutil.CreateFile(t, s.targetDir, "a.bin", "modified after apply")

	result, err := s.engine.Rollback(s.targetDir, "", RollbackOptions{Force: true})
	require.NoError(t, err)

	assertOriginalState(t, s.targetDir)
	assert.Equal(t, 2, result.Restored)
}

func TestRollbackCorruptBackupRefused(t *testing.T) {
	s := appliedScenario(t)
	backupDir := s.engine.BackupPath(s.targetDir)
	testutil.CreateFile(t, backupDir, "a.bin", "bit rot")

	_, err := s.engine.Rollback(s.targetDir, "", RollbackOptions{Force: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRollback))

	// A rollback that cannot trust its backup must not touch the target
	assertPatchedState(t, s.targetDir)
	assert.True(t, testutil.DirExists(t, backupDir))
}

func TestRollbackAfterAbortedApplyViaForce(t *testing.T) {
	s := buildScenario(t)

	// Simulate an aborted apply: backup completed, only a.bin mutated
	_, err := s.engine.Apply(s.targetDir, s.patchDir, ApplyOptions{})
	require.NoError(t, err)
	testutil.CreateFile(t, s.targetDir, "a.bin", "half-written")

	_, err = s.engine.Rollback(s.targetDir, "", RollbackOptions{Force: true})
	require.NoError(t, err)
	assertOriginalState(t, s.targetDir)
}

func TestRollbackDeleteEntryWithoutBackupCopyIsSkipped(t *testing.T) {
	s := buildScenario(t)

	// The delete target was already absent before the apply, so no
	// backup copy exists and the rollback leaves it absent
	require.NoError(t, s.fs.Remove(filepath.Join(s.targetDir, "b.bin")))
	_, err := s.engine.Apply(s.targetDir, s.patchDir, ApplyOptions{})
	require.NoError(t, err)

	result, err := s.engine.Rollback(s.targetDir, "", RollbackOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Restored) // only a.bin
	assert.False(t, testutil.FileExists(t, filepath.Join(s.targetDir, "b.bin")))
	assert.Equal(t, contentOrigA, testutil.ReadFile(t, filepath.Join(s.targetDir, "a.bin")))
	assert.False(t, testutil.FileExists(t, filepath.Join(s.targetDir, "c.bin")))
}

func TestRollbackEntriesContinuesPastFailures(t *testing.T) {
	s := appliedScenario(t)
	backupDir := s.engine.BackupPath(s.targetDir)

	// Remove one backup copy; the other entries must still be undone
	require.NoError(t, s.fs.Remove(filepath.Join(backupDir, "a.bin")))

	restored, removed, err := rollbackEntries(s.fs, s.manifest.Entries, s.targetDir, backupDir, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRollback))
	assert.Contains(t, err.Error(), "1 of 3 entries failed")

	assert.Equal(t, 1, restored) // b.bin
	assert.Equal(t, 1, removed)  // c.bin
	assert.Equal(t, contentOrigB, testutil.ReadFile(t, filepath.Join(s.targetDir, "b.bin")))
	assert.False(t, testutil.FileExists(t, filepath.Join(s.targetDir, "c.bin")))
}
