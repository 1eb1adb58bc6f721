package rollback

// Message constants
const (
	MsgShort = "Undo an applied patch from its backup"
	MsgLong  = `Restore a target directory from the backup left behind by 'seam apply':
every backed-up file is copied back and every file the patch added is
removed. The manifest defaults to the snapshot recorded inside the
backup directory; pass a path to use another copy.

By default the target must still be in the patched state (so a
directory modified by other means is not torn up by accident);
--force skips that check. Backup integrity is always verified before
anything is restored. The backup directory is removed after a fully
successful rollback unless --keep-backup is given.`

	MsgExample = `  # Undo the last applied patch
  seam rollback ./game

  # Roll back even though files were modified since the apply
  seam rollback --force ./game

  # Use a manifest kept elsewhere
  seam rollback ./game ./patch-v2/manifest.json`
)
