package apply

// Message constants
const (
	MsgShort = "Apply a patch to a target directory"
	MsgLong  = `Apply a patch (created with 'seam create') to a target directory, in
place.

Before anything is mutated, every entry is validated against the
current state of the target: files to be patched or deleted must match
the hashes recorded at creation time, files to be added must not exist
yet. Every file about to change is then copied into a backup directory
at the target root. Entries are applied strictly in manifest order and
each one is verified against its expected content hash before the next
begins; the first failure rolls the target back to exactly its
original state.

The backup directory is kept after success so the patch can be undone
later with 'seam rollback'. A target that already carries a backup
directory is refused.`

	MsgExample = `  # Apply a patch
  seam apply ./game ./patch-v2

  # Apply with per-file progress detail in the log
  seam -v apply ./game ./patch-v2`
)
