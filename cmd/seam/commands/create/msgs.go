package create

// Message constants
const (
	MsgShort = "Create a patch from two directory snapshots"
	MsgLong  = `Compare an original and a new directory and build a patch asset:

  manifest.json   ordered list of per-file operations with content hashes
  diffs/          one binary delta per modified file
  files/          full content of each added file

Files present in both snapshots with identical content produce no
entry. Comparison is flat: subdirectories are not descended into.`

	MsgExample = `  # Build a patch shipping v1 -> v2
  seam create ./game-v1 ./game-v2 ./patch-v2

  # Name the patch and tag a manifest version
  seam create --title "Localization pack" --patch-version 3 ./orig ./new ./out`
)
