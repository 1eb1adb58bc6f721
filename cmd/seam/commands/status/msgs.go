package status

// Message constants
const (
	MsgShort = "Report a target's patch state and a patch's contents"
	MsgLong  = `Report whether a target directory currently carries an applied patch
(detected by the presence of its backup directory) and, given a patch
directory, summarize the manifest found there. Never modifies
anything.`

	MsgExample = `  # Is this directory patched?
  seam status ./game

  # Also summarize a patch asset
  seam status ./game ./patch-v2`
)
