package types

import (
	"github.com/opencontainers/go-digest"
)

// ChangeKind classifies a difference detected between two directories.
type ChangeKind string

const (
	// ChangeModified means the file exists in both directories with
	// different content
	ChangeModified ChangeKind = "modified"

	// ChangeAdded means the file only exists in the new directory
	ChangeAdded ChangeKind = "added"

	// ChangeRemoved means the file only exists in the original directory
	ChangeRemoved ChangeKind = "removed"
)

// FileChange is one detected difference between two directory
// snapshots. It is an intermediate result of categorization: a
// modified file has no DiffHash yet because the delta has not been
// produced at this point.
type FileChange struct {
	File         string
	Kind         ChangeKind
	OriginalHash digest.Digest
	FinalHash    digest.Digest
}
