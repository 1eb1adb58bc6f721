package types

import (
	"fmt"

	"github.com/opencontainers/go-digest"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// Operation defines what a manifest entry does to its target file.
type Operation string

const (
	// OperationPatch modifies an existing file by applying a binary delta
	OperationPatch Operation = "patch"

	// OperationAdd introduces a new file from the patch payload
	OperationAdd Operation = "add"

	// OperationDelete removes an existing file
	OperationDelete Operation = "delete"
)

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	switch op {
	case OperationPatch, OperationAdd, OperationDelete:
		return true
	}
	return false
}

// ManifestEntry is one file-level operation in a patch.
//
// The operation determines which digests must be present:
//
//	patch:  original_hash, diff_hash and final_hash
//	add:    final_hash only
//	delete: original_hash only
//
// Go has no tagged unions, so the coupling is enforced by Validate,
// which every manifest load and save runs against each entry.
type ManifestEntry struct {
	// File is the relative filename inside the target directory.
	// The namespace is flat: entries never name subdirectories.
	File string `json:"file"`

	// Op is the operation performed on File
	Op Operation `json:"operation"`

	// OriginalHash is the content digest of the file before the
	// operation (patch and delete entries)
	OriginalHash digest.Digest `json:"original_hash,omitempty"`

	// DiffHash is the content digest of the delta artifact (patch
	// entries)
	DiffHash digest.Digest `json:"diff_hash,omitempty"`

	// FinalHash is the content digest of the file after the operation
	// (patch and add entries)
	FinalHash digest.Digest `json:"final_hash,omitempty"`
}

// Validate checks the operation/digest coupling. A digest that is
// present when it must be absent is as much of an error as a missing
// one: it means the document was not produced by a correct writer.
func (e ManifestEntry) Validate() error {
	if e.File == "" {
		return fmt.Errorf("entry has no file name")
	}
	if !e.Op.Valid() {
		return fmt.Errorf("entry %q has unknown operation %q", e.File, e.Op)
	}

	requireSet := func(name string, d digest.Digest) error {
		if d == "" {
			return fmt.Errorf("%s entry %q is missing %s", e.Op, e.File, name)
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%s entry %q has invalid %s: %w", e.Op, e.File, name, err)
		}
		return nil
	}
	requireUnset := func(name string, d digest.Digest) error {
		if d != "" {
			return fmt.Errorf("%s entry %q must not carry %s", e.Op, e.File, name)
		}
		return nil
	}

	checks := []error{}
	switch e.Op {
	case OperationPatch:
		checks = append(checks,
			requireSet("original_hash", e.OriginalHash),
			requireSet("diff_hash", e.DiffHash),
			requireSet("final_hash", e.FinalHash))
	case OperationAdd:
		checks = append(checks,
			requireUnset("original_hash", e.OriginalHash),
			requireUnset("diff_hash", e.DiffHash),
			requireSet("final_hash", e.FinalHash))
	case OperationDelete:
		checks = append(checks,
			requireSet("original_hash", e.OriginalHash),
			requireUnset("diff_hash", e.DiffHash),
			requireUnset("final_hash", e.FinalHash))
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Manifest describes a complete patch: an ordered list of per-file
// operations. Entry order is apply order and is never changed between
// creation and application.
type Manifest struct {
	// Version is the manifest format version
	Version int `json:"version"`

	// Title is an optional human-readable patch name
	Title string `json:"title,omitempty"`

	// AllowRestricted bypasses the path restriction policy. Off by
	// default; only set it for patches from a trusted source.
	AllowRestricted bool `json:"allow_restricted,omitempty"`

	// Entries are the file operations, in apply order
	Entries []ManifestEntry `json:"entries"`
}

// NewManifest creates an empty manifest at the current format version.
func NewManifest(title string) *Manifest {
	return &Manifest{
		Version: ManifestVersion,
		Title:   title,
		Entries: []ManifestEntry{},
	}
}

// Validate checks every entry against the operation/digest contract.
func (m *Manifest) Validate() error {
	if m.Version <= 0 {
		return fmt.Errorf("manifest version must be positive, got %d", m.Version)
	}
	for i, entry := range m.Entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// ManifestSummary holds per-operation counts for display.
type ManifestSummary struct {
	Version   int
	Title     string
	Total     int
	Patches   int
	Additions int
	Deletions int
}

// Summary counts entries by operation.
func (m *Manifest) Summary() ManifestSummary {
	s := ManifestSummary{
		Version: m.Version,
		Title:   m.Title,
		Total:   len(m.Entries),
	}
	for _, entry := range m.Entries {
		switch entry.Op {
		case OperationPatch:
			s.Patches++
		case OperationAdd:
			s.Additions++
		case OperationDelete:
			s.Deletions++
		}
	}
	return s
}
