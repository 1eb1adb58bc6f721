// Package checksum computes the content digests used for manifest
// hash fields, categorization and post-apply verification.
//
// Digests are opencontainers digests in their canonical sha256 form,
// e.g. "sha256:af13...". The algorithm prefix keeps persisted
// manifests self-describing.
package checksum

import (
	"github.com/opencontainers/go-digest"

	"github.com/arthur-debert/seam/pkg/types"
)

// FromBytes computes the canonical digest of data.
func FromBytes(data []byte) digest.Digest {
	return digest.FromBytes(data)
}

// File reads path through fs and returns its content digest.
func File(fs types.FS, path string) (digest.Digest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	return digest.FromBytes(data), nil
}
