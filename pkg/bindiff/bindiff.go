// Package bindiff wraps the binary delta algorithm consumed by the
// patch engine. The engine treats deltas as opaque byte blobs: only
// Create and Apply ever interpret them.
package bindiff

import (
	"github.com/gabstv/go-bsdiff/pkg/bsdiff"
	"github.com/gabstv/go-bsdiff/pkg/bspatch"
)

// Create produces a delta that transforms old into new.
func Create(old, new []byte) ([]byte, error) {
	return bsdiff.Bytes(old, new)
}

// Apply reconstructs the new content from old plus a delta produced
// by Create.
func Apply(old, delta []byte) ([]byte, error) {
	return bspatch.Bytes(old, delta)
}
