// Package manifest persists and loads patch manifests.
//
// A manifest is written once by patch creation and read back
// read-only at apply and rollback time. Loading enforces the
// operation/digest contract, so a document that passes Load is safe
// for the engine to trust structurally.
package manifest

import (
	"encoding/json"
	"os"

	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/types"
)

// Load parses the manifest document at path.
//
// A missing file reports ErrManifestNotFound; malformed JSON and
// entries violating the operation/digest contract report ErrManifest.
// A hash field that is present when the operation forbids it is
// malformed input, not something to silently ignore.
func Load(fs types.FS, path string) (*types.Manifest, error) {
	logger := logging.GetLogger("manifest")

	if _, err := fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestNotFound, "manifest not found at %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrManifest, "cannot stat manifest %s", path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifest, "failed to read manifest %s", path)
	}

	var m types.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifest, "malformed manifest %s", path)
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifest, "invalid manifest %s", path)
	}

	logger.Debug().
		Str("path", path).
		Int("entries", len(m.Entries)).
		Msg("Manifest loaded")
	return &m, nil
}

// Save serializes m to path as indented JSON. Entry order is
// preserved exactly; stable key order within an entry is not
// guaranteed and not required.
func Save(fs types.FS, m *types.Manifest, path string) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrManifest, "refusing to save invalid manifest")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifest, "failed to serialize manifest")
	}
	data = append(data, '\n')

	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifest, "failed to write manifest %s", path)
	}
	return nil
}
