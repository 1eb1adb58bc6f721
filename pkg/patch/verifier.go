package patch

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/seam/pkg/checksum"
	"github.com/arthur-debert/seam/pkg/errors"
	"github.com/arthur-debert/seam/pkg/types"
)

// VerifyEntry confirms that an applied entry produced the content the
// manifest promised. A write can succeed at the I/O layer and still
// leave wrong bytes behind (truncated write, delta applied against
// unexpected input); the digest comparison is the only trustworthy
// confirmation.
//
// For patch and add entries the target's digest must equal
// final_hash; for delete entries the target must be absent.
func VerifyEntry(fs types.FS, entry types.ManifestEntry, targetDir string) error {
	targetPath := filepath.Join(targetDir, entry.File)

	switch entry.Op {
	case types.OperationPatch, types.OperationAdd:
		actual, err := checksum.File(fs, targetPath)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Newf(errors.ErrVerification, "file missing after apply").
					WithFile(entry.File).
					WithDetail("expected", entry.FinalHash.String())
			}
			return errors.Wrap(err, errors.ErrVerification, "cannot hash applied file").WithFile(entry.File)
		}
		if actual != entry.FinalHash {
			return errors.Newf(errors.ErrVerification, "hash mismatch: expected %s, got %s", entry.FinalHash, actual).
				WithFile(entry.File).
				WithDetail("expected", entry.FinalHash.String()).
				WithDetail("actual", actual.String())
		}
		return nil

	case types.OperationDelete:
		if _, err := fs.Stat(targetPath); err == nil {
			return errors.Newf(errors.ErrVerification, "file still present after delete").WithFile(entry.File)
		}
		return nil

	default:
		return errors.Newf(errors.ErrInternal, "unknown operation %q", entry.Op).WithFile(entry.File)
	}
}
