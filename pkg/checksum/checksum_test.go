package checksum

import (
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/seam/pkg/filesystem"
	"github.com/arthur-debert/seam/pkg/testutil"
)

func TestFromBytes(t *testing.T) {
	d1 := FromBytes([]byte("hello"))
	d2 := FromBytes([]byte("hello"))
	d3 := FromBytes([]byte("hello!"))

	assert.Equal(t, d1, d2)
	assert.NotEqual(t, d1, d3)
	assert.Equal(t, digest.SHA256, d1.Algorithm())
	assert.NoError(t, d1.Validate())
}

func TestFromBytesEmpty(t *testing.T) {
	d := FromBytes(nil)
	assert.NoError(t, d.Validate())
	assert.Equal(t, FromBytes([]byte{}), d)
}

func TestFile(t *testing.T) {
	dir := testutil.TempDir(t, "checksum")
	path := testutil.CreateFile(t, dir, "a.bin", "payload")

	got, err := File(filesystem.NewOS(), path)
	require.NoError(t, err)
	assert.Equal(t, FromBytes([]byte("payload")), got)
}

func TestFileMissing(t *testing.T) {
	dir := testutil.TempDir(t, "checksum")

	_, err := File(filesystem.NewOS(), dir+"/missing.bin")
	assert.Error(t, err)
}
