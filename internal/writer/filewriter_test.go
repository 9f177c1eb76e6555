package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtools/rdfkit/internal/format"
)

func writeSource(t *testing.T, dir string) string {
	t.Helper()
	src := filepath.Join(dir, "src.rdf")
	require.NoError(t, os.WriteFile(src, []byte("0123456789abcdef"), 0o644))
	return src
}

func TestWritePatched(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	dst := filepath.Join(dir, "dst.rdf")

	w := &FileWriter{Path: dst}
	require.NoError(t, w.WritePatched(src, Patch{Offset: 4, Data: []byte("XY")}, Patch{Offset: 14, Data: []byte("ZZ")}))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "0123XY6789abcdZZ", string(got))

	orig, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", string(orig), "source must be untouched")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestWritePatchedRefusals(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)

	w := &FileWriter{Path: src}
	require.ErrorIs(t, w.WritePatched(src), format.ErrSameSourceAndDestination)

	w = &FileWriter{Path: filepath.Join(dir, ".", "sub", "..", "src.rdf")}
	require.ErrorIs(t, w.WritePatched(src), format.ErrSameSourceAndDestination)

	existing := filepath.Join(dir, "exists.rdf")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o644))
	w = &FileWriter{Path: existing}
	require.ErrorIs(t, w.WritePatched(src), format.ErrDestinationExists)
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestWritePatchedOutOfRange(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	dst := filepath.Join(dir, "dst.rdf")

	w := &FileWriter{Path: dst}
	err := w.WritePatched(src, Patch{Offset: 15, Data: []byte("toolong")})
	require.ErrorIs(t, err, format.ErrTruncated)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "destination must stay absent")
}

func TestCheckDestinationHardLink(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	link := filepath.Join(dir, "link.rdf")
	if err := os.Link(src, link); err != nil {
		t.Skipf("hard links unsupported: %v", err)
	}
	require.ErrorIs(t, CheckDestination(src, link), format.ErrSameSourceAndDestination)
}

func TestCommitNeverReplaces(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, ".tmp")
	dst := filepath.Join(dir, "dst.rdf")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	// dst shows up between the destination check and the commit.
	require.NoError(t, os.WriteFile(dst, []byte("racer"), 0o644))

	require.ErrorIs(t, Commit(tmp, dst), format.ErrDestinationExists)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "racer", string(data))
	_, statErr := os.Stat(tmp)
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed")

	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	fresh := filepath.Join(dir, "fresh.rdf")
	require.NoError(t, Commit(tmp, fresh))
	data, err = os.ReadFile(fresh)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	_, statErr = os.Stat(tmp)
	assert.True(t, os.IsNotExist(statErr))
}
