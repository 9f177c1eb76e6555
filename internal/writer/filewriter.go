// Package writer produces modified copies of RDF files.
package writer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nmtools/rdfkit/internal/format"
)

// Patch is a byte range to overwrite in the copy.
type Patch struct {
	Offset int64
	Data   []byte
}

// FileWriter writes a patched copy of a source file to Path atomically.
type FileWriter struct {
	Path string
}

// WritePatched copies src to w.Path via a temp file in the destination
// directory, overwrites each patch range, syncs and commits it with Commit.
// The source is never opened for writing. On any failure the temp file is removed and
// w.Path is left absent.
func (w *FileWriter) WritePatched(src string, patches ...Patch) error {
	if err := CheckDestination(src, w.Path); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()
	st, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	for _, p := range patches {
		if p.Offset < 0 || p.Offset+int64(len(p.Data)) > st.Size() {
			return fmt.Errorf("patch at %d+%d beyond source size %d: %w",
				p.Offset, len(p.Data), st.Size(), format.ErrTruncated)
		}
	}

	// Create temp file in same directory to ensure atomic rename
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".rdfkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, copyErr := io.Copy(tmpFile, in); copyErr != nil {
		return fmt.Errorf("copy source: %w", copyErr)
	}
	for _, p := range patches {
		if _, writeErr := tmpFile.WriteAt(p.Data, p.Offset); writeErr != nil {
			return fmt.Errorf("write patch at %d: %w", p.Offset, writeErr)
		}
	}

	if syncErr := syncFile(tmpFile); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // Don't clean up in defer

	return Commit(tmpPath, w.Path)
}

// Commit moves the finished temp file at tmpPath to dst without ever
// replacing an existing dst: the file is hard-linked into place, which fails
// if dst appeared after CheckDestination ran. Filesystems without hard
// links fall back to a rename. tmpPath is gone when Commit returns.
func Commit(tmpPath, dst string) error {
	defer os.Remove(tmpPath)

	err := os.Link(tmpPath, dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%s: %w", dst, format.ErrDestinationExists)
	}
	if _, statErr := os.Lstat(dst); statErr == nil {
		return fmt.Errorf("%s: %w", dst, format.ErrDestinationExists)
	}
	if renameErr := os.Rename(tmpPath, dst); renameErr != nil {
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}

// CheckDestination refuses a destination that names the source (after
// cleaning to absolute paths, or by file identity) or that already exists.
func CheckDestination(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	if filepath.Clean(absSrc) == filepath.Clean(absDst) {
		return fmt.Errorf("%s: %w", dst, format.ErrSameSourceAndDestination)
	}

	dstInfo, err := os.Lstat(absDst)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("stat destination: %w", err)
	}
	if srcInfo, serr := os.Stat(absSrc); serr == nil && os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("%s: %w", dst, format.ErrSameSourceAndDestination)
	}
	return fmt.Errorf("%s: %w", dst, format.ErrDestinationExists)
}
