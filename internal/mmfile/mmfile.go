// Package mmfile maps RDF files read-only into memory.
package mmfile

import (
	"errors"
	"fmt"
	"io"
)

// File is a read-only view of a whole file. It implements io.ReaderAt and
// must not be used after Close.
type File struct {
	data  []byte
	unmap func([]byte) error
}

// Size returns the mapped length.
func (f *File) Size() int64 { return int64(len(f.data)) }

// Bytes returns the mapping itself. The slice is invalid after Close.
func (f *File) Bytes() []byte { return f.data }

// ReadAt copies len(p) bytes starting at off.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if f.data == nil && f.unmap == nil {
		return 0, errors.New("mmfile: read after close")
	}
	if off < 0 {
		return 0, fmt.Errorf("mmfile: negative offset %d", off)
	}
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping. Closing twice is a no-op.
func (f *File) Close() error {
	data, unmap := f.data, f.unmap
	f.data, f.unmap = nil, nil
	if unmap == nil || len(data) == 0 {
		return nil
	}
	return unmap(data)
}
