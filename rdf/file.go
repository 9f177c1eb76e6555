package rdf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/nmtools/rdfkit/internal/buf"
	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/internal/logging"
	"github.com/nmtools/rdfkit/internal/mmfile"
)

// Options controls how a file is opened.
type Options struct {
	// Schema forces a layout generation. SchemaAuto derives it from the
	// config major version.
	Schema Schema

	// Mmap maps the file read-only instead of issuing a read per record.
	Mmap bool
}

// File is an opened RDF file. It performs positioned reads only and keeps
// no cursor, but it is not safe for concurrent use; open one per goroutine.
type File struct {
	r       io.ReaderAt
	closer  io.Closer
	path    string
	size    int64
	offsets format.OffsetTable
	layouts *format.Layouts
	config  *Config
	log     zerolog.Logger
}

// CanRead reports whether sig starts with the RDF byte-order marker in
// either byte order. It is the signature check used by format registries.
func CanRead(sig []byte) bool {
	if len(sig) < format.MarkerSize {
		return false
	}
	v := buf.U32LE(sig)
	return v == format.Marker || v == format.MarkerSwapped
}

// ReadOffsetTable reads and validates the file prefix from r.
func ReadOffsetTable(r io.ReaderAt) (OffsetTable, error) {
	b := make([]byte, format.OffsetTableSize)
	n, err := r.ReadAt(b, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return OffsetTable{}, fmt.Errorf("read offset table: %w", err)
	}
	return format.ParseOffsetTable(b[:n])
}

// Open opens path and decodes the offset table and config.
//
// Example:
//
//	f, err := rdf.Open("scan.BLF", rdf.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	exam, err := f.ReadExam()
func Open(path string, opts Options) (*File, error) {
	src, size, err := openSource(path, opts.Mmap)
	if err != nil {
		return nil, err
	}
	f, err := NewFile(src, size, opts)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.closer = src
	f.path = path
	f.log = f.log.With().Str("file", path).Bool("mmap", opts.Mmap).Logger()
	return f, nil
}

type source interface {
	io.ReaderAt
	io.Closer
}

func openSource(path string, mmap bool) (source, int64, error) {
	if mmap {
		m, err := mmfile.Open(path, true)
		if err != nil {
			return nil, 0, err
		}
		return m, m.Size(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, 0, err
	}
	return fh, st.Size(), nil
}

// NewFile decodes the offset table and config from r, which holds size bytes.
// The caller keeps ownership of r.
func NewFile(r io.ReaderAt, size int64, opts Options) (*File, error) {
	offsets, err := ReadOffsetTable(r)
	if err != nil {
		return nil, err
	}
	f := &File{
		r:       r,
		size:    size,
		offsets: offsets,
		log:     logging.With("rdf"),
	}
	f.log.Debug().
		Bool("big_endian", buf.IsBigEndian(offsets.Order)).
		Uint32("config", offsets.Offsets[format.SlotConfig]).
		Uint32("exam", offsets.Offsets[format.SlotExam]).
		Uint32("list_header", offsets.Offsets[format.SlotListHeader]).
		Msg("offset table")

	cfg, err := f.readConfig()
	if err != nil {
		return nil, err
	}
	f.config = cfg

	schema := opts.Schema
	if schema == SchemaAuto {
		schema, err = format.SchemaForMajor(cfg.MajorVersion())
		if err != nil {
			return nil, fmt.Errorf("config major version %d: %w", cfg.MajorVersion(), err)
		}
	}
	layouts, err := format.LayoutsFor(schema)
	if err != nil {
		return nil, fmt.Errorf("schema %d: %w", schema, err)
	}
	f.layouts = layouts
	return f, nil
}

// Close releases the underlying file when the File was created by Open.
func (f *File) Close() error {
	if f == nil || f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// Path returns the path given to Open, or "" for NewFile.
func (f *File) Path() string { return f.path }

func (f *File) Size() int64 { return f.size }

// Order returns the byte order the file was written in.
func (f *File) Order() binary.ByteOrder { return f.offsets.Order }

func (f *File) Offsets() OffsetTable { return f.offsets }

// Schema returns the layout generation in use.
func (f *File) Schema() Schema { return f.layouts.Schema }

// Config returns the config sub-record decoded at open time.
func (f *File) Config() *Config { return f.config }

// ReaderAt exposes the byte source for packages that decode the payload.
func (f *File) ReaderAt() io.ReaderAt { return f.r }

// readBlock reads exactly n bytes of the sub-record in slot.
func (f *File) readBlock(slot format.Slot, n int) ([]byte, int64, error) {
	off := f.offsets.Offset(slot)
	if off == 0 {
		return nil, 0, fmt.Errorf("%s: %w", slot, ErrRecordAbsent)
	}
	if _, err := buf.CheckRange(f.size, off, n); err != nil {
		return nil, 0, fmt.Errorf("%s at %d: %v: %w", slot, off, err, ErrTruncated)
	}
	b := make([]byte, n)
	got, err := f.r.ReadAt(b, off)
	if got < n {
		if err == nil || errors.Is(err, io.EOF) {
			err = ErrTruncated
		}
		return nil, 0, fmt.Errorf("%s at %d: read %d of %d bytes: %w", slot, off, got, n, err)
	}
	return b, off, nil
}

func (f *File) readRecord(slot format.Slot, l *format.Layout) (format.Record, int64, error) {
	b, off, err := f.readBlock(slot, l.Size)
	if err != nil {
		return format.Record{}, 0, err
	}
	rec, err := format.NewRecord(l, f.offsets.Order, b)
	return rec, off, err
}
