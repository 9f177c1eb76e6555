package listmode

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/nmtools/rdfkit/internal/buf"
	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/internal/logging"
	"github.com/nmtools/rdfkit/rdf"
)

// Options configure a Reader.
type Options struct {
	// Generation overrides the encoding implied by the header schema.
	Generation Generation
	// Schema overrides the header schema derived from the config version.
	Schema rdf.Schema
	// TOFBinSizePs scales RDF8 TOF bins into Event.DeltaTimePs.
	TOFBinSizePs float64
	// SkipUnknown makes Next step over unrecognised records instead of
	// returning a *RecordError.
	SkipUnknown bool
	// Mmap maps the file instead of reading record by record.
	Mmap bool
}

// Span locates the record stream inside its source.
type Span struct {
	Start int64
	// Length is the stream size in bytes. Zero, or a length running past the
	// source, means the stream extends to the end of the source.
	Length     int64
	Compressed bool
}

// Position is an opaque stream position returned by SavePosition. It is
// only valid for the Reader that produced it.
type Position struct {
	owner  uint64
	gen    Generation
	offset int64
}

var readerIDs atomic.Uint64

// Reader decodes records sequentially from a listmode stream. A Reader is
// not safe for concurrent use.
type Reader struct {
	src    io.ReaderAt
	closer io.Closer
	codec  Codec
	opts   Options

	id    uint64
	start int64
	end   int64
	pos   int64

	scratch [maxRecordSize]byte
	skipped uint64
	log     zerolog.Logger
}

// Open opens the RDF file at path and positions a Reader at the first record
// of its list. Compressed lists are rejected with ErrUnsupportedCompression.
//
//	r, err := listmode.Open("scan.BLF", listmode.Options{TOFBinSizePs: 13.02})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	for rec, err := range r.Records() {
//	    ...
//	}
func Open(path string, opts Options) (*Reader, error) {
	f, err := rdf.Open(path, rdf.Options{Schema: opts.Schema, Mmap: opts.Mmap})
	if err != nil {
		return nil, err
	}
	r, err := FromFile(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f
	r.log = r.log.With().Str("file", path).Logger()
	return r, nil
}

// FromFile builds a Reader over the list of an already opened file. The
// caller keeps ownership of f.
func FromFile(f *rdf.File, opts Options) (*Reader, error) {
	ld, err := f.ReadListDescriptor()
	if err != nil {
		return nil, err
	}
	gen := opts.Generation
	if gen == GenerationAuto {
		if gen, err = GenerationForSchema(f.Schema()); err != nil {
			return nil, err
		}
	}
	codec, err := NewCodec(gen, f.Order(), opts.TOFBinSizePs)
	if err != nil {
		return nil, err
	}
	length := int64(ld.SizeOfList())
	if length < 0 {
		length = 0
	}
	span := Span{Start: ld.StartOffset(), Length: length, Compressed: ld.IsCompressed()}
	return NewReader(f.ReaderAt(), f.Size(), span, codec, opts)
}

// NewReader returns a Reader over the size bytes of src described by span.
// The caller keeps ownership of src.
func NewReader(src io.ReaderAt, size int64, span Span, codec Codec, opts Options) (*Reader, error) {
	if span.Compressed {
		return nil, ErrUnsupportedCompression
	}
	if span.Start < 0 || span.Start > size {
		return nil, fmt.Errorf("list start %d outside %d-byte file: %w", span.Start, size, format.ErrTruncated)
	}
	end := size
	if span.Length > 0 {
		if e, ok := buf.AddOverflowSafe64(span.Start, span.Length); ok && e <= size {
			end = e
		}
	}
	r := &Reader{
		src:   src,
		codec: codec,
		opts:  opts,
		id:    readerIDs.Add(1),
		start: span.Start,
		end:   end,
		pos:   span.Start,
		log:   logging.With("listmode"),
	}
	r.log.Debug().
		Str("generation", codec.Generation().String()).
		Int64("start", r.start).
		Int64("end", r.end).
		Msg("list stream")
	return r, nil
}

// Next returns the next record. It returns io.EOF at the end of the stream
// and an error wrapping ErrTruncated when the stream ends inside a record.
func (r *Reader) Next() (Record, error) {
	for {
		rec, err := r.next()
		var re *RecordError
		if err != nil && r.opts.SkipUnknown && errors.As(err, &re) {
			r.skipped++
			r.log.Debug().Int64("offset", re.Offset).Int("size", re.Size).Str("reason", re.Reason).Msg("skipped record")
			continue
		}
		return rec, err
	}
}

func (r *Reader) next() (Record, error) {
	if r.pos >= r.end {
		return Record{}, io.EOF
	}
	remaining := r.end - r.pos
	minSize := r.codec.MinSize()
	if remaining < int64(minSize) {
		return Record{}, r.truncated(minSize)
	}
	if err := r.read(r.scratch[:minSize], r.pos); err != nil {
		return Record{}, err
	}
	size := r.codec.RecordSize(r.scratch[:minSize])
	if remaining < int64(size) {
		return Record{}, r.truncated(size)
	}
	if size > minSize {
		if err := r.read(r.scratch[minSize:size], r.pos+int64(minSize)); err != nil {
			return Record{}, err
		}
	}
	at := r.pos
	r.pos += int64(size)
	rec, err := r.codec.Decode(r.scratch[:size])
	if err != nil {
		var re *RecordError
		if errors.As(err, &re) {
			re.Offset = at
		}
		return Record{}, err
	}
	return rec, nil
}

func (r *Reader) read(p []byte, off int64) error {
	n, err := r.src.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("record at %d: %w", off, format.ErrTruncated)
		}
		return err
	}
	return fmt.Errorf("record at %d: short read: %w", off, format.ErrTruncated)
}

func (r *Reader) truncated(need int) error {
	return fmt.Errorf("record at %d needs %d bytes, %d left: %w", r.pos, need, r.end-r.pos, format.ErrTruncated)
}

// Records iterates over the remaining records. Iteration stops after the
// first error other than io.EOF, which ends the sequence silently.
func (r *Reader) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Reset moves the reader back to the first record.
func (r *Reader) Reset() { r.pos = r.start }

// SavePosition captures the current stream position.
func (r *Reader) SavePosition() Position {
	return Position{owner: r.id, gen: r.codec.Generation(), offset: r.pos}
}

// RestorePosition moves the reader to p. Positions from another Reader or
// outside the stream return ErrInvalidPosition.
func (r *Reader) RestorePosition(p Position) error {
	if p.owner != r.id || p.gen != r.codec.Generation() {
		return fmt.Errorf("foreign position: %w", format.ErrInvalidPosition)
	}
	if p.offset < r.start || p.offset > r.end {
		return fmt.Errorf("position %d outside [%d,%d]: %w", p.offset, r.start, r.end, format.ErrInvalidPosition)
	}
	r.pos = p.offset
	return nil
}

// Offset returns the file offset of the next record.
func (r *Reader) Offset() int64 { return r.pos }

// Bounds returns the byte range the reader walks.
func (r *Reader) Bounds() (start, end int64) { return r.start, r.end }

// Generation returns the record encoding in use.
func (r *Reader) Generation() Generation { return r.codec.Generation() }

// Skipped returns how many unrecognised records Next has stepped over.
func (r *Reader) Skipped() uint64 { return r.skipped }

// Close releases the file opened by Open. Readers built with NewReader or
// FromFile leave their source open.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}
