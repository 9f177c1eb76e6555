package listmode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/internal/testutil"
	"github.com/nmtools/rdfkit/rdf"
)

func encode(t *testing.T, gen Generation, order binary.ByteOrder, recs ...Record) []byte {
	t.Helper()
	c, err := NewCodec(gen, order, 0)
	require.NoError(t, err)
	var out []byte
	for _, r := range recs {
		out, err = c.Append(out, r)
		require.NoError(t, err)
	}
	return out
}

func collect(t *testing.T, r *Reader) []Record {
	t.Helper()
	var out []Record
	for rec, err := range r.Records() {
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

var dimensionStream = []Record{
	{Kind: KindTimeMarker, Size: 8, TimeMs: 0},
	{Kind: KindEvent, Size: 4, Event: Event{Pos1: Crystal{10, 1}, Pos2: Crystal{200, 2}, Prompt: true}},
	{Kind: KindEvent, Size: 4, Event: Event{Pos1: Crystal{11, 3}, Pos2: Crystal{201, 4}}},
	{Kind: KindGating, Size: 8, Gating: 4},
	{Kind: KindTimeMarker, Size: 8, TimeMs: 1},
	{Kind: KindEvent, Size: 4, Event: Event{Pos1: Crystal{12, 5}, Pos2: Crystal{202, 6}, Prompt: true}},
}

func TestOpenDimensionStream(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		b := testutil.NewBuilder(format.SchemaV7)
		b.Order = order
		b.Payload = encode(t, GenerationDimension, order, dimensionStream...)
		path := b.WriteFile(t, "scan.BLF")

		r, err := Open(path, Options{})
		require.NoError(t, err)
		assert.Equal(t, GenerationDimension, r.Generation())
		start, end := r.Bounds()
		assert.Equal(t, b.ListStart, start)
		assert.Equal(t, b.ListStart+int64(len(b.Payload)), end)

		assert.Equal(t, dimensionStream, collect(t, r))
		_, err = r.Next()
		assert.ErrorIs(t, err, io.EOF)
		require.NoError(t, r.Close())
		require.NoError(t, r.Close())
	}
}

func TestOpenRDF8Stream(t *testing.T) {
	want := []Record{
		{Kind: KindTimeMarker, Size: 6, TimeMs: 10},
		{Kind: KindEvent, Size: 6, Event: Event{Pos1: Crystal{5, 6}, Pos2: Crystal{7, 8}, Prompt: true, TOFBin: -4, DeltaTimePs: -52}},
		{Kind: KindEvent, Size: 6, Event: Event{Pos1: Crystal{9, 10}, Pos2: Crystal{11, 12}, TOFBin: 3, DeltaTimePs: 39}},
		{Kind: KindTimeMarker, Size: 6, TimeMs: 11},
	}
	b := testutil.NewBuilder(format.SchemaV8)
	b.Payload = encode(t, GenerationRDF8, b.Order, want...)
	path := b.WriteFile(t, "scan.BLF")

	r, err := Open(path, Options{TOFBinSizePs: 13})
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, GenerationRDF8, r.Generation())
	assert.Equal(t, want, collect(t, r))
}

func TestOpenMmap(t *testing.T) {
	b := testutil.NewBuilder(format.SchemaV7)
	b.Order = binary.BigEndian
	b.Payload = encode(t, GenerationDimension, b.Order, dimensionStream...)

	r, err := Open(b.WriteFile(t, "scan.BLF"), Options{Mmap: true})
	require.NoError(t, err)
	assert.Equal(t, dimensionStream, collect(t, r))
	require.NoError(t, r.Close())
}

func TestOpenGenerationOverride(t *testing.T) {
	b := testutil.NewBuilder(format.SchemaV8)
	b.Payload = encode(t, GenerationDimension, b.Order, dimensionStream...)
	path := b.WriteFile(t, "scan.BLF")

	r, err := Open(path, Options{Generation: GenerationDimension})
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, dimensionStream, collect(t, r))
}

func TestOpenRejectsCompressed(t *testing.T) {
	b := testutil.NewBuilder(format.SchemaV8)
	b.Compressed = true
	b.Payload = []byte{0xde, 0xad, 0xbe, 0xef}
	_, err := Open(b.WriteFile(t, "scan.BLF"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestOpenSchemaOverrideAndMissingList(t *testing.T) {
	odd := testutil.NewBuilder(format.SchemaV8)
	odd.Major = 9
	r, err := Open(odd.WriteFile(t, "odd.BLF"), Options{Schema: rdf.SchemaV8})
	require.NoError(t, err)
	assert.Equal(t, GenerationRDF8, r.Generation())
	require.NoError(t, r.Close())

	_, err = Open(odd.WriteFile(t, "odd.BLF"), Options{})
	assert.ErrorIs(t, err, rdf.ErrUnsupportedVersion)

	b := testutil.NewBuilder(format.SchemaV8)
	b.OmitList = true
	_, err = Open(b.WriteFile(t, "nolist.BLF"), Options{})
	assert.ErrorIs(t, err, rdf.ErrRecordAbsent)
}

func TestNewReaderStartsAtOffset(t *testing.T) {
	prefix := bytes.Repeat([]byte{0xff}, 13)
	payload := encode(t, GenerationDimension, binary.LittleEndian, dimensionStream[1:3]...)
	src := append(prefix, payload...)

	c, err := NewCodec(GenerationDimension, binary.LittleEndian, 0)
	require.NoError(t, err)
	r, err := NewReader(bytes.NewReader(src), int64(len(src)), Span{Start: 13}, c, Options{})
	require.NoError(t, err)
	assert.Equal(t, dimensionStream[1:3], collect(t, r))

	_, err = NewReader(bytes.NewReader(src), int64(len(src)), Span{Start: 100}, c, Options{})
	assert.ErrorIs(t, err, format.ErrTruncated)
}

func TestNextTruncated(t *testing.T) {
	payload := encode(t, GenerationDimension, binary.LittleEndian, dimensionStream[:2]...)
	payload = append(payload, 0x00, 0x00)

	c, err := NewCodec(GenerationDimension, binary.LittleEndian, 0)
	require.NoError(t, err)
	r, err := NewReader(bytes.NewReader(payload), int64(len(payload)), Span{}, c, Options{})
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, format.ErrTruncated)

	// The tag promises 8 bytes but only 4 remain.
	wide := encode(t, GenerationDimension, binary.LittleEndian, Record{Kind: KindTimeMarker, TimeMs: 5})[:4]
	r, err = NewReader(bytes.NewReader(wide), 4, Span{}, c, Options{})
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, format.ErrTruncated)
}

func TestListLengthBoundsStream(t *testing.T) {
	payload := encode(t, GenerationDimension, binary.LittleEndian, dimensionStream...)
	c, err := NewCodec(GenerationDimension, binary.LittleEndian, 0)
	require.NoError(t, err)

	r, err := NewReader(bytes.NewReader(payload), int64(len(payload)), Span{Length: 16}, c, Options{})
	require.NoError(t, err)
	assert.Equal(t, dimensionStream[:3], collect(t, r))

	// A length past the end of the source falls back to the source size.
	r, err = NewReader(bytes.NewReader(payload), int64(len(payload)), Span{Length: 1 << 40}, c, Options{})
	require.NoError(t, err)
	assert.Len(t, collect(t, r), len(dimensionStream))
}

func TestSkipUnknown(t *testing.T) {
	c, err := NewCodec(GenerationRDF8, binary.LittleEndian, 0)
	require.NoError(t, err)
	tm := Record{Kind: KindTimeMarker, Size: 6, TimeMs: 7}
	payload := encode(t, GenerationRDF8, binary.LittleEndian, tm)
	frameSync := make([]byte, 16)
	frameSync[0] = 0x85
	calib := []byte{0x0d, 0x00, 0x00, 0x00, 0x00, 0x00}
	payload = append(payload, frameSync...)
	payload = append(payload, calib...)
	payload = append(payload, encode(t, GenerationRDF8, binary.LittleEndian, tm)...)

	strict, err := NewReader(bytes.NewReader(payload), int64(len(payload)), Span{}, c, Options{})
	require.NoError(t, err)
	_, err = strict.Next()
	require.NoError(t, err)
	_, err = strict.Next()
	var re *RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, int64(6), re.Offset)
	assert.Equal(t, 16, re.Size)
	assert.ErrorIs(t, err, ErrUnrecognizedRecord)
	// The unrecognised record was consumed.
	_, err = strict.Next()
	require.True(t, errors.As(err, &re))
	assert.Equal(t, int64(22), re.Offset)
	rec, err := strict.Next()
	require.NoError(t, err)
	assert.True(t, rec.Equal(tm))

	lenient, err := NewReader(bytes.NewReader(payload), int64(len(payload)), Span{}, c, Options{SkipUnknown: true})
	require.NoError(t, err)
	assert.Equal(t, []Record{tm, tm}, collect(t, lenient))
	assert.Equal(t, uint64(2), lenient.Skipped())
}

func TestRecordsStopsOnError(t *testing.T) {
	c, err := NewCodec(GenerationRDF8, binary.LittleEndian, 0)
	require.NoError(t, err)
	payload := []byte{0x0d, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05, 0x00, 0x07, 0x00, 0x00, 0xa0}
	r, err := NewReader(bytes.NewReader(payload), int64(len(payload)), Span{}, c, Options{})
	require.NoError(t, err)

	var errs int
	for _, err := range r.Records() {
		require.Error(t, err)
		errs++
	}
	assert.Equal(t, 1, errs)
}

func TestResetAndPositions(t *testing.T) {
	payload := encode(t, GenerationDimension, binary.LittleEndian, dimensionStream...)
	c, err := NewCodec(GenerationDimension, binary.LittleEndian, 0)
	require.NoError(t, err)
	r, err := NewReader(bytes.NewReader(payload), int64(len(payload)), Span{}, c, Options{})
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	saved := r.SavePosition()
	assert.Equal(t, int64(8), r.Offset())

	rest := collect(t, r)
	assert.Equal(t, dimensionStream[1:], rest)

	require.NoError(t, r.RestorePosition(saved))
	assert.Equal(t, rest, collect(t, r))

	r.Reset()
	assert.Equal(t, dimensionStream, collect(t, r))

	other, err := NewReader(bytes.NewReader(payload), int64(len(payload)), Span{}, c, Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, other.RestorePosition(saved), ErrInvalidPosition)
	assert.ErrorIs(t, r.RestorePosition(Position{}), ErrInvalidPosition)

	bogus := r.SavePosition()
	bogus.offset = int64(len(payload)) + 4
	assert.ErrorIs(t, r.RestorePosition(bogus), ErrInvalidPosition)
}
