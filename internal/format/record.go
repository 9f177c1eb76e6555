package format

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Record is a zero-copy view over a decoded sub-record. Accessors interpret
// Raw through Layout in the file's byte order; setters rewrite Raw in place.
type Record struct {
	Layout *Layout
	Order  binary.ByteOrder
	Raw    []byte
}

// NewRecord wraps raw, which must be at least layout.Size bytes.
func NewRecord(layout *Layout, order binary.ByteOrder, raw []byte) (Record, error) {
	if len(raw) < layout.Size {
		return Record{}, fmt.Errorf("%s: %d bytes < %d: %w", layout.Name, len(raw), layout.Size, ErrTruncated)
	}
	return Record{Layout: layout, Order: order, Raw: raw[:layout.Size]}, nil
}

// Has reports whether the record's layout carries id.
func (r Record) Has(id int) bool { return r.Layout.Has(id) }

func (r Record) at(id, i int) (Field, int) {
	f := r.Layout.Field(id)
	return f, f.Offset + i*f.Kind.width()
}

// U32 returns the first element of a u32 field. Missing fields read as 0.
func (r Record) U32(id int) uint32 { return r.U32At(id, 0) }

// U32At returns element i of a u32 field.
func (r Record) U32At(id, i int) uint32 {
	if !r.Has(id) {
		return 0
	}
	_, off := r.at(id, i)
	return ReadU32(r.Raw, off, r.Order)
}

func (r Record) I32(id int) int32 {
	if !r.Has(id) {
		return 0
	}
	_, off := r.at(id, 0)
	return ReadI32(r.Raw, off, r.Order)
}

func (r Record) U64(id int) uint64 {
	if !r.Has(id) {
		return 0
	}
	_, off := r.at(id, 0)
	return ReadU64(r.Raw, off, r.Order)
}

func (r Record) F32(id int) float32 { return r.F32At(id, 0) }

func (r Record) F32At(id, i int) float32 {
	if !r.Has(id) {
		return 0
	}
	_, off := r.at(id, i)
	return ReadF32(r.Raw, off, r.Order)
}

func (r Record) F64At(id, i int) float64 {
	if !r.Has(id) {
		return 0
	}
	_, off := r.at(id, i)
	return ReadF64(r.Raw, off, r.Order)
}

// U32s returns a copy of a u32 array field.
func (r Record) U32s(id int) []uint32 {
	if !r.Has(id) {
		return nil
	}
	f := r.Layout.Field(id)
	out := make([]uint32, f.Count)
	for i := range out {
		out[i] = ReadU32(r.Raw, f.Offset+4*i, r.Order)
	}
	return out
}

// F32s returns a copy of a f32 array field.
func (r Record) F32s(id int) []float32 {
	if !r.Has(id) {
		return nil
	}
	f := r.Layout.Field(id)
	out := make([]float32, f.Count)
	for i := range out {
		out[i] = ReadF32(r.Raw, f.Offset+4*i, r.Order)
	}
	return out
}

// Bytes returns the raw bytes of a field without copying.
func (r Record) Bytes(id int) []byte {
	if !r.Has(id) {
		return nil
	}
	f := r.Layout.Field(id)
	return r.Raw[f.Offset : f.Offset+f.Size()]
}

// Text returns a padded string field as UTF-8 with the pad trimmed.
func (r Record) Text(id int) string {
	return DecodeText(r.Bytes(id))
}

// SetText encodes s into a padded string field.
func (r Record) SetText(id int, s string) error {
	f := r.Layout.Field(id)
	if f.Kind != KindText {
		return fmt.Errorf("%s.%s: not a text field", r.Layout.Name, f.Name)
	}
	enc, err := EncodeText(s, f.Len)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	copy(r.Raw[f.Offset:], enc)
	return nil
}

// SetU32 writes element 0 of a u32 field.
func (r Record) SetU32(id int, v uint32) {
	_, off := r.at(id, 0)
	PutU32(r.Raw, off, v, r.Order)
}

// SetU32At writes element i of a u32 field.
func (r Record) SetU32At(id, i int, v uint32) {
	_, off := r.at(id, i)
	PutU32(r.Raw, off, v, r.Order)
}

func (r Record) SetI32(id int, v int32) {
	_, off := r.at(id, 0)
	PutI32(r.Raw, off, v, r.Order)
}

func (r Record) SetU64(id int, v uint64) {
	_, off := r.at(id, 0)
	PutU64(r.Raw, off, v, r.Order)
}

func (r Record) SetF32(id int, v float32) { r.SetF32At(id, 0, v) }

func (r Record) SetF32At(id, i int, v float32) {
	_, off := r.at(id, i)
	PutF32(r.Raw, off, v, r.Order)
}

func (r Record) SetF64At(id, i int, v float64) {
	_, off := r.at(id, i)
	PutF64(r.Raw, off, v, r.Order)
}

// Clone returns a record with its own copy of Raw.
func (r Record) Clone() Record {
	raw := make([]byte, len(r.Raw))
	copy(raw, r.Raw)
	return Record{Layout: r.Layout, Order: r.Order, Raw: raw}
}

// Format renders any field as text for dumps. Arrays render as
// space-separated values in brackets.
func (r Record) Format(id int) string {
	if !r.Has(id) {
		return ""
	}
	f := r.Layout.Field(id)
	if f.Kind == KindText {
		return r.Text(id)
	}
	parts := make([]string, f.Count)
	for i := range parts {
		off := f.Offset + i*f.Kind.width()
		switch f.Kind {
		case KindU32:
			parts[i] = strconv.FormatUint(uint64(ReadU32(r.Raw, off, r.Order)), 10)
		case KindI32:
			parts[i] = strconv.FormatInt(int64(ReadI32(r.Raw, off, r.Order)), 10)
		case KindU64:
			parts[i] = strconv.FormatUint(ReadU64(r.Raw, off, r.Order), 10)
		case KindF32:
			parts[i] = strconv.FormatFloat(float64(ReadF32(r.Raw, off, r.Order)), 'g', -1, 32)
		case KindF64:
			parts[i] = strconv.FormatFloat(ReadF64(r.Raw, off, r.Order), 'g', -1, 64)
		}
	}
	if f.Count == 1 {
		return parts[0]
	}
	return "[" + strings.Join(parts, " ") + "]"
}
