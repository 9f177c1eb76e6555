package format

import "fmt"

// Kind is the on-disk type of a header field.
type Kind uint8

const (
	// KindNone marks a field id that the layout generation does not carry.
	KindNone Kind = iota
	KindU32
	KindI32
	KindU64
	KindF32
	KindF64
	KindText
)

func (k Kind) width() int {
	switch k {
	case KindU32, KindI32, KindF32:
		return 4
	case KindU64, KindF64:
		return 8
	default:
		return 0
	}
}

// Field describes one entry of a sub-record layout. Scalar arrays set Count;
// padded strings set Len to the nominal length and occupy Pad4(Len) bytes.
type Field struct {
	Name   string
	Kind   Kind
	Len    int
	Count  int
	Offset int
}

// Size returns the number of bytes the field occupies on disk.
func (f Field) Size() int {
	if f.Kind == KindText {
		return Pad4(f.Len)
	}
	return f.Count * f.Kind.width()
}

func U32(name string) Field              { return Field{Name: name, Kind: KindU32, Count: 1} }
func U32s(name string, n int) Field      { return Field{Name: name, Kind: KindU32, Count: n} }
func I32(name string) Field              { return Field{Name: name, Kind: KindI32, Count: 1} }
func U64(name string) Field              { return Field{Name: name, Kind: KindU64, Count: 1} }
func F32(name string) Field              { return Field{Name: name, Kind: KindF32, Count: 1} }
func F32s(name string, n int) Field      { return Field{Name: name, Kind: KindF32, Count: n} }
func F64s(name string, n int) Field      { return Field{Name: name, Kind: KindF64, Count: n} }
func Text(name string, length int) Field { return Field{Name: name, Kind: KindText, Len: length} }

// Layout is the fixed byte layout of one sub-record generation. Fields are
// indexed by per-record id constants and laid out back to back in id order;
// ids a generation does not carry are left as KindNone and take no space.
type Layout struct {
	Name   string
	Schema Schema
	Fields []Field
	Size   int
}

// NewLayout computes field offsets and the total size.
func NewLayout(name string, schema Schema, fields []Field) *Layout {
	l := &Layout{Name: name, Schema: schema, Fields: fields}
	off := 0
	for i := range l.Fields {
		if l.Fields[i].Kind == KindNone {
			continue
		}
		l.Fields[i].Offset = off
		off += l.Fields[i].Size()
	}
	l.Size = off
	return l
}

// Has reports whether the layout carries field id.
func (l *Layout) Has(id int) bool {
	return id >= 0 && id < len(l.Fields) && l.Fields[id].Kind != KindNone
}

// Field returns the descriptor for id. It panics on ids the layout does not
// carry, which is a programming error in the caller.
func (l *Layout) Field(id int) Field {
	if !l.Has(id) {
		panic(fmt.Sprintf("format: %s layout has no field %d", l.Name, id))
	}
	return l.Fields[id]
}
