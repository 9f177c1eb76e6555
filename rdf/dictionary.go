package rdf

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/nmtools/rdfkit/internal/format"
)

// ValueKind tags the payload of a Value.
type ValueKind uint8

const (
	ValueText ValueKind = iota + 1
	ValueUint
	ValueFloat
)

func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueUint:
		return "uint"
	case ValueFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Value is one dictionary entry: text, an unsigned integer or a float.
type Value struct {
	Kind  ValueKind
	Text  string
	Uint  uint64
	Float float64
}

func TextValue(s string) Value   { return Value{Kind: ValueText, Text: s} }
func UintValue(v uint64) Value   { return Value{Kind: ValueUint, Uint: v} }
func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Float: v} }

// String renders the value regardless of kind.
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueUint:
		return strconv.FormatUint(v.Uint, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	default:
		return ""
	}
}

// Interface returns the payload as string, uint64 or float64.
func (v Value) Interface() any {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueUint:
		return v.Uint
	case ValueFloat:
		return v.Float
	default:
		return nil
	}
}

// Dictionary maps well-known keys to values for one decoded sub-record. It
// is built once per successful decode and keeps insertion order.
type Dictionary struct {
	keys   []string
	values map[string]Value
}

func newDictionary() *Dictionary {
	return &Dictionary{values: make(map[string]Value)}
}

func (d *Dictionary) set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

func (d *Dictionary) text(key, v string)          { d.set(key, TextValue(v)) }
func (d *Dictionary) uint(key string, v uint64)   { d.set(key, UintValue(v)) }
func (d *Dictionary) float(key string, v float64) { d.set(key, FloatValue(v)) }

// Get returns the value for key. A nil dictionary is ErrNotReady; a missing
// key is ErrKeyNotFound.
func (d *Dictionary) Get(key string) (Value, error) {
	if d == nil {
		return Value{}, ErrNotReady
	}
	v, ok := d.values[key]
	if !ok {
		return Value{}, fmt.Errorf("%q: %w", key, ErrKeyNotFound)
	}
	return v, nil
}

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// All iterates the entries in insertion order.
func (d *Dictionary) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Field is one raw layout field rendered as text, for dumps.
type Field struct {
	Name  string
	Value string
}

// view is the shared zero-copy base of every sub-record type.
type view struct {
	rec  format.Record
	dict *Dictionary
}

// Dictionary returns the well-known keys of the sub-record.
func (v *view) Dictionary() *Dictionary { return v.dict }

// Raw returns the sub-record bytes exactly as stored.
func (v *view) Raw() []byte { return v.rec.Raw }

// Fields renders every layout field in on-disk order.
func (v *view) Fields() []Field {
	out := make([]Field, 0, len(v.rec.Layout.Fields))
	for id, f := range v.rec.Layout.Fields {
		if f.Kind == format.KindNone {
			continue
		}
		out = append(out, Field{Name: f.Name, Value: v.rec.Format(id)})
	}
	return out
}
