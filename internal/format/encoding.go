package format

import (
	"encoding/binary"
	"math"

	"github.com/nmtools/rdfkit/internal/buf"
)

// Binary encoding utilities for header scalars.
//
// RDF files carry their own byte order (see DetectOrder), so every helper
// takes it explicitly. Callers are expected to have bounds-checked b against
// the layout size; these helpers panic on short buffers like encoding/binary.

// PutU32 writes a uint32 value at off in the given order.
func PutU32(b []byte, off int, v uint32, order binary.ByteOrder) {
	order.PutUint32(b[off:off+4], v)
}

// PutI32 writes an int32 value at off in the given order.
func PutI32(b []byte, off int, v int32, order binary.ByteOrder) {
	order.PutUint32(b[off:off+4], uint32(v))
}

// PutU64 writes a uint64 value at off in the given order.
func PutU64(b []byte, off int, v uint64, order binary.ByteOrder) {
	order.PutUint64(b[off:off+8], v)
}

// PutF32 writes an IEEE-754 float32 at off in the given order.
func PutF32(b []byte, off int, v float32, order binary.ByteOrder) {
	order.PutUint32(b[off:off+4], math.Float32bits(v))
}

// PutF64 writes an IEEE-754 float64 at off in the given order.
func PutF64(b []byte, off int, v float64, order binary.ByteOrder) {
	order.PutUint64(b[off:off+8], math.Float64bits(v))
}

// ReadU32 reads a uint32 value at off in the given order.
func ReadU32(b []byte, off int, order binary.ByteOrder) uint32 { return buf.U32(b[off:], order) }

// ReadI32 reads an int32 value at off in the given order.
func ReadI32(b []byte, off int, order binary.ByteOrder) int32 { return buf.I32(b[off:], order) }

// ReadU64 reads a uint64 value at off in the given order.
func ReadU64(b []byte, off int, order binary.ByteOrder) uint64 { return buf.U64(b[off:], order) }

// ReadF32 reads an IEEE-754 float32 at off in the given order.
func ReadF32(b []byte, off int, order binary.ByteOrder) float32 { return buf.F32(b[off:], order) }

// ReadF64 reads an IEEE-754 float64 at off in the given order.
func ReadF64(b []byte, off int, order binary.ByteOrder) float64 { return buf.F64(b[off:], order) }
