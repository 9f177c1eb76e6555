// Package buf contains helpers for endian-safe decoding routines.
//
// RDF files are written in the console's native order, which is usually
// little-endian. Every helper here takes the order explicitly so callers never
// depend on the host layout.
package buf

import (
	"encoding/binary"
	"math"
)

// U16 reads a uint16 in order from b. Returns 0 when b is too short.
func U16(b []byte, order binary.ByteOrder) uint16 {
	if len(b) < 2 {
		return 0
	}
	return order.Uint16(b)
}

// U32 reads a uint32 in order from b. Returns 0 when b is too short.
func U32(b []byte, order binary.ByteOrder) uint32 {
	if len(b) < 4 {
		return 0
	}
	return order.Uint32(b)
}

// U64 reads a uint64 in order from b. Returns 0 when b is too short.
func U64(b []byte, order binary.ByteOrder) uint64 {
	if len(b) < 8 {
		return 0
	}
	return order.Uint64(b)
}

// I32 reads an int32 in order from b. Returns 0 when b is too short.
func I32(b []byte, order binary.ByteOrder) int32 {
	if len(b) < 4 {
		return 0
	}
	return int32(order.Uint32(b))
}

// F32 reads an IEEE-754 float32 in order from b. Returns 0 when b is too short.
func F32(b []byte, order binary.ByteOrder) float32 {
	if len(b) < 4 {
		return 0
	}
	return math.Float32frombits(order.Uint32(b))
}

// F64 reads an IEEE-754 float64 in order from b. Returns 0 when b is too short.
func F64(b []byte, order binary.ByteOrder) float64 {
	if len(b) < 8 {
		return 0
	}
	return math.Float64frombits(order.Uint64(b))
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	return U32(b, binary.LittleEndian)
}

// SwapWords reverses the byte order of every word of size bytes in b, in
// place. A trailing partial word is left untouched. size must be 2, 4 or 8.
func SwapWords(b []byte, size int) {
	for off := 0; off+size <= len(b); off += size {
		w := b[off : off+size]
		for i, j := 0, size-1; i < j; i, j = i+1, j-1 {
			w[i], w[j] = w[j], w[i]
		}
	}
}

// IsBigEndian reports whether order is binary.BigEndian.
func IsBigEndian(order binary.ByteOrder) bool {
	return order == binary.BigEndian
}
