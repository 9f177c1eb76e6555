package format

import (
	"encoding/binary"
	"testing"
)

func TestScalarRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		b := make([]byte, 32)
		PutU32(b, 0, 0xDEADBEEF, order)
		PutI32(b, 4, -42, order)
		PutU64(b, 8, 1<<40|7, order)
		PutF32(b, 16, 1.5, order)
		PutF64(b, 20, -0.25, order)

		if got := ReadU32(b, 0, order); got != 0xDEADBEEF {
			t.Fatalf("%v: ReadU32 = 0x%x", order, got)
		}
		if got := ReadI32(b, 4, order); got != -42 {
			t.Fatalf("%v: ReadI32 = %d", order, got)
		}
		if got := ReadU64(b, 8, order); got != 1<<40|7 {
			t.Fatalf("%v: ReadU64 = %d", order, got)
		}
		if got := ReadF32(b, 16, order); got != 1.5 {
			t.Fatalf("%v: ReadF32 = %v", order, got)
		}
		if got := ReadF64(b, 20, order); got != -0.25 {
			t.Fatalf("%v: ReadF64 = %v", order, got)
		}
	}

	// Reads running off the end yield 0 instead of panicking.
	b := []byte{1, 2, 3, 4, 5, 6}
	if ReadU32(b, 4, binary.LittleEndian) != 0 || ReadU64(b, 0, binary.LittleEndian) != 0 {
		t.Fatalf("short reads should return 0")
	}
}
