package listmode

import (
	"encoding/binary"
	"fmt"

	"github.com/nmtools/rdfkit/internal/buf"
)

// Dimension records are built from 32-bit words. The most significant bit of
// the first word tags the record: clear for a 4-byte coincidence event, set
// for an 8-byte time or gating record.
//
//	event   ring2:5 det2:10 prompt:1 ring1:5 det1:10 tag:1   (LSB first)
//	time    value:24 reserved:5 sig:3   (sig 4 then 6)
//	gating  value:24 gating:3 sig:5     (sig 21 then 29)
const (
	dimEventSize = 4
	dimWideSize  = 8

	dimTagBit = 1 << 31

	dimTimeSig0   = 4
	dimTimeSig1   = 6
	dimGatingSig0 = 21
	dimGatingSig1 = 29

	dimValueMask = 0xFFFFFF
	maxDimRing   = 1<<5 - 1
	maxDimDet    = 1<<10 - 1
	maxDimGating = 1<<3 - 1
	maxDimTime   = 1<<48 - 1
)

type dimensionCodec struct {
	order binary.ByteOrder
}

func (c *dimensionCodec) Generation() Generation { return GenerationDimension }
func (c *dimensionCodec) MinSize() int           { return dimEventSize }

// RecordSize inspects the tag bit where it lands in file order: the first
// byte of a big-endian word, the last byte of a little-endian one.
func (c *dimensionCodec) RecordSize(peek []byte) int {
	tag := peek[3]
	if buf.IsBigEndian(c.order) {
		tag = peek[0]
	}
	if tag&0x80 == 0 {
		return dimEventSize
	}
	return dimWideSize
}

func (c *dimensionCodec) Decode(b []byte) (Record, error) {
	var words [2]uint32
	n := len(b) / 4
	for i := 0; i < n && i < len(words); i++ {
		words[i] = c.word(b[i*4:])
	}
	if n == 1 {
		if words[0]&dimTagBit != 0 {
			return Record{}, &RecordError{Size: len(b), Reason: "wide tag on a 4-byte record"}
		}
		return Record{Kind: KindEvent, Size: dimEventSize, Event: dimEvent(words[0])}, nil
	}
	if n != 2 {
		return Record{}, &RecordError{Size: len(b), Reason: "bad record length"}
	}
	w0, w1 := words[0], words[1]
	switch {
	case w0>>29 == dimTimeSig0 && w1>>29 == dimTimeSig1:
		t := uint64(w1&dimValueMask)<<24 | uint64(w0&dimValueMask)
		return Record{Kind: KindTimeMarker, Size: dimWideSize, TimeMs: t}, nil
	case w0>>27 == dimGatingSig0 && w1>>27 == dimGatingSig1:
		return Record{Kind: KindGating, Size: dimWideSize, Gating: uint8((w0 >> 24) & maxDimGating)}, nil
	default:
		return Record{}, &RecordError{Size: dimWideSize, Reason: fmt.Sprintf("signature %#08x %#08x", w0, w1)}
	}
}

// word reads one 32-bit word, swapping a big-endian file into host order.
func (c *dimensionCodec) word(b []byte) uint32 {
	var w [4]byte
	copy(w[:], b)
	if buf.IsBigEndian(c.order) {
		buf.SwapWords(w[:], 4)
	}
	return buf.U32LE(w[:])
}

func dimEvent(w uint32) Event {
	return Event{
		Pos2: Crystal{
			Axial:      uint16(w & 0x1F),
			Transaxial: uint16((w >> 5) & 0x3FF),
		},
		Prompt: (w>>15)&1 == 1,
		Pos1: Crystal{
			Axial:      uint16((w >> 16) & 0x1F),
			Transaxial: uint16((w >> 21) & 0x3FF),
		},
	}
}

func (c *dimensionCodec) Append(dst []byte, r Record) ([]byte, error) {
	switch r.Kind {
	case KindEvent:
		e := r.Event
		if e.Pos1.Axial > maxDimRing || e.Pos2.Axial > maxDimRing ||
			e.Pos1.Transaxial > maxDimDet || e.Pos2.Transaxial > maxDimDet {
			return dst, fmt.Errorf("listmode: crystal out of range for dimension event: %v", r)
		}
		if e.TOFBin != 0 {
			return dst, fmt.Errorf("listmode: dimension events carry no TOF bin")
		}
		w := uint32(e.Pos2.Axial) | uint32(e.Pos2.Transaxial)<<5 |
			uint32(e.Pos1.Axial)<<16 | uint32(e.Pos1.Transaxial)<<21
		if e.Prompt {
			w |= 1 << 15
		}
		return appendU32(dst, c.order, w), nil
	case KindTimeMarker:
		if r.TimeMs > maxDimTime {
			return dst, fmt.Errorf("listmode: time %d exceeds 48 bits", r.TimeMs)
		}
		w0 := uint32(dimTimeSig0)<<29 | uint32(r.TimeMs&dimValueMask)
		w1 := uint32(dimTimeSig1)<<29 | uint32((r.TimeMs>>24)&dimValueMask)
		return appendU32(appendU32(dst, c.order, w0), c.order, w1), nil
	case KindGating:
		if r.Gating > maxDimGating {
			return dst, fmt.Errorf("listmode: gating %d exceeds 3 bits", r.Gating)
		}
		w0 := uint32(dimGatingSig0)<<27 | uint32(r.Gating)<<24
		w1 := uint32(dimGatingSig1) << 27
		return appendU32(appendU32(dst, c.order, w0), c.order, w1), nil
	default:
		return dst, fmt.Errorf("listmode: cannot encode %s record", r.Kind)
	}
}
