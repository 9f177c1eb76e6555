package listmode

import (
	"encoding/binary"
	"fmt"

	"github.com/nmtools/rdfkit/internal/buf"
)

// RDF8 records are built from 16-bit words. Word 0 always starts with
// soem:3 coinc:1 (LSB first).
//
//	coincidence  w0: soem:3 coinc:1 nomCoinc:1 prompt:1 deltaTime:10
//	             w1: hiAxial:6 hiTrans:10
//	             w2: loAxial:6 loTrans:10
//	time marker  w0: soem:3 coinc:1 eventType:4 timeMarkMS:8
//	             w1: timeMarkMid:16
//	             w2: timeMarkLS:8 unused:4 eoem:4
//
// Non-coincidence records with an eventType other than the time marker are
// 16-byte extended records.
const (
	rdf8ShortSize    = 6
	rdf8ExtendedSize = 16

	rdf8SOEM = 0x5
	rdf8EOEM = 0xA

	rdf8TimeMarkerType = 0x0

	minTOFBin = -512
	maxTOFBin = 511

	maxRDF8Axial = 1<<6 - 1
	maxRDF8Trans = 1<<10 - 1
	maxRDF8Time  = 1<<32 - 1
)

var rdf8ExtendedTypes = map[uint16]string{
	0x2: "coincidence with energy",
	0x4: "physiological trigger 1",
	0x5: "physiological trigger 2",
	0x6: "physiological trigger 3",
	0x8: "frame sync",
	0xE: "end of list",
	0xF: "raw detector",
}

type rdf8Codec struct {
	order        binary.ByteOrder
	tofBinSizePs float64
}

func (c *rdf8Codec) Generation() Generation { return GenerationRDF8 }
func (c *rdf8Codec) MinSize() int           { return rdf8ShortSize }

func (c *rdf8Codec) RecordSize(peek []byte) int {
	w0 := c.word(peek)
	if isCoinc(w0) || eventType(w0) == rdf8TimeMarkerType {
		return rdf8ShortSize
	}
	return rdf8ExtendedSize
}

func (c *rdf8Codec) Decode(b []byte) (Record, error) {
	if len(b) < rdf8ShortSize {
		return Record{}, &RecordError{Size: len(b), Reason: "bad record length"}
	}
	w0, w1, w2 := c.word(b), c.word(b[2:]), c.word(b[4:])
	switch {
	case isCoinc(w0):
		if (w0>>4)&1 == 0 {
			return Record{}, &RecordError{Size: rdf8ShortSize, Reason: "calibration coincidence"}
		}
		bin := tofBin(w0)
		return Record{
			Kind: KindEvent,
			Size: rdf8ShortSize,
			Event: Event{
				Pos1:        Crystal{Axial: w2 & 0x3F, Transaxial: w2 >> 6},
				Pos2:        Crystal{Axial: w1 & 0x3F, Transaxial: w1 >> 6},
				Prompt:      (w0>>5)&1 == 1,
				TOFBin:      bin,
				DeltaTimePs: float64(bin) * c.tofBinSizePs,
			},
		}, nil
	case eventType(w0) == rdf8TimeMarkerType:
		t := uint64(w0>>8)<<24 | uint64(w1)<<8 | uint64(w2&0xFF)
		return Record{Kind: KindTimeMarker, Size: rdf8ShortSize, TimeMs: t}, nil
	default:
		reason, ok := rdf8ExtendedTypes[eventType(w0)]
		if !ok {
			reason = fmt.Sprintf("event type %#x", eventType(w0))
		}
		return Record{}, &RecordError{Size: len(b), Reason: reason}
	}
}

// word reads one 16-bit word, swapping a big-endian file into host order.
func (c *rdf8Codec) word(b []byte) uint16 {
	w := [2]byte{b[0], b[1]}
	if buf.IsBigEndian(c.order) {
		buf.SwapWords(w[:], 2)
	}
	return buf.U16(w[:], binary.LittleEndian)
}

func isCoinc(w0 uint16) bool     { return (w0>>3)&1 == 1 }
func eventType(w0 uint16) uint16 { return (w0 >> 4) & 0xF }

// tofBin sign-extends the 10-bit deltaTime field.
func tofBin(w0 uint16) int16 {
	return int16(w0) >> 6
}

func (c *rdf8Codec) Append(dst []byte, r Record) ([]byte, error) {
	var w0, w1, w2 uint16
	switch r.Kind {
	case KindEvent:
		e := r.Event
		if e.TOFBin < minTOFBin || e.TOFBin > maxTOFBin {
			return dst, fmt.Errorf("listmode: TOF bin %d out of range", e.TOFBin)
		}
		if e.Pos1.Axial > maxRDF8Axial || e.Pos2.Axial > maxRDF8Axial ||
			e.Pos1.Transaxial > maxRDF8Trans || e.Pos2.Transaxial > maxRDF8Trans {
			return dst, fmt.Errorf("listmode: crystal out of range for rdf8 event: %v", r)
		}
		w0 = rdf8SOEM | 1<<3 | 1<<4 | uint16(e.TOFBin)<<6
		if e.Prompt {
			w0 |= 1 << 5
		}
		w1 = e.Pos2.Axial | e.Pos2.Transaxial<<6
		w2 = e.Pos1.Axial | e.Pos1.Transaxial<<6
	case KindTimeMarker:
		if r.TimeMs > maxRDF8Time {
			return dst, fmt.Errorf("listmode: time %d exceeds 32 bits", r.TimeMs)
		}
		w0 = rdf8SOEM | rdf8TimeMarkerType<<4 | uint16(r.TimeMs>>24)<<8
		w1 = uint16(r.TimeMs >> 8)
		w2 = uint16(r.TimeMs&0xFF) | rdf8EOEM<<12
	default:
		return dst, fmt.Errorf("listmode: cannot encode %s record as rdf8", r.Kind)
	}
	for _, w := range [...]uint16{w0, w1, w2} {
		dst = appendU16(dst, c.order, w)
	}
	return dst, nil
}
