package format

import (
	"encoding/binary"
	"fmt"

	"github.com/nmtools/rdfkit/internal/buf"
)

// OffsetTable is the fixed prefix of every RDF file: the byte-order marker
// followed by absolute offsets of each sub-record. See OffsetTableSize for
// the diagram.
type OffsetTable struct {
	Order   binary.ByteOrder
	Offsets [NumOffsets]uint32
}

// Offset returns the absolute file offset of the sub-record in slot s.
func (t OffsetTable) Offset(s Slot) int64 {
	if s < 0 || int(s) >= NumOffsets {
		return 0
	}
	return int64(t.Offsets[s])
}

// DetectOrder inspects the first four bytes of b and reports the byte order
// the file was written in. The marker is read little-endian first; if that
// fails the swapped reading is tried once.
func DetectOrder(b []byte) (binary.ByteOrder, error) {
	if len(b) < MarkerSize {
		return nil, fmt.Errorf("marker: %w", ErrTruncated)
	}
	switch buf.U32LE(b) {
	case Marker:
		return binary.LittleEndian, nil
	case MarkerSwapped:
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("marker 0x%08x: %w", buf.U32LE(b), ErrInvalidFormat)
	}
}

// ParseOffsetTable validates the marker and decodes the offset table.
func ParseOffsetTable(b []byte) (OffsetTable, error) {
	order, err := DetectOrder(b)
	if err != nil {
		return OffsetTable{}, err
	}
	if len(b) < OffsetTableSize {
		return OffsetTable{}, fmt.Errorf("offset table: %w", ErrTruncated)
	}
	t := OffsetTable{Order: order}
	for i := range t.Offsets {
		t.Offsets[i] = buf.U32(b[MarkerSize+4*i:], order)
	}
	return t, nil
}

// PutOffsetTable encodes t into b, which must hold OffsetTableSize bytes.
func PutOffsetTable(b []byte, t OffsetTable) {
	PutU32(b, 0, Marker, t.Order)
	for i, off := range t.Offsets {
		PutU32(b, MarkerSize+4*i, off, t.Order)
	}
}
