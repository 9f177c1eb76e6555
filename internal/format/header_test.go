package format

import (
	"encoding/binary"
	"errors"
	"testing"
)

func buildTable(order binary.ByteOrder) []byte {
	b := make([]byte, OffsetTableSize)
	t := OffsetTable{Order: order}
	for i := range t.Offsets {
		t.Offsets[i] = uint32(0x100 * (i + 1))
	}
	PutOffsetTable(b, t)
	return b
}

func TestParseOffsetTableBothOrders(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		tbl, err := ParseOffsetTable(buildTable(order))
		if err != nil {
			t.Fatalf("%v: ParseOffsetTable: %v", order, err)
		}
		if tbl.Order != order {
			t.Fatalf("order = %v, want %v", tbl.Order, order)
		}
		if tbl.Offset(SlotConfig) != 0x100 || tbl.Offset(SlotExam) != 0x700 || tbl.Offset(SlotListHeader) != 0xE00 {
			t.Fatalf("%v: offsets mismatch: %+v", order, tbl.Offsets)
		}
	}
}

func TestParseOffsetTableErrors(t *testing.T) {
	b := buildTable(binary.LittleEndian)
	if _, err := ParseOffsetTable(b[:2]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for short marker, got %v", err)
	}
	if _, err := ParseOffsetTable(b[:20]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for short table, got %v", err)
	}
	copy(b, []byte{0xFE, 0xFF, 0xFF, 0xFE})
	if _, err := ParseOffsetTable(b); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestSlotString(t *testing.T) {
	if SlotExam.String() != "exam" || Slot(99).String() != "unknown" {
		t.Fatalf("unexpected slot names")
	}
}
