package format

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestLayoutSizes(t *testing.T) {
	v7, err := LayoutsFor(SchemaV7)
	if err != nil {
		t.Fatalf("LayoutsFor(v7): %v", err)
	}
	v8, err := LayoutsFor(SchemaV8)
	if err != nil {
		t.Fatalf("LayoutsFor(v8): %v", err)
	}
	checks := []struct {
		name string
		got  int
		want int
	}{
		{"config", ConfigLayout.Size, 40},
		{"exam v7", v7.Exam.Size, 1576},
		{"exam v8", v8.Exam.Size, 1576},
		{"segment", v8.Segment.Size, 80},
		{"sorter", v8.SorterSize(), 32 + 8*80},
		{"list v7", v7.List.Size, 40},
		{"list v8", v8.List.Size, 96},
		{"acq-stats v7", v7.AcqStats.Size, 408},
		{"acq-stats v8", v8.AcqStats.Size, 416},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s size = %d, want %d", c.name, c.got, c.want)
		}
	}
	if v7.SystemGeo.Size >= v8.SystemGeo.Size {
		t.Fatalf("v8 geometry should be larger: v7=%d v8=%d", v7.SystemGeo.Size, v8.SystemGeo.Size)
	}
	if _, err := LayoutsFor(Schema(9)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestExamOffsets(t *testing.T) {
	l := layoutsV8.Exam
	if l.Field(ExamPatientID).Offset != 0 || l.Field(ExamPatientName).Offset != 24 {
		t.Fatalf("unexpected leading exam offsets")
	}
	if l.Field(ExamPatientSex).Offset != 24+68+28 {
		t.Fatalf("patientSex offset = %d", l.Field(ExamPatientSex).Offset)
	}
	if l.Field(ExamSpares).Offset+36 != l.Size {
		t.Fatalf("spares must close the block")
	}
}

func TestListLayoutGenerations(t *testing.T) {
	if layoutsV7.List.Has(ListFirstTmAbsTimeStamp) || !layoutsV8.List.Has(ListFirstTmAbsTimeStamp) {
		t.Fatalf("first time stamp should only exist in v8")
	}
	if got := layoutsV7.List.Field(ListSizeOfList).Offset; got != 32 {
		t.Fatalf("v7 sizeOfList offset = %d, want 32", got)
	}
	if got := layoutsV8.List.Field(ListSizeOfList).Offset; got != 56 {
		t.Fatalf("v8 sizeOfList offset = %d, want 56", got)
	}
}

func TestRecordAccessors(t *testing.T) {
	raw := make([]byte, ConfigLayout.Size)
	binary.BigEndian.PutUint32(raw[0:], 8)
	binary.BigEndian.PutUint32(raw[4:], 2)
	binary.BigEndian.PutUint64(raw[24:], 1<<33)

	r, err := NewRecord(ConfigLayout, binary.BigEndian, raw)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if r.U32(ConfigMajorVersion) != 8 || r.U32(ConfigMinorVersion) != 2 {
		t.Fatalf("version mismatch")
	}
	if r.U64(ConfigFileSizeInBytes) != 1<<33 {
		t.Fatalf("file size = %d", r.U64(ConfigFileSizeInBytes))
	}
	if r.Format(ConfigSpares) != "[0 0]" {
		t.Fatalf("Format(spares) = %q", r.Format(ConfigSpares))
	}
	if _, err := NewRecord(ConfigLayout, binary.BigEndian, raw[:10]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestRecordSetText(t *testing.T) {
	raw := make([]byte, layoutsV8.Exam.Size)
	r, err := NewRecord(layoutsV8.Exam, binary.LittleEndian, raw)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if err := r.SetText(ExamPatientName, "DOE^JANE"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if r.Text(ExamPatientName) != "DOE^JANE" {
		t.Fatalf("Text = %q", r.Text(ExamPatientName))
	}
	clone := r.Clone()
	if err := clone.SetText(ExamPatientName, "X"); err != nil {
		t.Fatalf("SetText clone: %v", err)
	}
	if r.Text(ExamPatientName) != "DOE^JANE" {
		t.Fatalf("clone must not alias original")
	}
	if err := r.SetText(ExamPatientSex, "M"); err == nil {
		t.Fatalf("expected error setting text on u32 field")
	}
}
