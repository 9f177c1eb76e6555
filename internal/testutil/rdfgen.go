// Package testutil builds synthetic RDF files for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/nmtools/rdfkit/internal/format"
)

// Builder assembles an RDF file in memory. The zero value is not usable;
// start from NewBuilder.
type Builder struct {
	Order  binary.ByteOrder
	Schema format.Schema
	Major  uint32
	Minor  uint32

	// ExamText and ExamU32 set exam fields by format.Exam* id.
	ExamText map[int]string
	ExamU32  map[int]uint32
	ExamF32  map[int]float32

	// Payload is the listmode byte stream, already in file order.
	Payload []byte
	// Compressed marks the list as compressed in the list descriptor.
	Compressed bool
	// SizeOfList overrides the recorded list size; -1 means len(Payload).
	SizeOfList int64
	// OmitList writes a zero list-header offset.
	OmitList bool
	// TruncateAt cuts the final file to this many bytes when positive.
	TruncateAt int

	// Offsets are filled in by Bytes.
	Offsets format.OffsetTable
	// ListStart is the absolute offset of the payload, filled in by Bytes.
	ListStart int64
}

// NewBuilder returns a little-endian builder for schema with a minimal,
// plausible exam.
func NewBuilder(schema format.Schema) *Builder {
	return &Builder{
		Order:  binary.LittleEndian,
		Schema: schema,
		Major:  uint32(schema),
		Minor:  1,
		ExamText: map[int]string{
			format.ExamPatientID:        "PID12345",
			format.ExamPatientName:      "DOE^JANE",
			format.ExamPatientBirthdate: "19700102000000.00",
			format.ExamHospitalName:     "General Hospital",
			format.ExamScannerDesc:      "DISCOVERY MI",
			format.ExamRefPhysician:     "DR^WHO",
			format.ExamDiagnostician:    "DR^HOUSE",
			format.ExamOperator:         "OPR",
			format.ExamModality:         "PT",
			format.ExamManufacturer:     "GE MEDICAL SYSTEMS",
			format.ExamScanDescription:  "WB FDG",
			format.ExamTracerName:       "FDG",
			format.ExamMeasDateTime:     "20190315123045.00",
			format.ExamRadionuclideName: "F-18",
			format.ExamScanIDDicom:      "1.2.840.113619.2.55.3",
			format.ExamExamIDDicom:      "1.2.840.113619.2.55.4",
			format.ExamPatientIDDicom:   "PDICOM1",
			format.ExamSoftwareVersion:  "pet_mi_4.0",
		},
		ExamU32: map[int]uint32{
			format.ExamPatientSex: 2,
		},
		ExamF32: map[int]float32{
			format.ExamTracerActivity: 370.5,
			format.ExamHalfLife:       6586.2,
		},
		SizeOfList: -1,
	}
}

func align8(n int) int { return (n + 7) &^ 7 }

// Bytes renders the file. Sub-records are laid out back to back after the
// offset table on 8-byte boundaries, followed by the listmode payload.
func (b *Builder) Bytes() []byte {
	layouts, err := format.LayoutsFor(b.Schema)
	if err != nil {
		// Unknown schemas still get a file so version handling can be tested.
		layouts, _ = format.LayoutsFor(format.SchemaV8)
	}

	type block struct {
		slot format.Slot
		size int
	}
	blocks := []block{
		{format.SlotConfig, layouts.Config.Size},
		{format.SlotSorter, layouts.SorterSize()},
		{format.SlotAcqParams, layouts.AcqParams.Size},
		{format.SlotExam, layouts.Exam.Size},
		{format.SlotAcqStats, layouts.AcqStats.Size},
		{format.SlotSystemGeo, layouts.SystemGeo.Size},
		{format.SlotListHeader, layouts.List.Size},
	}

	b.Offsets = format.OffsetTable{Order: b.Order}
	off := align8(format.OffsetTableSize)
	for _, blk := range blocks {
		if blk.slot == format.SlotListHeader && b.OmitList {
			continue
		}
		b.Offsets.Offsets[blk.slot] = uint32(off)
		off = align8(off + blk.size)
	}
	b.ListStart = int64(off)
	out := make([]byte, off+len(b.Payload))
	format.PutOffsetTable(out, b.Offsets)
	copy(out[off:], b.Payload)

	rec := func(slot format.Slot, l *format.Layout) format.Record {
		start := int(b.Offsets.Offset(slot))
		return format.Record{Layout: l, Order: b.Order, Raw: out[start : start+l.Size]}
	}

	cfg := rec(format.SlotConfig, layouts.Config)
	cfg.SetU32(format.ConfigMajorVersion, b.Major)
	cfg.SetU32(format.ConfigMinorVersion, b.Minor)
	cfg.SetU32(format.ConfigRDFComplete, 1)
	cfg.SetU32(format.ConfigDeadTimeVersion, 3)
	cfg.SetU32(format.ConfigSinglesVersion, 2)
	cfg.SetU32(format.ConfigIsListFile, 1)
	cfg.SetU64(format.ConfigFileSizeInBytes, uint64(len(out)))

	exam := rec(format.SlotExam, layouts.Exam)
	for id, v := range b.ExamText {
		if err := exam.SetText(id, v); err != nil {
			panic(err)
		}
	}
	for id, v := range b.ExamU32 {
		exam.SetU32(id, v)
	}
	for id, v := range b.ExamF32 {
		exam.SetF32(id, v)
	}

	acq := rec(format.SlotAcqParams, layouts.AcqParams)
	_ = acq.SetText(format.AcqLandmarkName, "OM")
	acq.SetU32(format.AcqScanType, 1)
	acq.SetU32(format.AcqLowerEnergyLimit, 425)
	acq.SetU32(format.AcqUpperEnergyLimit, 650)
	acq.SetU32(format.AcqCoincTimingWindow, 5)
	acq.SetU32(format.AcqDuration, 120)
	acq.SetU32(format.AcqNumberOfBins, 1)
	acq.SetF32(format.AcqTableLocation, 812.5)
	if acq.Has(format.AcqTOFUsed) {
		acq.SetU32(format.AcqTOFUsed, 1)
	}

	stats := rec(format.SlotAcqStats, layouts.AcqStats)
	stats.SetU32(format.StatsTotalPrompts, 1000)
	stats.SetU32(format.StatsTotalDelays, 100)
	stats.SetU32(format.StatsTotalPromptsMS, 2)
	stats.SetU32(format.StatsSorterFilteredLS, 7)
	stats.SetU32(format.StatsSorterFilteredMS, 1)
	stats.SetU32(format.StatsFrameDuration, 120000)
	stats.SetU32(format.StatsFrameNumber, 1)
	_ = stats.SetText(format.StatsFrameID, "FRAME-1")

	geo := rec(format.SlotSystemGeo, layouts.SystemGeo)
	geo.SetU32(format.GeoRadialModulesPerSystem, 34)
	geo.SetU32(format.GeoAxialCrystalsPerBlock, 9)
	geo.SetF32(format.GeoEffectiveRingDiameter, 744.1)
	geo.SetU32(format.GeoTimingResolutionPs, 385)
	geo.SetI32(format.GeoNumCoincAsics, 4)

	sorterStart := int(b.Offsets.Offset(format.SlotSorter))
	sorter := format.Record{Layout: layouts.Sorter, Order: b.Order, Raw: out[sorterStart : sorterStart+layouts.Sorter.Size]}
	sorter.SetU32(format.SorterDimension1Size, 357)
	sorter.SetU32(format.SorterDimension2Size, 224)
	sorter.SetU32(format.SorterNumberOfAcquisitions, 1)
	segStart := sorterStart + layouts.Sorter.Size + 2*layouts.Segment.Size
	seg := format.Record{Layout: layouts.Segment, Order: b.Order, Raw: out[segStart : segStart+layouts.Segment.Size]}
	seg.SetU32(format.SegType, 2)
	seg.SetU64(format.SegDataOffset, 1<<20)

	if !b.OmitList {
		list := rec(format.SlotListHeader, layouts.List)
		list.SetU32(format.ListType, 1)
		list.SetU32(format.ListStartOffset, uint32(b.ListStart))
		list.SetU32(format.ListAcqTime, 120)
		if b.Compressed {
			list.SetU32(format.ListIsCompressed, 1)
			list.SetU32(format.ListCompressionAlg, 1)
		}
		size := b.SizeOfList
		if size < 0 {
			size = int64(len(b.Payload))
		}
		list.SetU64(format.ListSizeOfList, uint64(size))
		if list.Has(format.ListFirstTmAbsTimeStamp) {
			list.SetU32(format.ListAreEvtTimeStampsKnown, 1)
			list.SetU32(format.ListFirstTmAbsTimeStamp, 10)
			list.SetU32(format.ListLastTmAbsTimeStamp, 120010)
		}
	}

	if b.TruncateAt > 0 && b.TruncateAt < len(out) {
		out = out[:b.TruncateAt]
	}
	return out
}

// WriteFile renders the builder into a fresh temp dir and returns the path.
func (b *Builder) WriteFile(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
