package rdf

import (
	"fmt"

	"github.com/nmtools/rdfkit/internal/format"
)

// SegmentType identifies the data held by a sorter segment.
type SegmentType uint32

const (
	SegmentTransmissionPrompts SegmentType = 0
	SegmentTransmissionDelays  SegmentType = 1
	SegmentEmissionPrompts     SegmentType = 2
	SegmentEmissionDelays      SegmentType = 3
	SegmentCal                 SegmentType = 4
	SegmentTOFOrientation      SegmentType = 7
)

// Segment is one of the sorter's data segment descriptors.
type Segment struct {
	Index               int
	Type                SegmentType
	Dimension3Size      uint32
	NumScaleFactors     uint32
	ScaleFactorsOffset  uint32
	DataOffset          uint64
	CompDataOffset      uint64
	CompDataSize        uint64
	FirstCvtEntryOffset uint64
	CvtEntries          uint32
	TOFCollapsed        bool
}

// Sorter holds the histogrammer configuration and its segment table.
type Sorter struct {
	view
	segments []Segment
}

// ReadSorter decodes the sorter sub-record including all segments.
func (f *File) ReadSorter() (*Sorter, error) {
	b, _, err := f.readBlock(format.SlotSorter, f.layouts.SorterSize())
	if err != nil {
		return nil, fmt.Errorf("sorter: %w", err)
	}
	rec, err := format.NewRecord(f.layouts.Sorter, f.offsets.Order, b)
	if err != nil {
		return nil, fmt.Errorf("sorter: %w", err)
	}
	s := &Sorter{view: view{rec: rec}}
	segSize := f.layouts.Segment.Size
	for i := 0; i < format.NumSorterSegments; i++ {
		start := f.layouts.Sorter.Size + i*segSize
		seg, err := format.NewRecord(f.layouts.Segment, f.offsets.Order, b[start:start+segSize])
		if err != nil {
			return nil, fmt.Errorf("sorter segment %d: %w", i, err)
		}
		s.segments = append(s.segments, Segment{
			Index:               i,
			Type:                SegmentType(seg.U32(format.SegType)),
			Dimension3Size:      seg.U32(format.SegDimension3Size),
			NumScaleFactors:     seg.U32(format.SegNumScaleFactors),
			ScaleFactorsOffset:  seg.U32(format.SegScaleFactorsOffset),
			DataOffset:          seg.U64(format.SegDataOffset),
			CompDataOffset:      seg.U64(format.SegCompDataOffset),
			CompDataSize:        seg.U64(format.SegCompDataSize),
			FirstCvtEntryOffset: seg.U64(format.SegFirstCvtEntryOffset),
			CvtEntries:          seg.U32(format.SegCvtEntries),
			TOFCollapsed:        seg.U32(format.SegTOFCollapsed) != 0,
		})
	}
	s.dict = s.buildDictionary()
	return s, nil
}

// Segments returns a copy of the segment table.
func (s *Sorter) Segments() []Segment { return append([]Segment(nil), s.segments...) }

func (s *Sorter) Dimension1Size() uint32 { return s.rec.U32(format.SorterDimension1Size) }
func (s *Sorter) Dimension2Size() uint32 { return s.rec.U32(format.SorterDimension2Size) }

func (s *Sorter) buildDictionary() *Dictionary {
	d := newDictionary()
	d.uint("DATA_ORIENTATION", uint64(s.rec.U32(format.SorterDataOrientation)))
	d.uint("DIMENSION1_SIZE", uint64(s.Dimension1Size()))
	d.uint("DIMENSION2_SIZE", uint64(s.Dimension2Size()))
	d.uint("HISTOGRAM_CELL_SIZE", uint64(s.rec.U32(format.SorterHistogramCellSize)))
	d.uint("ACQUISITION_NUMBER", uint64(s.rec.U32(format.SorterAcquisitionNumber)))
	d.uint("NUMBER_OF_ACQUISITIONS", uint64(s.rec.U32(format.SorterNumberOfAcquisitions)))
	var active uint64
	for _, seg := range s.segments {
		if seg.DataOffset != 0 {
			active++
		}
	}
	d.uint("ACTIVE_SEGMENTS", active)
	return d
}
