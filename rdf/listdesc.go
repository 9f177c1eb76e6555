package rdf

import (
	"fmt"

	"github.com/nmtools/rdfkit/internal/format"
)

// ListDescriptor locates the listmode payload and records whether it is
// compressed.
type ListDescriptor struct {
	view
}

// ReadListDescriptor decodes the list-file header.
func (f *File) ReadListDescriptor() (*ListDescriptor, error) {
	rec, _, err := f.readRecord(format.SlotListHeader, f.layouts.List)
	if err != nil {
		return nil, fmt.Errorf("list-header: %w", err)
	}
	l := &ListDescriptor{view{rec: rec}}
	l.dict = l.buildDictionary()
	return l, nil
}

func (l *ListDescriptor) ListType() uint32            { return l.rec.U32(format.ListType) }
func (l *ListDescriptor) AcqTime() uint32             { return l.rec.U32(format.ListAcqTime) }
func (l *ListDescriptor) StartOffset() int64          { return int64(l.rec.U32(format.ListStartOffset)) }
func (l *ListDescriptor) IsCompressed() bool          { return l.rec.U32(format.ListIsCompressed) != 0 }
func (l *ListDescriptor) CompressionAlg() uint32      { return l.rec.U32(format.ListCompressionAlg) }
func (l *ListDescriptor) SizeOfList() uint64          { return l.rec.U64(format.ListSizeOfList) }
func (l *ListDescriptor) FirstTmAbsTimeStamp() uint32 { return l.rec.U32(format.ListFirstTmAbsTimeStamp) }
func (l *ListDescriptor) LastTmAbsTimeStamp() uint32  { return l.rec.U32(format.ListLastTmAbsTimeStamp) }

func (l *ListDescriptor) buildDictionary() *Dictionary {
	d := newDictionary()
	d.uint("LIST_TYPE", uint64(l.ListType()))
	d.uint("LIST_ACQ_TIME", uint64(l.AcqTime()))
	d.uint("LIST_START_OFFSET", uint64(l.StartOffset()))
	d.uint("IS_LIST_COMPRESSED", uint64(l.rec.U32(format.ListIsCompressed)))
	d.uint("LIST_COMPRESSION_ALG", uint64(l.CompressionAlg()))
	d.uint("SIZE_OF_LIST", l.SizeOfList())
	if l.rec.Has(format.ListFirstTmAbsTimeStamp) {
		d.uint("ARE_EVT_TIME_STAMPS_KNOWN", uint64(l.rec.U32(format.ListAreEvtTimeStampsKnown)))
		d.uint("FIRST_TM_ABS_TIME_STAMP", uint64(l.FirstTmAbsTimeStamp()))
		d.uint("LAST_TM_ABS_TIME_STAMP", uint64(l.LastTmAbsTimeStamp()))
		d.uint("SIZE_OF_COMPRESSED_LIST", l.rec.U64(format.ListSizeOfCompressedList))
	}
	return d
}
