package rdf

import (
	"fmt"

	"github.com/nmtools/rdfkit/internal/format"
)

// AcqStats holds the end-of-acquisition counters. Prompt, delay and
// sorter-filtered counts are stored as two 32-bit halves and are returned
// combined.
type AcqStats struct {
	view
}

// ReadAcqStats decodes the acquisition statistics sub-record.
func (f *File) ReadAcqStats() (*AcqStats, error) {
	rec, _, err := f.readRecord(format.SlotAcqStats, f.layouts.AcqStats)
	if err != nil {
		return nil, fmt.Errorf("acq-stats: %w", err)
	}
	s := &AcqStats{view{rec: rec}}
	s.dict = s.buildDictionary()
	return s, nil
}

func combine(ms, ls uint32) uint64 { return uint64(ms)<<32 | uint64(ls) }

func (s *AcqStats) TermCondition() uint32 { return s.rec.U32(format.StatsTermCondition) }

func (s *AcqStats) TotalPrompts() uint64 {
	return combine(s.rec.U32(format.StatsTotalPromptsMS), s.rec.U32(format.StatsTotalPrompts))
}

func (s *AcqStats) TotalDelays() uint64 {
	return combine(s.rec.U32(format.StatsTotalDelaysMS), s.rec.U32(format.StatsTotalDelays))
}

func (s *AcqStats) SorterFilteredEvents() uint64 {
	return combine(s.rec.U32(format.StatsSorterFilteredMS), s.rec.U32(format.StatsSorterFilteredLS))
}

func (s *AcqStats) ScanStartTime() uint32  { return s.rec.U32(format.StatsScanStartTime) }
func (s *AcqStats) FrameStartTime() uint32 { return s.rec.U32(format.StatsFrameStartTime) }
func (s *AcqStats) FrameDuration() uint32  { return s.rec.U32(format.StatsFrameDuration) }
func (s *AcqStats) FrameID() string        { return s.rec.Text(format.StatsFrameID) }
func (s *AcqStats) FrameNumber() uint32    { return s.rec.U32(format.StatsFrameNumber) }
func (s *AcqStats) BinNumber() uint32      { return s.rec.U32(format.StatsBinNumber) }

// AccumBinDuration returns the accumulated duration of each gating bin.
func (s *AcqStats) AccumBinDuration() []uint32 { return s.rec.U32s(format.StatsAccumBinDuration) }

func (s *AcqStats) buildDictionary() *Dictionary {
	d := newDictionary()
	d.uint("TERM_CONDITION", uint64(s.TermCondition()))
	d.uint("TOTAL_PROMPTS", s.TotalPrompts())
	d.uint("TOTAL_DELAYS", s.TotalDelays())
	d.uint("ACCEPTED_TRIGGERS", uint64(s.rec.U32(format.StatsAcceptedTriggers)))
	d.uint("REJECTED_TRIGGERS", uint64(s.rec.U32(format.StatsRejectedTriggers)))
	d.uint("SCAN_START_TIME", uint64(s.ScanStartTime()))
	d.uint("FRAME_START_TIME", uint64(s.FrameStartTime()))
	d.uint("FRAME_DURATION", uint64(s.FrameDuration()))
	d.text("FRAME_ID", s.FrameID())
	d.uint("FRAME_NUMBER", uint64(s.FrameNumber()))
	d.uint("BIN_NUMBER", uint64(s.BinNumber()))
	d.uint("SORTER_FILTERED_EVENTS", s.SorterFilteredEvents())
	d.uint("BAD_COINC_STREAM_EVENTS", uint64(s.rec.U32(format.StatsBadCoincStreamEvts)))
	if s.rec.Has(format.StatsReadyToScanUTC) {
		d.uint("FRAME_START_COINC_TIMESTAMP", uint64(s.rec.U32(format.StatsFrameStartCoincTStamp)))
		d.uint("READY_TO_SCAN_UTC", uint64(s.rec.U32(format.StatsReadyToScanUTC)))
	}
	return d
}
