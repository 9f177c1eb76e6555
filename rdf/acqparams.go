package rdf

import (
	"fmt"

	"github.com/nmtools/rdfkit/internal/format"
)

// AcqParams holds the acquisition set-up: landmark, scan type, energy
// window, timing window and duration.
type AcqParams struct {
	view
}

// ReadAcqParams decodes the acquisition parameter sub-record.
func (f *File) ReadAcqParams() (*AcqParams, error) {
	rec, _, err := f.readRecord(format.SlotAcqParams, f.layouts.AcqParams)
	if err != nil {
		return nil, fmt.Errorf("acq-params: %w", err)
	}
	a := &AcqParams{view{rec: rec}}
	a.dict = a.buildDictionary()
	return a, nil
}

func (a *AcqParams) LandmarkName() string      { return a.rec.Text(format.AcqLandmarkName) }
func (a *AcqParams) LandmarkAbbrev() string    { return a.rec.Text(format.AcqLandmarkAbbrev) }
func (a *AcqParams) ScanType() uint32          { return a.rec.U32(format.AcqScanType) }
func (a *AcqParams) ScanMode() uint32          { return a.rec.U32(format.AcqScanMode) }
func (a *AcqParams) TableLocation() float32    { return a.rec.F32(format.AcqTableLocation) }
func (a *AcqParams) LowerEnergyLimit() uint32  { return a.rec.U32(format.AcqLowerEnergyLimit) }
func (a *AcqParams) UpperEnergyLimit() uint32  { return a.rec.U32(format.AcqUpperEnergyLimit) }
func (a *AcqParams) CoincTimingWindow() uint32 { return a.rec.U32(format.AcqCoincTimingWindow) }
func (a *AcqParams) Duration() uint32          { return a.rec.U32(format.AcqDuration) }
func (a *AcqParams) NumberOfBins() uint32      { return a.rec.U32(format.AcqNumberOfBins) }

// TOFUsed reports whether time-of-flight was enabled. Older files do not
// record it and report false.
func (a *AcqParams) TOFUsed() bool { return a.rec.U32(format.AcqTOFUsed) != 0 }

func (a *AcqParams) buildDictionary() *Dictionary {
	d := newDictionary()
	d.text("LANDMARK_NAME", a.LandmarkName())
	d.text("LANDMARK_ABBREV", a.LandmarkAbbrev())
	d.uint("SCAN_TYPE", uint64(a.ScanType()))
	d.uint("SCAN_MODE", uint64(a.ScanMode()))
	d.uint("AXIAL_ACCEPTANCE", uint64(a.rec.U32(format.AcqAxialAcceptance)))
	d.uint("COLLIMATION", uint64(a.rec.U32(format.AcqCollimation)))
	d.uint("SLICE_COUNT", uint64(a.rec.U32(format.AcqSliceCount)))
	d.float("TABLE_LOCATION", float64(a.TableLocation()))
	d.float("TABLE_HEIGHT", float64(a.rec.F32(format.AcqTableHeight)))
	d.uint("LOWER_ENERGY_LIMIT", uint64(a.LowerEnergyLimit()))
	d.uint("UPPER_ENERGY_LIMIT", uint64(a.UpperEnergyLimit()))
	d.uint("COINC_TIMING_WINDOW", uint64(a.CoincTimingWindow()))
	d.uint("DELAYED_EVENTS_MODE", uint64(a.rec.U32(format.AcqDelayedEventsMode)))
	d.uint("ACQ_DURATION", uint64(a.Duration()))
	d.uint("NUMBER_OF_BINS", uint64(a.NumberOfBins()))
	if a.rec.Has(format.AcqTOFUsed) {
		d.uint("TOF_USED", uint64(a.rec.U32(format.AcqTOFUsed)))
	}
	return d
}
