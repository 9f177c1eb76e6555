package rdf

import (
	"fmt"

	"github.com/nmtools/rdfkit/internal/format"
)

// SystemGeo describes the scanner: detector module, block and crystal
// counts, gaps, pitches and dead-time model constants.
type SystemGeo struct {
	view
}

// ReadSystemGeo decodes the system geometry sub-record.
func (f *File) ReadSystemGeo() (*SystemGeo, error) {
	rec, _, err := f.readRecord(format.SlotSystemGeo, f.layouts.SystemGeo)
	if err != nil {
		return nil, fmt.Errorf("system-geometry: %w", err)
	}
	g := &SystemGeo{view{rec: rec}}
	g.dict = g.buildDictionary()
	return g, nil
}

func (g *SystemGeo) RadialModulesPerSystem() uint32 { return g.rec.U32(format.GeoRadialModulesPerSystem) }
func (g *SystemGeo) RadialBlocksPerModule() uint32  { return g.rec.U32(format.GeoRadialBlocksPerModule) }
func (g *SystemGeo) RadialCrystalsPerBlock() uint32 { return g.rec.U32(format.GeoRadialCrystalsPerBlock) }
func (g *SystemGeo) AxialModulesPerSystem() uint32  { return g.rec.U32(format.GeoAxialModulesPerSystem) }
func (g *SystemGeo) AxialBlocksPerModule() uint32   { return g.rec.U32(format.GeoAxialBlocksPerModule) }
func (g *SystemGeo) AxialCrystalsPerBlock() uint32  { return g.rec.U32(format.GeoAxialCrystalsPerBlock) }
func (g *SystemGeo) EffectiveRingDiameter() float32 { return g.rec.F32(format.GeoEffectiveRingDiameter) }
func (g *SystemGeo) TimingResolutionPs() uint32     { return g.rec.U32(format.GeoTimingResolutionPs) }
func (g *SystemGeo) NumCoincAsics() int32           { return g.rec.I32(format.GeoNumCoincAsics) }

// CrystalPileUpFactors returns the per-crystal 3D pile-up factors; the
// length depends on the schema.
func (g *SystemGeo) CrystalPileUpFactors() []float32 {
	return g.rec.F32s(format.GeoDT3DCrystalPileUpFactors)
}

func (g *SystemGeo) buildDictionary() *Dictionary {
	d := newDictionary()
	d.uint("RADIAL_MODULES_PER_SYSTEM", uint64(g.RadialModulesPerSystem()))
	d.uint("RADIAL_BLOCKS_PER_MODULE", uint64(g.RadialBlocksPerModule()))
	d.uint("RADIAL_CRYSTALS_PER_BLOCK", uint64(g.RadialCrystalsPerBlock()))
	d.uint("AXIAL_MODULES_PER_SYSTEM", uint64(g.AxialModulesPerSystem()))
	d.uint("AXIAL_BLOCKS_PER_MODULE", uint64(g.AxialBlocksPerModule()))
	d.uint("AXIAL_CRYSTALS_PER_BLOCK", uint64(g.AxialCrystalsPerBlock()))
	d.float("DETECTOR_RADIAL_SIZE", float64(g.rec.F32(format.GeoDetectorRadialSize)))
	d.float("DETECTOR_AXIAL_SIZE", float64(g.rec.F32(format.GeoDetectorAxialSize)))
	d.float("EFFECTIVE_RING_DIAMETER", float64(g.EffectiveRingDiameter()))
	d.float("INTER_CRYSTAL_PITCH", float64(g.rec.F32(format.GeoInterCrystalPitch)))
	d.float("INTER_BLOCK_PITCH", float64(g.rec.F32(format.GeoInterBlockPitch)))
	d.uint("TIMING_RESOLUTION_PS", uint64(g.TimingResolutionPs()))
	if n := g.NumCoincAsics(); n >= 0 {
		d.uint("NUM_COINC_ASICS", uint64(n))
	}
	d.uint("SCANNER_FIRST_SLICE", uint64(g.rec.U32(format.GeoScannerFirstSlice)))
	d.uint("COLLIMATOR_TYPE", uint64(g.rec.U32(format.GeoCollimatorType)))
	return d
}
