package format

// Field ids for each sub-record. A layout is a keyed slice literal over these
// ids, so the id order is also the on-disk order.

// Config fields.
const (
	ConfigMajorVersion = iota
	ConfigMinorVersion
	ConfigRDFComplete
	ConfigDeadTimeVersion
	ConfigSinglesVersion
	ConfigIsListFile
	ConfigFileSizeInBytes
	ConfigSpares
	numConfigFields
)

// Exam fields.
const (
	ExamPatientID = iota
	ExamPatientName
	ExamPatientBirthdate
	ExamPatientSex
	ExamExamID
	ExamRequisition
	ExamHospitalName
	ExamScannerDesc
	ExamExamDesc
	ExamRefPhysician
	ExamDiagnostician
	ExamOperator
	ExamPatientHeight
	ExamPatientWeight
	ExamPatientHistory
	ExamModality
	ExamManufacturer
	ExamScanID
	ExamScanDescription
	ExamLandmarkName
	ExamLandmarkAbbrev
	ExamTracerName
	ExamBatchDescription
	ExamTracerActivity
	ExamMeasDateTime
	ExamAdminDateTime
	ExamRadionuclideName
	ExamHalfLife
	ExamSource1Activity
	ExamSource1MeasDateTime
	ExamSource1Radionuclide
	ExamSource1HalfLife
	ExamSource2Activity
	ExamSource2MeasDateTime
	ExamSource2Radionuclide
	ExamSource2HalfLife
	ExamNormalCalID
	ExamBlankCalID
	ExamWCCalID
	ExamPreInjectionVolume
	ExamPostInjectionActivity
	ExamPostInjectionDateTime
	ExamPositronFraction
	ExamScanIDDicom
	ExamExamIDDicom
	ExamNormal2DCalID
	ExamPatientIDDicom
	ExamPatientType
	ExamSoftwareVersion
	ExamIsotopeHasPromptGamma
	ExamSpares
	numExamFields
)

// Acquisition parameter fields.
const (
	AcqLandmarkName = iota
	AcqLandmarkAbbrev
	AcqLandmarkQualifier
	AcqScanType
	AcqScanMode
	AcqAxialAcceptance
	AcqThetaCompression
	AcqCollimation
	AcqSliceCount
	AcqTableLocation
	AcqTableHeight
	AcqLowerEnergyLimit
	AcqUpperEnergyLimit
	AcqCoincTimingWindow
	AcqDelayedEventsMode
	AcqDuration
	AcqNumberOfBins
	AcqTOFUsed
	AcqSpares
	numAcqFields
)

// Acquisition statistics fields.
const (
	StatsTermCondition = iota
	StatsTotalPrompts
	StatsTotalDelays
	StatsAcceptedTriggers
	StatsRejectedTriggers
	StatsScanStartTime
	StatsFrameStartTime
	StatsFrameDuration
	StatsFrameID
	StatsBinNumber
	StatsAccumBinDuration
	StatsTotalPromptsMS
	StatsTotalDelaysMS
	StatsSorterFilteredLS
	StatsSorterFilteredMS
	StatsBadCoincStreamEvts
	StatsFrameNumber
	StatsIsRejectBin
	StatsFrameStartCoincTStamp
	StatsReadyToScanUTC
	StatsSpares
	numStatsFields
)

// System geometry fields.
const (
	GeoRadialModulesPerSystem = iota
	GeoRadialBlocksPerModule
	GeoRadialCrystalsPerBlock
	GeoAxialModulesPerSystem
	GeoAxialBlocksPerModule
	GeoAxialCrystalsPerBlock
	GeoDetectorRadialSize
	GeoDetectorAxialSize
	GeoAxialCrystalGap
	GeoRadialCrystalGap
	GeoAxialBlockGap
	GeoRadialBlockGap
	GeoAxialCassetteGap
	GeoRadialCassetteGap
	GeoSourceRadius
	GeoCollimatorInnerRadius
	GeoCollimatorOuterRadius
	GeoDelaysCorrectionFactor
	GeoEffectiveRingDiameter
	GeoBlockRepeatFactor
	GeoInterCrystalPitch
	GeoInterBlockPitch
	GeoScatterHrParameters
	GeoScatterHsParameters
	GeoDTIntCorrection
	GeoDTMuxCorrection
	GeoDTTimingCorrection
	GeoNumCoincAsics
	GeoDTAsicChipFactors
	GeoDT3DAsicChipFactors
	GeoDT3DIntCorrection
	GeoDT3DMuxCorrection
	GeoDT3DTimingCorrection
	GeoTransaxialCrystal0Offset
	GeoVQCXTranslation
	GeoVQCYTranslation
	GeoVQCZTranslation
	GeoVQCXTilt
	GeoVQCYSwivel
	GeoVQCZRoll
	GeoScannerFirstSlice
	GeoCollimatorType
	GeoTimingResolutionPs
	GeoAvgBlockDeadtime
	GeoAvgCrystalSingles
	GeoSpares
	GeoDTCrossRingFactors
	GeoDT3DPileUpFactors
	GeoDTHrPileUpFactors
	GeoDTHsPileUpFactors
	GeoDT3DCrystalPileUpFactors
	GeoBulkSpares
	numGeoFields
)

// Sorter fields. Segment descriptors follow the fixed part.
const (
	SorterDataOrientation = iota
	SorterDimension1Size
	SorterDimension2Size
	SorterHistogramCellSize
	SorterSinoAlignCorr
	SorterDHMErrorFifoDepth
	SorterAcquisitionNumber
	SorterNumberOfAcquisitions
	numSorterFields
)

// Sorter segment descriptor fields.
const (
	SegType = iota
	SegDimension3Size
	SegNumScaleFactors
	SegScaleFactorsOffset
	SegDataOffset
	SegCompDataOffset
	SegCompDataSize
	SegFirstCvtEntryOffset
	SegCvtEntries
	SegTOFCollapsed
	SegSpares
	numSegFields
)

// List descriptor fields.
const (
	ListType = iota
	ListNumAssocFiles
	ListWhichAssocFile
	ListAcqTime
	ListStartOffset
	ListIsCompressed
	ListCompressionAlg
	ListEvalAsBadCompress
	ListAreEvtTimeStampsKnown
	ListFirstTmAbsTimeStamp
	ListLastTmAbsTimeStamp
	ListSpare
	ListSizeOfCompressedList
	ListSizeOfList
	ListCompAlgCoefs
	numListFields
)

// Per-generation array dimensions of the system geometry block.
type geoDims struct {
	majorRings, minorRings, axialSlices, crystalsPerBlock int
}

var (
	geoDimsV7 = geoDims{majorRings: 4, minorRings: 24, axialSlices: 47, crystalsPerBlock: 54}
	geoDimsV8 = geoDims{majorRings: 6, minorRings: 60, axialSlices: 119, crystalsPerBlock: 120}
)

func configFields() []Field {
	f := make([]Field, numConfigFields)
	f[ConfigMajorVersion] = U32("majorVersion")
	f[ConfigMinorVersion] = U32("minorVersion")
	f[ConfigRDFComplete] = U32("rdfComplete")
	f[ConfigDeadTimeVersion] = U32("deadTimeVersion")
	f[ConfigSinglesVersion] = U32("singlesVersion")
	f[ConfigIsListFile] = U32("isListFile")
	f[ConfigFileSizeInBytes] = U64("fileSizeInBytes")
	f[ConfigSpares] = U32s("spares", 2)
	return f
}

func examFields() []Field {
	return []Field{
		ExamPatientID:             Text("patientID", LenPatientID),
		ExamPatientName:           Text("patientName", LenPatientName),
		ExamPatientBirthdate:      Text("patientBirthdate", LenDateTime),
		ExamPatientSex:            U32("patientSex"),
		ExamExamID:                U32s("examID", CountIDInts),
		ExamRequisition:           Text("requisition", LenRequisition),
		ExamHospitalName:          Text("hospitalName", LenHospitalName),
		ExamScannerDesc:           Text("scannerDesc", LenScannerDesc),
		ExamExamDesc:              Text("examDesc", LenExamDesc),
		ExamRefPhysician:          Text("refPhysician", LenRefPhysician),
		ExamDiagnostician:         Text("diagnostician", LenDiagnostician),
		ExamOperator:              Text("operator", LenOperator),
		ExamPatientHeight:         F32("patientHt"),
		ExamPatientWeight:         F32("patientWt"),
		ExamPatientHistory:        Text("patientHistory", LenPatientHistory),
		ExamModality:              Text("modality", LenModality),
		ExamManufacturer:          Text("manufacturer", LenManufacturer),
		ExamScanID:                U32s("scanID", CountIDInts),
		ExamScanDescription:       Text("scanDescription", LenScanDescription),
		ExamLandmarkName:          Text("landmarkName", LenLandmarkName),
		ExamLandmarkAbbrev:        Text("landmarkAbbrev", LenLandmarkAbbrev),
		ExamTracerName:            Text("tracerName", LenTracerName),
		ExamBatchDescription:      Text("batchDescription", LenBatchDescription),
		ExamTracerActivity:        F32("tracerActivity"),
		ExamMeasDateTime:          Text("measDateTime", LenDateTime),
		ExamAdminDateTime:         Text("adminDateTime", LenDateTime),
		ExamRadionuclideName:      Text("radionuclideName", LenRadionuclide),
		ExamHalfLife:              F32("halfLife"),
		ExamSource1Activity:       F32("source1Activity"),
		ExamSource1MeasDateTime:   Text("source1MeasDateTime", LenDateTime),
		ExamSource1Radionuclide:   Text("source1Radionuclide", LenRadionuclide),
		ExamSource1HalfLife:       F32("source1HalfLife"),
		ExamSource2Activity:       F32("source2Activity"),
		ExamSource2MeasDateTime:   Text("source2MeasDateTime", LenDateTime),
		ExamSource2Radionuclide:   Text("source2Radionuclide", LenRadionuclide),
		ExamSource2HalfLife:       F32("source2HalfLife"),
		ExamNormalCalID:           Text("normalCalID", LenID),
		ExamBlankCalID:            Text("blankCalID", LenID),
		ExamWCCalID:               Text("wcCalID", LenID),
		ExamPreInjectionVolume:    F32("preInjectionVolume"),
		ExamPostInjectionActivity: F32("postInjectionActivity"),
		ExamPostInjectionDateTime: Text("postInjectionDateTime", LenDateTime),
		ExamPositronFraction:      F32("positronFraction"),
		ExamScanIDDicom:           Text("scanIdDicom", LenID),
		ExamExamIDDicom:           Text("examIdDicom", LenID),
		ExamNormal2DCalID:         Text("normal2dCalID", LenID),
		ExamPatientIDDicom:        Text("patientIdDicom", LenID),
		ExamPatientType:           U32("patientType"),
		ExamSoftwareVersion:       Text("softwareVersion", LenID),
		ExamIsotopeHasPromptGamma: U32("isotopeHasPromptGamma"),
		ExamSpares:                U32s("spares", 9),
	}
}

func acqParamFields(schema Schema) []Field {
	f := []Field{
		AcqLandmarkName:      Text("landmarkName", LenLandmarkName),
		AcqLandmarkAbbrev:    Text("landmarkAbbrev", LenLandmarkAbbrev),
		AcqLandmarkQualifier: U32("landmarkQualifier"),
		AcqScanType:          U32("scanType"),
		AcqScanMode:          U32("scanMode"),
		AcqAxialAcceptance:   U32("axialAcceptance"),
		AcqThetaCompression:  U32("thetaCompression"),
		AcqCollimation:       U32("collimation"),
		AcqSliceCount:        U32("sliceCount"),
		AcqTableLocation:     F32("tableLocation"),
		AcqTableHeight:       F32("tableHeight"),
		AcqLowerEnergyLimit:  U32("lowerEnergyLimit"),
		AcqUpperEnergyLimit:  U32("upperEnergyLimit"),
		AcqCoincTimingWindow: U32("coincTimingWindow"),
		AcqDelayedEventsMode: U32("delayedEventsMode"),
		AcqDuration:          U32("acqDuration"),
		AcqNumberOfBins:      U32("numberOfBins"),
		AcqSpares:            U32s("spares", 4),
	}
	if schema == SchemaV8 {
		f[AcqTOFUsed] = U32("tofUsed")
	}
	return f
}

func acqStatsFields(schema Schema) []Field {
	f := []Field{
		StatsTermCondition:      U32("termCondition"),
		StatsTotalPrompts:       U32("totalPrompts"),
		StatsTotalDelays:        U32("totalDelays"),
		StatsAcceptedTriggers:   U32("acceptedTriggers"),
		StatsRejectedTriggers:   U32("rejectedTriggers"),
		StatsScanStartTime:      U32("scanStartTime"),
		StatsFrameStartTime:     U32("frameStartTime"),
		StatsFrameDuration:      U32("frameDuration"),
		StatsFrameID:            Text("frameID", LenFrameID),
		StatsBinNumber:          U32("binNumber"),
		StatsAccumBinDuration:   U32s("accumBinDuration", MaxAcqBins),
		StatsTotalPromptsMS:     U32("totalPromptsMs"),
		StatsTotalDelaysMS:      U32("totalDelaysMs"),
		StatsSorterFilteredLS:   U32("sorterFilteredEvtsLS"),
		StatsSorterFilteredMS:   U32("sorterFilteredEvtsMS"),
		StatsBadCoincStreamEvts: U32("badCoincStreamEvts"),
		StatsFrameNumber:        U32("frameNumber"),
		StatsIsRejectBin:        U32("isRejectBin"),
		StatsSpares:             U32s("spares", 5),
	}
	if schema == SchemaV8 {
		f[StatsFrameStartCoincTStamp] = U32("frameStartCoincTStamp")
		f[StatsReadyToScanUTC] = U32("readyToScanUTC")
	}
	return f
}

func systemGeoFields(d geoDims) []Field {
	return []Field{
		GeoRadialModulesPerSystem:   U32("radialModulesPerSystem"),
		GeoRadialBlocksPerModule:    U32("radialBlocksPerModule"),
		GeoRadialCrystalsPerBlock:   U32("radialCrystalsPerBlock"),
		GeoAxialModulesPerSystem:    U32("axialModulesPerSystem"),
		GeoAxialBlocksPerModule:     U32("axialBlocksPerModule"),
		GeoAxialCrystalsPerBlock:    U32("axialCrystalsPerBlock"),
		GeoDetectorRadialSize:       F32("detectorRadialSize"),
		GeoDetectorAxialSize:        F32("detectorAxialSize"),
		GeoAxialCrystalGap:          F32("axialCrystalGap"),
		GeoRadialCrystalGap:         F32("radialCrystalGap"),
		GeoAxialBlockGap:            F32("axialBlockGap"),
		GeoRadialBlockGap:           F32("radialBlockGap"),
		GeoAxialCassetteGap:         F32("axialCassetteGap"),
		GeoRadialCassetteGap:        F32("radialCassetteGap"),
		GeoSourceRadius:             F32("sourceRadius"),
		GeoCollimatorInnerRadius:    F32("collimatorInnerRadius"),
		GeoCollimatorOuterRadius:    F32("collimatorOuterRadius"),
		GeoDelaysCorrectionFactor:   F32("delaysCorrectionFactor"),
		GeoEffectiveRingDiameter:    F32("effectiveRingDiameter"),
		GeoBlockRepeatFactor:        U32("blockRepeatFactor"),
		GeoInterCrystalPitch:        F32("interCrystalPitch"),
		GeoInterBlockPitch:          F32("interBlockPitch"),
		GeoScatterHrParameters:      F32s("scatterHrParameters", 10),
		GeoScatterHsParameters:      F32s("scatterHsParameters", 10),
		GeoDTIntCorrection:          F32("dtIntCorrectionConstant"),
		GeoDTMuxCorrection:          F32("dtMuxCorrectionConstant"),
		GeoDTTimingCorrection:       F32("dtTimingCorrectionConstant"),
		GeoNumCoincAsics:            I32("numCoincAsics"),
		GeoDTAsicChipFactors:        F32s("dtAsicChipFactors", 7),
		GeoDT3DAsicChipFactors:      F32s("dt3dAsicChipFactors", 7),
		GeoDT3DIntCorrection:        F32("dt3dIntCorrectionConstant"),
		GeoDT3DMuxCorrection:        F32("dt3dMuxCorrectionConstant"),
		GeoDT3DTimingCorrection:     F32("dt3dTimingCorrectionConstant"),
		GeoTransaxialCrystal0Offset: F32("transaxialCrystal0Offset"),
		GeoVQCXTranslation:          F32("vqcXaxisTranslation"),
		GeoVQCYTranslation:          F32("vqcYaxisTranslation"),
		GeoVQCZTranslation:          F32("vqcZaxisTranslation"),
		GeoVQCXTilt:                 F32("vqcXaxisTilt"),
		GeoVQCYSwivel:               F32("vqcYaxisSwivel"),
		GeoVQCZRoll:                 F32("vqcZaxisRoll"),
		GeoScannerFirstSlice:        U32("scannerFirstSlice"),
		GeoCollimatorType:           U32("collimatorType"),
		GeoTimingResolutionPs:       U32("timingResolutionInPico"),
		GeoAvgBlockDeadtime:         F32("avgBlockDeadtime"),
		GeoAvgCrystalSingles:        F32("avgCrystalSingles"),
		GeoSpares:                   F32s("spares", 5),
		GeoDTCrossRingFactors:       F32s("dtCrossRingFactors", d.majorRings),
		GeoDT3DPileUpFactors:        F32s("dt3dPileUpFactors", d.minorRings),
		GeoDTHrPileUpFactors:        F32s("dtHrPileUpFactors", d.axialSlices),
		GeoDTHsPileUpFactors:        F32s("dtHsPileUpFactors", d.axialSlices),
		GeoDT3DCrystalPileUpFactors: F32s("dt3dCrystalPileupFactors", d.crystalsPerBlock),
		GeoBulkSpares:               U32s("bulkSpares", 8),
	}
}

func sorterFields() []Field {
	return []Field{
		SorterDataOrientation:      U32("dataOrientation"),
		SorterDimension1Size:       U32("dimension1Size"),
		SorterDimension2Size:       U32("dimension2Size"),
		SorterHistogramCellSize:    U32("histogramCellSize"),
		SorterSinoAlignCorr:        U32("sinoAlignCorr"),
		SorterDHMErrorFifoDepth:    U32("DHMErrorFifoDepth"),
		SorterAcquisitionNumber:    U32("acquisitionNumber"),
		SorterNumberOfAcquisitions: U32("numberOfAcquisitions"),
	}
}

func segmentFields() []Field {
	return []Field{
		SegType:                U32("segmentType"),
		SegDimension3Size:      U32("dimension3Size"),
		SegNumScaleFactors:     U32("numScaleFactors"),
		SegScaleFactorsOffset:  U32("scaleFactorsOffset"),
		SegDataOffset:          U64("dataSegmentOffset"),
		SegCompDataOffset:      U64("compDataSegOffset"),
		SegCompDataSize:        U64("compDataSegSize"),
		SegFirstCvtEntryOffset: U64("segFirstCvtEntryOffset"),
		SegCvtEntries:          U32("segCvtEntries"),
		SegTOFCollapsed:        U32("tofCollapsed"),
		SegSpares:              U32s("spares", 6),
	}
}

func listFields(schema Schema) []Field {
	f := []Field{
		ListType:           U32("listType"),
		ListNumAssocFiles:  U32("numAssocListFiles"),
		ListWhichAssocFile: U32("whichAssocLFile"),
		ListAcqTime:        U32("listAcqTime"),
		ListStartOffset:    U32("listStartOffset"),
		ListIsCompressed:   U32("isListCompressed"),
		ListCompressionAlg: U32("listCompressionAlg"),
		ListSpare:          U32("spare"),
		ListSizeOfList:     U64("sizeOfList"),
		ListCompAlgCoefs:   {},
	}
	if schema == SchemaV8 {
		f[ListEvalAsBadCompress] = U32("evalAsBadCompress")
		f[ListAreEvtTimeStampsKnown] = U32("areEvtTimeStampsKnown")
		f[ListFirstTmAbsTimeStamp] = U32("firstTmAbsTimeStamp")
		f[ListLastTmAbsTimeStamp] = U32("lastTmAbsTimeStamp")
		f[ListSizeOfCompressedList] = U64("sizeOfCompressedList")
		f[ListCompAlgCoefs] = F64s("listCompAlgCoefs", 4)
	}
	return f
}

// Layouts groups every sub-record layout of one schema generation.
type Layouts struct {
	Schema    Schema
	Config    *Layout
	Exam      *Layout
	AcqParams *Layout
	AcqStats  *Layout
	SystemGeo *Layout
	Sorter    *Layout
	Segment   *Layout
	List      *Layout
}

// SorterSize is the on-disk size of the sorter block including segments.
func (l *Layouts) SorterSize() int {
	return l.Sorter.Size + NumSorterSegments*l.Segment.Size
}

func newLayouts(schema Schema, dims geoDims) *Layouts {
	return &Layouts{
		Schema:    schema,
		Config:    NewLayout("config", schema, configFields()),
		Exam:      NewLayout("exam", schema, examFields()),
		AcqParams: NewLayout("acq-params", schema, acqParamFields(schema)),
		AcqStats:  NewLayout("acq-stats", schema, acqStatsFields(schema)),
		SystemGeo: NewLayout("system-geometry", schema, systemGeoFields(dims)),
		Sorter:    NewLayout("sorter", schema, sorterFields()),
		Segment:   NewLayout("sorter-segment", schema, segmentFields()),
		List:      NewLayout("list-header", schema, listFields(schema)),
	}
}

var (
	layoutsV7 = newLayouts(SchemaV7, geoDimsV7)
	layoutsV8 = newLayouts(SchemaV8, geoDimsV8)
)

// LayoutsFor returns the layouts of schema, or ErrUnsupportedVersion.
func LayoutsFor(schema Schema) (*Layouts, error) {
	switch schema {
	case SchemaV7:
		return layoutsV7, nil
	case SchemaV8:
		return layoutsV8, nil
	default:
		return nil, ErrUnsupportedVersion
	}
}

// ConfigLayout is shared by both generations; it is what the schema is read from.
var ConfigLayout = layoutsV8.Config
