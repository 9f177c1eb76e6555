// Package format houses low-level decoders for the GE RDF header format. It
// knows the byte layouts and nothing about files, so higher-level packages can
// orchestrate I/O and presentation.
package format

const (
	// Marker is the byte-order marker stored as the first 32-bit word of every
	// RDF file, written in the console's native order.
	Marker uint32 = 0x0000FEFF

	// MarkerSwapped is Marker as read with the wrong byte order.
	MarkerSwapped uint32 = 0xFFFE0000

	// MarkerSize is the size of the byte-order marker.
	MarkerSize = 4

	// NumOffsets is the number of 32-bit sub-record offsets after the marker.
	NumOffsets = 17

	// OffsetTableSize is the marker plus the offset table.
	//
	//	Offset  Size  Description
	//	------  ----  -------------------------------
	//	 0x00    4    marker 0x0000FEFF
	//	 0x04    4    config
	//	 0x08    4    sorter
	//	 0x0C    4    singles
	//	 0x10    4    dead time
	//	 0x14    4    acquisition parameters
	//	 0x18    4    compute parameters
	//	 0x1C    4    exam
	//	 0x20    4    acquisition statistics
	//	 0x24    4    3D normalization
	//	 0x28    4    system geometry
	//	 0x2C    4    calibration set
	//	 0x30    4    crystal time difference
	//	 0x34    4    compression
	//	 0x38    4    list header
	//	 0x3C    4    detector module signature
	//	 0x40    8    spare[2]
	OffsetTableSize = MarkerSize + NumOffsets*4
)

// Slot indexes the offset table.
type Slot int

const (
	SlotConfig Slot = iota
	SlotSorter
	SlotSingles
	SlotDeadTime
	SlotAcqParams
	SlotComputeParams
	SlotExam
	SlotAcqStats
	SlotNorm3D
	SlotSystemGeo
	SlotCalSet
	SlotCrystalTimeDiff
	SlotCompression
	SlotListHeader
	SlotDetModuleSignature
	SlotSpare0
	SlotSpare1
)

var slotNames = [NumOffsets]string{
	"config", "sorter", "singles", "deadtime", "acq-params", "compute-params",
	"exam", "acq-stats", "norm3d", "system-geometry", "cal-set",
	"crystal-time-diff", "compression", "list-header",
	"det-module-signature", "spare0", "spare1",
}

func (s Slot) String() string {
	if s < 0 || int(s) >= NumOffsets {
		return "unknown"
	}
	return slotNames[s]
}

// Nominal padded-string lengths used by the console's header database.
const (
	LenID               = 65
	LenDateTime         = 27
	LenCalDescription   = 33
	LenManufacturer     = 65
	LenModality         = 5
	LenOperator         = 5
	LenPatientHistory   = 61
	LenPatientID        = 21
	LenPatientName      = 65
	LenRadionuclide     = 7
	LenRefPhysician     = 65
	LenRequisition      = 17
	LenScanDescription  = 65
	LenScannerDesc      = 33
	LenHospitalName     = 33
	LenExamDesc         = 65
	LenDiagnostician    = 33
	LenLandmarkName     = 65
	LenLandmarkAbbrev   = 3
	LenTracerName       = 41
	LenBatchDescription = 41
	LenFrameID          = 65

	// CountIDInts is the number of u32 words in exam and scan ids.
	CountIDInts = 2

	// MaxAcqBins bounds the per-bin accumulated duration array.
	MaxAcqBins = 64

	// NumSorterSegments is the number of segment descriptors in the sorter block.
	NumSorterSegments = 8
)

// Schema selects between the two header layout generations.
type Schema int

const (
	// SchemaUnknown means no schema has been determined yet.
	SchemaUnknown Schema = 0
	// SchemaV7 is the older layout (config major version 7).
	SchemaV7 Schema = 7
	// SchemaV8 is the newer layout (config major version 8).
	SchemaV8 Schema = 8
)

func (s Schema) String() string {
	switch s {
	case SchemaV7:
		return "v7"
	case SchemaV8:
		return "v8"
	default:
		return "unknown"
	}
}

// SchemaForMajor maps a config major version onto a schema. Any version
// other than 7 or 8 is ErrUnsupportedVersion.
func SchemaForMajor(major uint32) (Schema, error) {
	switch major {
	case 7:
		return SchemaV7, nil
	case 8:
		return SchemaV8, nil
	default:
		return SchemaUnknown, ErrUnsupportedVersion
	}
}
