package ops

import (
	"github.com/nmtools/rdfkit/rdf"
	"github.com/nmtools/rdfkit/rdf/listmode"
)

// OpenOptions controls header decoding.
// This is an alias to rdf.Options for convenience.
type OpenOptions = rdf.Options

// InspectOptions controls Inspect.
type InspectOptions struct {
	// Schema overrides the header schema implied by the config version.
	Schema rdf.Schema

	// Raw adds every layout field, in on-disk order, to each section.
	Raw bool
}

// ScanOptions controls listmode traversal.
type ScanOptions struct {
	// Generation overrides the record encoding implied by the schema.
	Generation listmode.Generation

	// Schema overrides the header schema implied by the config version.
	Schema rdf.Schema

	// TOFBinSizePs scales RDF8 TOF bins into picoseconds.
	TOFBinSizePs float64

	// SkipUnknown steps over unrecognised records instead of failing.
	SkipUnknown bool

	// Limit stops after this many records. Zero reads the whole stream.
	Limit uint64

	// Mmap maps the file read-only for the scan.
	Mmap bool
}

func (o *ScanOptions) listmode() listmode.Options {
	if o == nil {
		return listmode.Options{}
	}
	return listmode.Options{
		Generation:   o.Generation,
		Schema:       o.Schema,
		TOFBinSizePs: o.TOFBinSizePs,
		SkipUnknown:  o.SkipUnknown,
		Mmap:         o.Mmap,
	}
}

func (o *ScanOptions) limit() uint64 {
	if o == nil {
		return 0
	}
	return o.Limit
}

// GatingOptions controls GatingTimeline.
type GatingOptions struct {
	ScanOptions

	// Value, when set, reports only gating records with this value.
	// Nil reports every gating record.
	Value *int
}

// ExportOptions controls ExportParquet.
type ExportOptions struct {
	ScanOptions

	// BatchSize is the number of rows buffered per write.
	// Default: 4096
	BatchSize int

	// Overwrite replaces an existing destination.
	Overwrite bool
}

// Identity lists replacement identifiers for SetIdentity. Empty fields are
// left unchanged.
type Identity struct {
	PatientID      string
	PatientName    string
	PatientDicomID string
	ExamUID        string
	ScanUID        string

	// SkipUIDValidation stores ExamUID and ScanUID without the
	// rdf.ValidateUID syntax check.
	SkipUIDValidation bool
}

func (id Identity) empty() bool {
	return id.PatientID == "" && id.PatientName == "" && id.PatientDicomID == "" &&
		id.ExamUID == "" && id.ScanUID == ""
}
