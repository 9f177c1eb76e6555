package ops

import (
	"fmt"

	"github.com/nmtools/rdfkit/internal/buf"
	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/rdf"
)

// KeyValue is one dictionary entry rendered for display.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// Section holds the decoded view of one sub-record.
type Section struct {
	Kind   rdf.RecordKind `json:"-"`
	Name   string         `json:"name"`
	Values []KeyValue     `json:"values"`
	Fields []rdf.Field    `json:"fields,omitempty"`
}

// SlotOffset is one populated offset-table entry.
type SlotOffset struct {
	Slot   string `json:"slot"`
	Offset uint32 `json:"offset"`
}

// Report summarises a file header.
type Report struct {
	Path      string       `json:"path"`
	Size      int64        `json:"size"`
	BigEndian bool         `json:"bigEndian"`
	Schema    string       `json:"schema"`
	Version   string       `json:"version"`
	Offsets   []SlotOffset `json:"offsets"`
	Sections  []Section    `json:"sections"`
	// Errors lists sub-records that could not be decoded.
	Errors []string `json:"errors,omitempty"`
}

// Section returns the section for kind, or an empty section when that
// sub-record was not decoded.
func (r *Report) Section(kind rdf.RecordKind) Section {
	for _, s := range r.Sections {
		if s.Kind == kind {
			return s
		}
	}
	return Section{Kind: kind, Name: kind.String()}
}

// Inspect decodes every sub-record of the file at path. Damaged or missing
// sub-records are listed in Report.Errors; only a file that cannot be opened
// at all returns an error.
func Inspect(path string, opts *InspectOptions) (*Report, error) {
	if opts == nil {
		opts = &InspectOptions{}
	}
	f, err := rdf.Open(path, rdf.Options{Schema: opts.Schema})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	report := &Report{
		Path:      path,
		Size:      f.Size(),
		BigEndian: buf.IsBigEndian(f.Order()),
		Schema:    f.Schema().String(),
	}
	if v, err := f.Config().VersionNumber(); err == nil {
		report.Version = fmt.Sprintf("%g", v)
	}
	offsets := f.Offsets()
	for slot := format.Slot(0); slot < format.NumOffsets; slot++ {
		if off := offsets.Offsets[slot]; off != 0 {
			report.Offsets = append(report.Offsets, SlotOffset{Slot: slot.String(), Offset: off})
		}
	}

	h, err := f.ReadHeader()
	report.Errors = splitErrors(err)
	for _, kind := range rdf.RecordKinds {
		dict, err := h.Dictionary(kind)
		if err != nil {
			continue
		}
		sec := Section{Kind: kind, Name: kind.String()}
		for k, v := range dict.All() {
			sec.Values = append(sec.Values, KeyValue{Key: k, Value: v.String(), Kind: v.Kind.String()})
		}
		if opts.Raw {
			sec.Fields, _ = h.Fields(kind)
		}
		report.Sections = append(report.Sections, sec)
	}
	return report, nil
}

func splitErrors(err error) []string {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	for _, e := range joined.Unwrap() {
		out = append(out, e.Error())
	}
	return out
}
