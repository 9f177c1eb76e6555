package rdf

import (
	"errors"
	"fmt"
)

// RecordKind names a decoded sub-record in a Header.
type RecordKind int

const (
	RecordConfig RecordKind = iota
	RecordExam
	RecordAcqParams
	RecordAcqStats
	RecordSystemGeo
	RecordSorter
	RecordList
)

// RecordKinds lists every kind in display order.
var RecordKinds = []RecordKind{
	RecordConfig, RecordExam, RecordAcqParams, RecordAcqStats,
	RecordSystemGeo, RecordSorter, RecordList,
}

func (k RecordKind) String() string {
	switch k {
	case RecordConfig:
		return "config"
	case RecordExam:
		return "exam"
	case RecordAcqParams:
		return "acq-params"
	case RecordAcqStats:
		return "acq-stats"
	case RecordSystemGeo:
		return "system-geometry"
	case RecordSorter:
		return "sorter"
	case RecordList:
		return "list-header"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseRecordKind maps a name from String back to its kind.
func ParseRecordKind(s string) (RecordKind, error) {
	for _, k := range RecordKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown record kind %q", s)
}

// Header holds every sub-record that decoded successfully. Missing entries
// are nil.
type Header struct {
	Config    *Config
	Exam      *Exam
	AcqParams *AcqParams
	AcqStats  *AcqStats
	SystemGeo *SystemGeo
	Sorter    *Sorter
	List      *ListDescriptor
}

// ReadHeader decodes every sub-record it can. The returned Header is never
// nil; the error joins the failures of the sub-records that are missing.
func (f *File) ReadHeader() (*Header, error) {
	h := &Header{Config: f.config}
	var errs []error
	var err error
	if h.Exam, err = f.ReadExam(); err != nil {
		errs = append(errs, err)
	}
	if h.AcqParams, err = f.ReadAcqParams(); err != nil {
		errs = append(errs, err)
	}
	if h.AcqStats, err = f.ReadAcqStats(); err != nil {
		errs = append(errs, err)
	}
	if h.SystemGeo, err = f.ReadSystemGeo(); err != nil {
		errs = append(errs, err)
	}
	if h.Sorter, err = f.ReadSorter(); err != nil {
		errs = append(errs, err)
	}
	if h.List, err = f.ReadListDescriptor(); err != nil {
		errs = append(errs, err)
	}
	return h, errors.Join(errs...)
}

func (h *Header) view(kind RecordKind) *view {
	switch kind {
	case RecordConfig:
		if h.Config != nil {
			return &h.Config.view
		}
	case RecordExam:
		if h.Exam != nil {
			return &h.Exam.view
		}
	case RecordAcqParams:
		if h.AcqParams != nil {
			return &h.AcqParams.view
		}
	case RecordAcqStats:
		if h.AcqStats != nil {
			return &h.AcqStats.view
		}
	case RecordSystemGeo:
		if h.SystemGeo != nil {
			return &h.SystemGeo.view
		}
	case RecordSorter:
		if h.Sorter != nil {
			return &h.Sorter.view
		}
	case RecordList:
		if h.List != nil {
			return &h.List.view
		}
	}
	return nil
}

// Dictionary returns the dictionary of kind, or ErrNotReady when that
// sub-record was not decoded.
func (h *Header) Dictionary(kind RecordKind) (*Dictionary, error) {
	v := h.view(kind)
	if v == nil || v.dict == nil {
		return nil, fmt.Errorf("%s: %w", kind, ErrNotReady)
	}
	return v.dict, nil
}

// Get looks up key in the dictionary of kind.
func (h *Header) Get(kind RecordKind, key string) (Value, error) {
	d, err := h.Dictionary(kind)
	if err != nil {
		return Value{}, err
	}
	v, err := d.Get(key)
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", kind, err)
	}
	return v, nil
}

// Fields returns the raw layout dump of kind.
func (h *Header) Fields(kind RecordKind) ([]Field, error) {
	v := h.view(kind)
	if v == nil {
		return nil, fmt.Errorf("%s: %w", kind, ErrNotReady)
	}
	return v.Fields(), nil
}
