package listmode

import (
	"fmt"

	"github.com/nmtools/rdfkit/internal/format"
)

// Kind tags the variant held by a Record.
type Kind uint8

const (
	KindEvent Kind = iota + 1
	KindTimeMarker
	KindGating
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindTimeMarker:
		return "time"
	case KindGating:
		return "gating"
	default:
		return "unknown"
	}
}

// Crystal addresses one detector crystal.
type Crystal struct {
	Transaxial uint16
	Axial      uint16
}

// Event is a coincidence between two crystals.
type Event struct {
	Pos1   Crystal
	Pos2   Crystal
	Prompt bool
	// TOFBin is the signed time-of-flight bin; always 0 for the Dimension
	// generation.
	TOFBin int16
	// DeltaTimePs is TOFBin scaled by the configured timing-bin size.
	DeltaTimePs float64
}

// Record is one decoded listmode record. Kind selects which of Event,
// TimeMs and Gating is meaningful.
type Record struct {
	Kind Kind
	// Size is the number of bytes the record occupies in the stream.
	Size   int
	Event  Event
	TimeMs uint64
	Gating uint8
}

// IsEvent, IsTime and IsGating report the variant.
func (r Record) IsEvent() bool  { return r.Kind == KindEvent }
func (r Record) IsTime() bool   { return r.Kind == KindTimeMarker }
func (r Record) IsGating() bool { return r.Kind == KindGating }

// Equal compares records by variant: events by their full payload, time
// markers by time only, gating records by gating value only.
func (r Record) Equal(o Record) bool {
	if r.Kind != o.Kind {
		return false
	}
	switch r.Kind {
	case KindEvent:
		return r.Event == o.Event
	case KindTimeMarker:
		return r.TimeMs == o.TimeMs
	case KindGating:
		return r.Gating == o.Gating
	default:
		return false
	}
}

func (r Record) String() string {
	switch r.Kind {
	case KindEvent:
		kind := "delay"
		if r.Event.Prompt {
			kind = "prompt"
		}
		return fmt.Sprintf("event %s (%d,%d)-(%d,%d) tof=%d",
			kind, r.Event.Pos1.Transaxial, r.Event.Pos1.Axial,
			r.Event.Pos2.Transaxial, r.Event.Pos2.Axial, r.Event.TOFBin)
	case KindTimeMarker:
		return fmt.Sprintf("time %dms", r.TimeMs)
	case KindGating:
		return fmt.Sprintf("gating %d", r.Gating)
	default:
		return "unknown"
	}
}

// RecordError reports a record of known size but unrecognised kind. It
// matches format.ErrUnrecognizedRecord under errors.Is.
type RecordError struct {
	Offset int64
	Size   int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("listmode: unrecognized %d-byte record at %d: %s", e.Size, e.Offset, e.Reason)
}

func (e *RecordError) Unwrap() error { return format.ErrUnrecognizedRecord }
