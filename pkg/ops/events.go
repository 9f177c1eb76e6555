package ops

import (
	"errors"
	"fmt"
	"io"

	"github.com/nmtools/rdfkit/internal/logging"
	"github.com/nmtools/rdfkit/rdf/listmode"
)

// ErrNoGatingInput is returned by GatingTimeline for record generations
// that carry no gating records.
var ErrNoGatingInput = errors.New("listmode generation has no gating input")

// Stats summarises a listmode stream.
type Stats struct {
	Generation    string `json:"generation"`
	Records       uint64 `json:"records"`
	Events        uint64 `json:"events"`
	Prompts       uint64 `json:"prompts"`
	Delays        uint64 `json:"delays"`
	TimeMarkers   uint64 `json:"timeMarkers"`
	GatingRecords uint64 `json:"gatingRecords"`
	Skipped       uint64 `json:"skipped"`
	Bytes         int64  `json:"bytes"`

	// FirstTimeMs and LastTimeMs are valid when TimeMarkers > 0.
	FirstTimeMs uint64 `json:"firstTimeMs"`
	LastTimeMs  uint64 `json:"lastTimeMs"`

	// MinTOFBin and MaxTOFBin are valid when Events > 0.
	MinTOFBin int16 `json:"minTofBin"`
	MaxTOFBin int16 `json:"maxTofBin"`
}

// DurationMs is the span between the first and last time marker.
func (s *Stats) DurationMs() uint64 {
	if s.TimeMarkers == 0 || s.LastTimeMs < s.FirstTimeMs {
		return 0
	}
	return s.LastTimeMs - s.FirstTimeMs
}

func (s *Stats) add(rec listmode.Record) {
	s.Records++
	s.Bytes += int64(rec.Size)
	switch rec.Kind {
	case listmode.KindEvent:
		if s.Events == 0 || rec.Event.TOFBin < s.MinTOFBin {
			s.MinTOFBin = rec.Event.TOFBin
		}
		if s.Events == 0 || rec.Event.TOFBin > s.MaxTOFBin {
			s.MaxTOFBin = rec.Event.TOFBin
		}
		s.Events++
		if rec.Event.Prompt {
			s.Prompts++
		} else {
			s.Delays++
		}
	case listmode.KindTimeMarker:
		if s.TimeMarkers == 0 {
			s.FirstTimeMs = rec.TimeMs
		}
		s.LastTimeMs = rec.TimeMs
		s.TimeMarkers++
	case listmode.KindGating:
		s.GatingRecords++
	}
}

// ScanEvents reads the listmode stream of path and counts its records.
//
// Example:
//
//	stats, err := ops.ScanEvents("scan.BLF", &ops.ScanOptions{SkipUnknown: true})
//	fmt.Printf("%d prompts, %d delays\n", stats.Prompts, stats.Delays)
func ScanEvents(path string, opts *ScanOptions) (*Stats, error) {
	r, err := listmode.Open(path, opts.listmode())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	stats := &Stats{Generation: r.Generation().String()}
	err = walk(r, opts.limit(), func(rec listmode.Record) error {
		stats.add(rec)
		return nil
	})
	stats.Skipped = r.Skipped()
	logging.L().Debug().
		Str("file", path).
		Uint64("records", stats.Records).
		Uint64("skipped", stats.Skipped).
		Msg("listmode scan")
	return stats, err
}

// GatingPoint is one gating record and the latest time marker before it.
type GatingPoint struct {
	TimeMs uint64
	Gating uint8
}

// GatingTimeline walks the stream of path and calls fn for every gating
// record, stamped with the most recent time marker (0 before the first
// one). opts.Limit counts all records, not only gating ones. A non-nil
// error from fn stops the walk and is returned.
func GatingTimeline(path string, opts *GatingOptions, fn func(GatingPoint) error) error {
	if opts == nil {
		opts = &GatingOptions{}
	}
	r, err := listmode.Open(path, opts.listmode())
	if err != nil {
		return err
	}
	defer r.Close()
	if r.Generation() != listmode.GenerationDimension {
		return fmt.Errorf("%s: %w", r.Generation(), ErrNoGatingInput)
	}

	var now uint64
	return walk(r, opts.Limit, func(rec listmode.Record) error {
		switch rec.Kind {
		case listmode.KindTimeMarker:
			now = rec.TimeMs
		case listmode.KindGating:
			if opts.Value != nil && int(rec.Gating) != *opts.Value {
				return nil
			}
			return fn(GatingPoint{TimeMs: now, Gating: rec.Gating})
		}
		return nil
	})
}

// walk feeds up to limit records of r to fn. io.EOF ends the walk cleanly.
func walk(r *listmode.Reader, limit uint64, fn func(listmode.Record) error) error {
	var n uint64
	for limit == 0 || n < limit {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
		n++
	}
	return nil
}
