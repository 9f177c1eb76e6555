package rdf

import (
	"fmt"
	"os"

	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/internal/logging"
	"github.com/nmtools/rdfkit/internal/writer"
)

// WriteFile writes a copy of src to dst with the whole exam block replaced
// by e's current bytes. src must be an RDF file whose exam lives at the same
// offset. dst must not exist and must not name src; src is never modified.
func (e *Exam) WriteFile(src, dst string) error {
	if err := writer.CheckDestination(src, dst); err != nil {
		return err
	}
	if err := e.checkSource(src); err != nil {
		return err
	}
	w := &writer.FileWriter{Path: dst}
	if err := w.WritePatched(src, writer.Patch{Offset: e.offset, Data: e.rec.Raw}); err != nil {
		return fmt.Errorf("write exam to %s: %w", dst, err)
	}
	logging.L().Info().
		Str("src", src).
		Str("dst", dst).
		Int64("exam_offset", e.offset).
		Int("bytes", len(e.rec.Raw)).
		Msg("exam written")
	return nil
}

func (e *Exam) checkSource(src string) error {
	fh, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fh.Close()
	t, err := ReadOffsetTable(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if t.Offset(format.SlotExam) != e.offset || t.Order != e.rec.Order {
		return fmt.Errorf("%s: exam at %d does not match %d: %w",
			src, t.Offset(format.SlotExam), e.offset, ErrInvalidFormat)
	}
	return nil
}
