package ops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/nmtools/rdfkit/internal/logging"
	"github.com/nmtools/rdfkit/internal/writer"
	"github.com/nmtools/rdfkit/rdf"
	"github.com/nmtools/rdfkit/rdf/listmode"
)

// DefaultBatchSize is the number of rows ExportParquet buffers per write.
const DefaultBatchSize = 4096

// Row is the Parquet schema written by ExportParquet. Event columns are
// zero for time and gating rows. Narrow record fields are widened to 32 bits,
// the smallest integer width parquet-go maps Go values to.
type Row struct {
	Index       uint64  `parquet:"index"`
	Offset      int64   `parquet:"offset"`
	Kind        string  `parquet:"kind,dict"`
	TimeMs      uint64  `parquet:"time_ms"`
	Trans1      uint32  `parquet:"trans1"`
	Axial1      uint32  `parquet:"axial1"`
	Trans2      uint32  `parquet:"trans2"`
	Axial2      uint32  `parquet:"axial2"`
	Prompt      bool    `parquet:"prompt"`
	TOFBin      int32   `parquet:"tof_bin"`
	DeltaTimePs float64 `parquet:"delta_time_ps"`
	Gating      uint32  `parquet:"gating"`
}

func newRow(i uint64, offset int64, now uint64, rec listmode.Record) Row {
	row := Row{Index: i, Offset: offset, Kind: rec.Kind.String(), TimeMs: now}
	switch rec.Kind {
	case listmode.KindEvent:
		e := rec.Event
		row.Trans1, row.Axial1 = uint32(e.Pos1.Transaxial), uint32(e.Pos1.Axial)
		row.Trans2, row.Axial2 = uint32(e.Pos2.Transaxial), uint32(e.Pos2.Axial)
		row.Prompt = e.Prompt
		row.TOFBin = int32(e.TOFBin)
		row.DeltaTimePs = e.DeltaTimePs
	case listmode.KindGating:
		row.Gating = uint32(rec.Gating)
	}
	return row
}

// ExportParquet decodes the listmode stream of path into a Parquet file at
// dst, one row per record. TimeMs on every row is the latest time marker
// seen so far. It returns the number of rows written. The file is written
// to a temporary name and renamed into place once complete.
//
// Example:
//
//	n, err := ops.ExportParquet("scan.BLF", "events.parquet", &ops.ExportOptions{
//	    ScanOptions: ops.ScanOptions{SkipUnknown: true, TOFBinSizePs: 13.02},
//	})
func ExportParquet(path, dst string, opts *ExportOptions) (uint64, error) {
	if opts == nil {
		opts = &ExportOptions{}
	}
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	if !opts.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			return 0, fmt.Errorf("%s: %w", dst, rdf.ErrDestinationExists)
		}
	}

	r, err := listmode.Open(path, opts.listmode())
	if err != nil {
		return 0, err
	}
	defer r.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".rdfkit-export-*")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	w := parquet.NewGenericWriter[Row](tmp, parquet.Compression(&parquet.Zstd))
	rows := make([]Row, 0, batch)
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		if _, err := w.Write(rows); err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
		rows = rows[:0]
		return nil
	}

	var n, now uint64
	err = walk(r, opts.Limit, func(rec listmode.Record) error {
		if rec.Kind == listmode.KindTimeMarker {
			now = rec.TimeMs
		}
		rows = append(rows, newRow(n, r.Offset()-int64(rec.Size), now, rec))
		n++
		if len(rows) == batch {
			return flush()
		}
		return nil
	})
	if err == nil {
		err = flush()
	}
	if err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	committed = true
	if opts.Overwrite {
		if err := os.Rename(tmpPath, dst); err != nil {
			_ = os.Remove(tmpPath)
			return 0, err
		}
	} else if err := writer.Commit(tmpPath, dst); err != nil {
		return 0, err
	}
	logging.L().Info().
		Str("src", path).
		Str("dst", dst).
		Uint64("rows", n).
		Uint64("skipped", r.Skipped()).
		Msg("listmode exported")
	return n, nil
}
