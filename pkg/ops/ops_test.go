package ops_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/internal/testutil"
	"github.com/nmtools/rdfkit/pkg/ops"
	"github.com/nmtools/rdfkit/rdf"
	"github.com/nmtools/rdfkit/rdf/listmode"
)

func payload(t *testing.T, gen listmode.Generation, order binary.ByteOrder, recs ...listmode.Record) []byte {
	t.Helper()
	c, err := listmode.NewCodec(gen, order, 0)
	require.NoError(t, err)
	var out []byte
	for _, r := range recs {
		out, err = c.Append(out, r)
		require.NoError(t, err)
	}
	return out
}

func tm(ms uint64) listmode.Record {
	return listmode.Record{Kind: listmode.KindTimeMarker, TimeMs: ms}
}

func gate(v uint8) listmode.Record {
	return listmode.Record{Kind: listmode.KindGating, Gating: v}
}

func event(prompt bool, tof int16) listmode.Record {
	return listmode.Record{Kind: listmode.KindEvent, Event: listmode.Event{
		Pos1:   listmode.Crystal{Transaxial: 10, Axial: 1},
		Pos2:   listmode.Crystal{Transaxial: 300, Axial: 20},
		Prompt: prompt,
		TOFBin: tof,
	}}
}

// dimensionFile writes a V7 file with gating inputs.
func dimensionFile(t *testing.T) string {
	t.Helper()
	b := testutil.NewBuilder(format.SchemaV7)
	b.Payload = payload(t, listmode.GenerationDimension, b.Order,
		gate(1),
		tm(100), event(true, 0), gate(2), event(false, 0),
		tm(101), gate(1), event(true, 0),
		tm(102), gate(2),
	)
	return b.WriteFile(t, "dim.BLF")
}

// rdf8File writes a V8 file with TOF events.
func rdf8File(t *testing.T) string {
	t.Helper()
	b := testutil.NewBuilder(format.SchemaV8)
	b.Payload = payload(t, listmode.GenerationRDF8, b.Order,
		tm(10), event(true, -7), event(true, 3), event(false, 0),
		tm(11), event(true, 12),
	)
	return b.WriteFile(t, "rdf8.BLF")
}

func TestInspect(t *testing.T) {
	report, err := ops.Inspect(rdf8File(t), &ops.InspectOptions{Raw: true})
	require.NoError(t, err)
	assert.Equal(t, "v8", report.Schema)
	assert.False(t, report.BigEndian)
	assert.Empty(t, report.Errors)
	assert.Len(t, report.Sections, len(rdf.RecordKinds))

	exam := report.Section(rdf.RecordExam)
	require.NotEmpty(t, exam.Values)
	assert.NotEmpty(t, exam.Fields)
	values := map[string]string{}
	for _, kv := range exam.Values {
		values[kv.Key] = kv.Value
	}
	assert.Equal(t, "DOE^JANE", values["PATIENT_NAME"])

	var slots []string
	for _, o := range report.Offsets {
		slots = append(slots, o.Slot)
	}
	assert.Contains(t, slots, "exam")
	assert.Contains(t, slots, "list-header")
}

func TestInspectPartialHeader(t *testing.T) {
	b := testutil.NewBuilder(format.SchemaV8)
	b.OmitList = true
	report, err := ops.Inspect(b.WriteFile(t, "nolist.BLF"), nil)
	require.NoError(t, err)
	assert.Len(t, report.Errors, 1)
	assert.Empty(t, report.Section(rdf.RecordList).Values)
	assert.NotEmpty(t, report.Section(rdf.RecordExam).Values)
}

func TestInspectNotRDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 128), 0o644))
	_, err := ops.Inspect(path, nil)
	assert.ErrorIs(t, err, rdf.ErrInvalidFormat)
}

func TestAnonymize(t *testing.T) {
	src := rdf8File(t)
	dst := filepath.Join(t.TempDir(), "anon.BLF")
	require.NoError(t, ops.Anonymize(src, dst, nil))

	f, err := rdf.Open(dst, rdf.Options{})
	require.NoError(t, err)
	defer f.Close()
	exam, err := f.ReadExam()
	require.NoError(t, err)
	assert.Equal(t, rdf.Anonymous, exam.PatientName())
	assert.Equal(t, uint32(0), exam.PatientSex())

	// Refuses to overwrite.
	assert.ErrorIs(t, ops.Anonymize(src, dst, nil), rdf.ErrDestinationExists)
	assert.ErrorIs(t, ops.Anonymize(src, src, nil), rdf.ErrSameSourceAndDestination)
}

func TestSetIdentity(t *testing.T) {
	src := rdf8File(t)
	dst := filepath.Join(t.TempDir(), "id.BLF")
	id := ops.Identity{PatientID: "SUBJ-042", ExamUID: "1.2.3.4"}
	require.NoError(t, ops.SetIdentity(src, dst, id, nil))

	f, err := rdf.Open(dst, rdf.Options{})
	require.NoError(t, err)
	defer f.Close()
	exam, err := f.ReadExam()
	require.NoError(t, err)
	assert.Equal(t, "SUBJ-042", exam.PatientID())
	assert.Equal(t, "1.2.3.4", exam.ExamUID())
	assert.Equal(t, "DOE^JANE", exam.PatientName())
}

func TestSetIdentityAllOrNothing(t *testing.T) {
	src := rdf8File(t)
	dst := filepath.Join(t.TempDir(), "id.BLF")
	id := ops.Identity{PatientID: "SUBJ-042", ScanUID: "1.02.3"}
	err := ops.SetIdentity(src, dst, id, nil)
	assert.ErrorIs(t, err, rdf.ErrInvalidUID)
	assert.NoFileExists(t, dst)

	assert.Error(t, ops.SetIdentity(src, dst, ops.Identity{}, nil))

	id.SkipUIDValidation = true
	require.NoError(t, ops.SetIdentity(src, dst, id, nil))
	assert.FileExists(t, dst)
}

func TestScanEventsRDF8(t *testing.T) {
	stats, err := ops.ScanEvents(rdf8File(t), nil)
	require.NoError(t, err)
	assert.Equal(t, "rdf8", stats.Generation)
	assert.Equal(t, uint64(6), stats.Records)
	assert.Equal(t, uint64(4), stats.Events)
	assert.Equal(t, uint64(3), stats.Prompts)
	assert.Equal(t, uint64(1), stats.Delays)
	assert.Equal(t, uint64(2), stats.TimeMarkers)
	assert.Equal(t, int64(36), stats.Bytes)
	assert.Equal(t, int16(-7), stats.MinTOFBin)
	assert.Equal(t, int16(12), stats.MaxTOFBin)
	assert.Equal(t, uint64(1), stats.DurationMs())
}

func TestScanEventsLimit(t *testing.T) {
	stats, err := ops.ScanEvents(dimensionFile(t), &ops.ScanOptions{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.Records)
	assert.Equal(t, uint64(1), stats.GatingRecords)
	assert.Equal(t, uint64(100), stats.FirstTimeMs)
}

func TestGatingTimeline(t *testing.T) {
	path := dimensionFile(t)
	var all []ops.GatingPoint
	require.NoError(t, ops.GatingTimeline(path, nil, func(p ops.GatingPoint) error {
		all = append(all, p)
		return nil
	}))
	assert.Equal(t, []ops.GatingPoint{
		{TimeMs: 0, Gating: 1},
		{TimeMs: 100, Gating: 2},
		{TimeMs: 101, Gating: 1},
		{TimeMs: 102, Gating: 2},
	}, all)

	var zero []ops.GatingPoint
	require.NoError(t, ops.GatingTimeline(path, &ops.GatingOptions{}, func(p ops.GatingPoint) error {
		zero = append(zero, p)
		return nil
	}))
	assert.Equal(t, all, zero)

	two := 2
	var twos []uint64
	require.NoError(t, ops.GatingTimeline(path, &ops.GatingOptions{Value: &two}, func(p ops.GatingPoint) error {
		twos = append(twos, p.TimeMs)
		return nil
	}))
	assert.Equal(t, []uint64{100, 102}, twos)

	stop := errors.New("stop")
	var calls int
	err := ops.GatingTimeline(path, &ops.GatingOptions{}, func(ops.GatingPoint) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestGatingTimelineRDF8(t *testing.T) {
	err := ops.GatingTimeline(rdf8File(t), nil, func(ops.GatingPoint) error { return nil })
	assert.ErrorIs(t, err, ops.ErrNoGatingInput)
}

func TestExportParquet(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "events.parquet")
	n, err := ops.ExportParquet(rdf8File(t), dst, &ops.ExportOptions{
		ScanOptions: ops.ScanOptions{TOFBinSizePs: 10},
		BatchSize:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(6), n)

	rows, err := parquet.ReadFile[ops.Row](dst)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, "time", rows[0].Kind)
	assert.Equal(t, uint64(10), rows[0].TimeMs)
	assert.Equal(t, "event", rows[1].Kind)
	assert.Equal(t, int32(-7), rows[1].TOFBin)
	assert.InDelta(t, -70.0, rows[1].DeltaTimePs, 1e-9)
	assert.True(t, rows[1].Prompt)
	assert.Equal(t, uint32(10), rows[1].Trans1)
	assert.Equal(t, uint32(1), rows[1].Axial1)
	assert.Equal(t, uint32(300), rows[1].Trans2)
	assert.Equal(t, uint32(20), rows[1].Axial2)
	assert.False(t, rows[3].Prompt)
	assert.Equal(t, int32(12), rows[5].TOFBin)
	assert.Equal(t, rows[0].Offset+6, rows[1].Offset)
	assert.Equal(t, uint64(11), rows[5].TimeMs)
	assert.Equal(t, uint64(5), rows[5].Index)

	_, err = ops.ExportParquet(rdf8File(t), dst, nil)
	assert.ErrorIs(t, err, rdf.ErrDestinationExists)

	n, err = ops.ExportParquet(dimensionFile(t), dst, &ops.ExportOptions{Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), n)
	rows, err = parquet.ReadFile[ops.Row](dst)
	require.NoError(t, err)
	assert.Equal(t, "gating", rows[0].Kind)
	assert.Equal(t, uint32(1), rows[0].Gating)
	assert.Equal(t, uint32(2), rows[3].Gating)
	assert.Equal(t, uint64(100), rows[3].TimeMs)
	assert.Zero(t, rows[3].Trans1)
}
