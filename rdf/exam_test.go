package rdf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/internal/testutil"
)

func readExam(t *testing.T, path string) *Exam {
	t.Helper()
	f, err := Open(path, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	e, err := f.ReadExam()
	require.NoError(t, err)
	return e
}

func TestExamDictionary(t *testing.T) {
	e := readExam(t, testutil.NewBuilder(format.SchemaV8).WriteFile(t, "a.rdf"))
	d := e.Dictionary()

	cases := map[string]string{
		"PATIENT_NAME":       "DOE^JANE",
		"PATIENT_ID":         "PID12345",
		"PATIENT_DOB":        "1970-01-02",
		"STUDY_SCAN_DATE":    "2019-03-15",
		"STUDY_SCAN_TIME":    "123045",
		"SERIES_DESCRIPTION": "WB FDG",
		"MANUFACTURER":       "GE MEDICAL SYSTEMS",
		"MODALITY_TYPE":      "PT",
		"MODEL_NAME":         "DISCOVERY MI",
		"EXAM_UID":           "1.2.840.113619.2.55.4",
	}
	for key, want := range cases {
		v, err := d.Get(key)
		require.NoError(t, err, key)
		assert.Equal(t, ValueText, v.Kind, key)
		assert.Equal(t, want, v.Text, key)
	}

	_, err := d.Get("NOPE")
	require.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, "PATIENT_NAME", d.Keys()[0])
}

func TestExamSetterLengths(t *testing.T) {
	e := readExam(t, testutil.NewBuilder(format.SchemaV8).WriteFile(t, "a.rdf"))

	require.NoError(t, e.SetPatientID(strings.Repeat("9", format.LenPatientID)))
	err := e.SetPatientID(strings.Repeat("9", format.LenPatientID+1))
	require.ErrorIs(t, err, ErrFieldTooLong)
	assert.Contains(t, err.Error(), "patientID")
	assert.Equal(t, strings.Repeat("9", format.LenPatientID), e.PatientID(), "failed set must not change the field")

	require.NoError(t, e.SetPatientName(strings.Repeat("N", format.LenPatientName)))
	require.ErrorIs(t, e.SetPatientName(strings.Repeat("N", format.LenPatientName+1)), ErrFieldTooLong)
	require.NoError(t, e.SetPatientDicomID("NEWDICOM"))
	assert.Equal(t, "NEWDICOM", e.PatientDicomID())

	v, err := e.Dictionary().Get("PATIENT_DICOM_ID")
	require.NoError(t, err)
	assert.Equal(t, "NEWDICOM", v.Text, "dictionary follows mutations")
}

func TestExamUIDSetters(t *testing.T) {
	e := readExam(t, testutil.NewBuilder(format.SchemaV8).WriteFile(t, "a.rdf"))

	require.NoError(t, e.SetExamUID("1.2.3.4"))
	assert.Equal(t, "1.2.3.4", e.ExamUID())
	require.ErrorIs(t, e.SetScanUID("1.02.3"), ErrInvalidUID)
	require.ErrorIs(t, e.SetScanUID("abc"), ErrInvalidUID)
	assert.Equal(t, "1.2.840.113619.2.55.3", e.ScanUID())

	errCustom := errors.New("custom")
	e.SetUIDValidator(func(string) error { return errCustom })
	require.ErrorIs(t, e.SetScanUID("1.2"), errCustom)
	e.SetUIDValidator(nil)
	require.NoError(t, e.SetScanUID("1.2"))
}

func TestRemoveIdentifyingInformation(t *testing.T) {
	e := readExam(t, testutil.NewBuilder(format.SchemaV8).WriteFile(t, "a.rdf"))
	tracer := e.TracerName()

	require.NoError(t, e.RemoveIdentifyingInformation())
	assert.Equal(t, Anonymous, e.PatientID())
	assert.Equal(t, Anonymous, e.PatientDicomID())
	assert.Equal(t, Anonymous, e.PatientName())
	assert.Empty(t, e.Diagnostician())
	assert.Empty(t, e.Operator())
	assert.Empty(t, e.RefPhysician())
	assert.Empty(t, e.HospitalName())
	assert.Empty(t, e.PatientBirthdate())
	assert.Equal(t, format.NoDate, e.PatientDOB())
	assert.Zero(t, e.PatientSex())
	assert.Equal(t, tracer, e.TracerName(), "non-identifying fields are kept")

	once := append([]byte(nil), e.Raw()...)
	require.NoError(t, e.RemoveIdentifyingInformation())
	assert.Equal(t, once, e.Raw(), "second application is a no-op")
}

func TestExamWriteFile(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		b := testutil.NewBuilder(format.SchemaV8)
		b.Order = order
		b.Payload = bytes.Repeat([]byte{0xA5}, 64)
		src := b.WriteFile(t, "src.rdf")
		srcBytes, err := os.ReadFile(src)
		require.NoError(t, err)

		e := readExam(t, src)
		require.NoError(t, e.RemoveIdentifyingInformation())
		dst := filepath.Join(t.TempDir(), "anon.rdf")
		require.NoError(t, e.WriteFile(src, dst))

		out := readExam(t, dst)
		assert.Equal(t, Anonymous, out.PatientName())
		assert.Equal(t, e.Raw(), out.Raw())

		dstBytes, err := os.ReadFile(dst)
		require.NoError(t, err)
		require.Len(t, dstBytes, len(srcBytes))
		examStart := int(e.Offset())
		examEnd := examStart + len(e.Raw())
		assert.Equal(t, srcBytes[:examStart], dstBytes[:examStart], "bytes before exam unchanged")
		assert.Equal(t, srcBytes[examEnd:], dstBytes[examEnd:], "bytes after exam unchanged")

		after, err := os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, srcBytes, after, "source untouched")

		require.ErrorIs(t, e.WriteFile(src, dst), ErrDestinationExists)
		require.ErrorIs(t, e.WriteFile(src, src), ErrSameSourceAndDestination)
	}
}

func TestExamWriteFileRejectsForeignSource(t *testing.T) {
	e := readExam(t, testutil.NewBuilder(format.SchemaV8).WriteFile(t, "a.rdf"))
	other := testutil.NewBuilder(format.SchemaV8)
	other.Order = binary.BigEndian
	src := other.WriteFile(t, "other.rdf")
	dst := filepath.Join(t.TempDir(), "out.rdf")
	require.ErrorIs(t, e.WriteFile(src, dst), ErrInvalidFormat)
	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestPatientDOBFormats(t *testing.T) {
	e := readExam(t, testutil.NewBuilder(format.SchemaV8).WriteFile(t, "a.rdf"))
	for _, tc := range []struct {
		raw, want string
	}{
		{"19700102000000.00", "1970-01-02"},
		{"19700102", format.NoDate},
		{"19701302000000.00", format.NoDate},
	} {
		require.NoError(t, e.rec.SetText(format.ExamPatientBirthdate, tc.raw))
		assert.Equal(t, tc.want, e.PatientDOB(), tc.raw)
	}
}
