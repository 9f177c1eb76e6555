package rdf

import (
	"errors"
	"fmt"

	"github.com/nmtools/rdfkit/internal/format"
)

// Anonymous is the replacement written into identity fields by
// RemoveIdentifyingInformation.
const Anonymous = "ANON"

// Exam is the patient and study sub-record. It is the only sub-record that
// may be modified; changes stay in memory until WriteFile.
type Exam struct {
	view
	offset      int64
	validateUID UIDValidator
}

// ReadExam decodes the exam sub-record.
func (f *File) ReadExam() (*Exam, error) {
	rec, off, err := f.readRecord(format.SlotExam, f.layouts.Exam)
	if err != nil {
		return nil, fmt.Errorf("exam: %w", err)
	}
	e := &Exam{view: view{rec: rec}, offset: off, validateUID: ValidateUID}
	e.dict = e.buildDictionary()
	return e, nil
}

// Offset returns the absolute file offset the exam was read from.
func (e *Exam) Offset() int64 { return e.offset }

func (e *Exam) PatientID() string          { return e.rec.Text(format.ExamPatientID) }
func (e *Exam) PatientName() string        { return e.rec.Text(format.ExamPatientName) }
func (e *Exam) PatientDicomID() string     { return e.rec.Text(format.ExamPatientIDDicom) }
func (e *Exam) PatientBirthdate() string   { return e.rec.Text(format.ExamPatientBirthdate) }
func (e *Exam) PatientSex() uint32         { return e.rec.U32(format.ExamPatientSex) }
func (e *Exam) HospitalName() string       { return e.rec.Text(format.ExamHospitalName) }
func (e *Exam) RefPhysician() string       { return e.rec.Text(format.ExamRefPhysician) }
func (e *Exam) Diagnostician() string      { return e.rec.Text(format.ExamDiagnostician) }
func (e *Exam) Operator() string           { return e.rec.Text(format.ExamOperator) }
func (e *Exam) ScannerDescription() string { return e.rec.Text(format.ExamScannerDesc) }
func (e *Exam) Modality() string           { return e.rec.Text(format.ExamModality) }
func (e *Exam) Manufacturer() string       { return e.rec.Text(format.ExamManufacturer) }
func (e *Exam) ScanDescription() string    { return e.rec.Text(format.ExamScanDescription) }
func (e *Exam) TracerName() string         { return e.rec.Text(format.ExamTracerName) }
func (e *Exam) TracerActivity() float32    { return e.rec.F32(format.ExamTracerActivity) }
func (e *Exam) Radionuclide() string       { return e.rec.Text(format.ExamRadionuclideName) }
func (e *Exam) HalfLife() float32          { return e.rec.F32(format.ExamHalfLife) }
func (e *Exam) MeasDateTime() string       { return e.rec.Text(format.ExamMeasDateTime) }
func (e *Exam) ExamUID() string            { return e.rec.Text(format.ExamExamIDDicom) }
func (e *Exam) ScanUID() string            { return e.rec.Text(format.ExamScanIDDicom) }
func (e *Exam) SoftwareVersion() string    { return e.rec.Text(format.ExamSoftwareVersion) }

// PatientDOB renders the birth date as YYYY-MM-DD. The birth date field uses
// the same 17-character timestamp form as the scan time, so anything else,
// a bare YYYYMMDD included, yields NODATE.
func (e *Exam) PatientDOB() string { return format.ScanDate(e.PatientBirthdate()) }

// ScanDate renders the measurement date as YYYY-MM-DD, or NODATE.
func (e *Exam) ScanDate() string { return format.ScanDate(e.MeasDateTime()) }

// ScanTime returns the measurement time as HHMMSS, or NOTIME.
func (e *Exam) ScanTime() string { return format.ScanTime(e.MeasDateTime()) }

// SetUIDValidator replaces the syntax check used by SetExamUID and
// SetScanUID. A nil validator restores ValidateUID.
func (e *Exam) SetUIDValidator(v UIDValidator) {
	if v == nil {
		v = ValidateUID
	}
	e.validateUID = v
}

func (e *Exam) SetPatientID(id string) error      { return e.setText(format.ExamPatientID, id) }
func (e *Exam) SetPatientDicomID(id string) error { return e.setText(format.ExamPatientIDDicom, id) }
func (e *Exam) SetPatientName(name string) error  { return e.setText(format.ExamPatientName, name) }

// SetExamUID validates uid and stores it as the DICOM study instance UID.
func (e *Exam) SetExamUID(uid string) error {
	if err := e.validateUID(uid); err != nil {
		return fmt.Errorf("examIdDicom: %w", err)
	}
	return e.setText(format.ExamExamIDDicom, uid)
}

// SetScanUID validates uid and stores it as the DICOM series instance UID.
func (e *Exam) SetScanUID(uid string) error {
	if err := e.validateUID(uid); err != nil {
		return fmt.Errorf("scanIdDicom: %w", err)
	}
	return e.setText(format.ExamScanIDDicom, uid)
}

func (e *Exam) setText(id int, v string) error {
	if err := e.rec.SetText(id, v); err != nil {
		return err
	}
	e.dict = e.buildDictionary()
	return nil
}

// RemoveIdentifyingInformation replaces the patient identity with Anonymous,
// blanks the people and place fields and the birth date, and zeroes the sex
// code. Either every field changes or none does. Applying it twice yields
// the same bytes as applying it once.
func (e *Exam) RemoveIdentifyingInformation() error {
	scratch := e.rec.Clone()
	err := errors.Join(
		scratch.SetText(format.ExamPatientID, Anonymous),
		scratch.SetText(format.ExamPatientIDDicom, Anonymous),
		scratch.SetText(format.ExamPatientName, Anonymous),
		scratch.SetText(format.ExamDiagnostician, ""),
		scratch.SetText(format.ExamOperator, ""),
		scratch.SetText(format.ExamPatientBirthdate, ""),
		scratch.SetText(format.ExamRefPhysician, ""),
		scratch.SetText(format.ExamHospitalName, ""),
	)
	if err != nil {
		return fmt.Errorf("remove identifying information: %w", err)
	}
	scratch.SetU32(format.ExamPatientSex, 0)
	copy(e.rec.Raw, scratch.Raw)
	e.dict = e.buildDictionary()
	return nil
}

func (e *Exam) buildDictionary() *Dictionary {
	d := newDictionary()
	d.text("PATIENT_NAME", e.PatientName())
	d.text("PATIENT_ID", e.PatientID())
	d.text("PATIENT_DOB", e.PatientDOB())
	d.text("STUDY_SCAN_DATE", e.ScanDate())
	d.text("STUDY_SCAN_TIME", e.ScanTime())
	d.text("SERIES_DESCRIPTION", e.ScanDescription())
	d.text("MANUFACTURER", e.Manufacturer())
	d.text("MODALITY_TYPE", e.Modality())
	d.text("MODEL_NAME", e.ScannerDescription())
	d.text("PATIENT_DICOM_ID", e.PatientDicomID())
	d.text("EXAM_UID", e.ExamUID())
	d.text("SCAN_UID", e.ScanUID())
	d.text("TRACER_NAME", e.TracerName())
	d.text("RADIONUCLIDE", e.Radionuclide())
	d.float("TRACER_ACTIVITY", float64(e.TracerActivity()))
	d.float("HALF_LIFE", float64(e.HalfLife()))
	d.text("SOFTWARE_VERSION", e.SoftwareVersion())
	return d
}
