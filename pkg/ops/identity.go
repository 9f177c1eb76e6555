package ops

import (
	"errors"
	"fmt"

	"github.com/nmtools/rdfkit/rdf"
)

// Anonymize writes a copy of src to dst with the exam's identifying fields
// replaced or blanked. dst must not exist and must differ from src.
//
// Example:
//
//	err := ops.Anonymize("scan.BLF", "scan-anon.BLF", nil)
func Anonymize(src, dst string, opts *OpenOptions) error {
	return editExam(src, dst, opts, func(exam *rdf.Exam) error {
		return exam.RemoveIdentifyingInformation()
	})
}

// SetIdentity writes a copy of src to dst with the identifiers in id
// applied. Every setter runs before anything is written; if any fails,
// dst is not created and the joined errors are returned.
func SetIdentity(src, dst string, id Identity, opts *OpenOptions) error {
	if id.empty() {
		return errors.New("no identity fields to set")
	}
	return editExam(src, dst, opts, func(exam *rdf.Exam) error {
		if id.SkipUIDValidation {
			exam.SetUIDValidator(func(string) error { return nil })
		}
		var errs []error
		apply := func(field, v string, set func(string) error) {
			if v == "" {
				return
			}
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", field, err))
			}
		}
		apply("patient id", id.PatientID, exam.SetPatientID)
		apply("patient name", id.PatientName, exam.SetPatientName)
		apply("patient dicom id", id.PatientDicomID, exam.SetPatientDicomID)
		apply("exam uid", id.ExamUID, exam.SetExamUID)
		apply("scan uid", id.ScanUID, exam.SetScanUID)
		return errors.Join(errs...)
	})
}

func editExam(src, dst string, opts *OpenOptions, edit func(*rdf.Exam) error) error {
	if opts == nil {
		opts = &OpenOptions{}
	}
	f, err := rdf.Open(src, *opts)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	exam, err := f.ReadExam()
	if err != nil {
		return fmt.Errorf("failed to read exam: %w", err)
	}
	if err := edit(exam); err != nil {
		return err
	}
	return exam.WriteFile(src, dst)
}
