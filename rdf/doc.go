// Package rdf decodes the header of GE PET/CT raw data files (RDF).
//
// # File Structure
//
// An RDF file starts with a 32-bit byte-order marker (0x0000FEFF in the
// console's native order) followed by seventeen 32-bit offsets, one per
// sub-record:
//
//	[marker][offset table][config][sorter]...[exam]...[list header][listmode payload]
//
// Every scalar in the file uses the order announced by the marker. The
// config sub-record's major version (7 or 8) selects the layout of the other
// sub-records; Options.Schema overrides that choice.
//
// # Reading
//
//	f, err := rdf.Open("scan.BLF", rdf.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	hdr, err := f.ReadHeader() // err joins the sub-records that failed
//	v, err := hdr.Get(rdf.RecordExam, "PATIENT_NAME")
//	fmt.Println(v)
//
// Each decoded sub-record exposes typed accessors and a Dictionary of
// well-known keys with text, unsigned or float values.
//
// # Modifying
//
// Only the exam can be changed. Setters enforce the padded field lengths,
// and WriteFile produces a new file; the source is never modified:
//
//	exam, _ := f.ReadExam()
//	if err := exam.RemoveIdentifyingInformation(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := exam.WriteFile("scan.BLF", "anon.BLF"); err != nil {
//	    log.Fatal(err)
//	}
//
// A File is not safe for concurrent use; open one per goroutine.
//
// The listmode payload is read by package rdf/listmode.
package rdf
