/*
Package ops provides high-level operations over RDF listmode files.

# Quick Start

Print the exam dictionary of a file:

	report, err := ops.Inspect("scan.BLF", nil)
	if err != nil {
	    log.Fatal(err)
	}
	for _, kv := range report.Section(rdf.RecordExam).Values {
	    fmt.Println(kv.Key, kv.Value)
	}

# De-identification

Write a de-identified copy; the source is never modified:

	err := ops.Anonymize("scan.BLF", "scan-anon.BLF", nil)

Replace selected identifiers instead:

	id := ops.Identity{PatientID: "SUBJ-042", PatientName: "SUBJ^042"}
	err := ops.SetIdentity("scan.BLF", "scan-042.BLF", id, nil)

# Listmode

Count records by kind, export them to Parquet, or list gating inputs:

	stats, err := ops.ScanEvents("scan.BLF", &ops.ScanOptions{SkipUnknown: true})
	n, err := ops.ExportParquet("scan.BLF", "events.parquet", nil)
	err = ops.GatingTimeline("scan.BLF", nil, func(p ops.GatingPoint) error {
	    fmt.Printf("%d\t%d\n", p.TimeMs, p.Gating)
	    return nil
	})
*/
package ops
