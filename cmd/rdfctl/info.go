package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/pkg/ops"
	"github.com/nmtools/rdfkit/rdf"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Validate an RDF header and report basic metadata",
		Long: `The info command decodes the header of an RDF file and displays
its byte order, schema, populated offsets and the main exam and list fields.

Example:
  rdfctl info scan.BLF
  rdfctl info scan.BLF --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// infoKeys are the headline fields shown by info, per record.
var infoKeys = map[rdf.RecordKind][]string{
	rdf.RecordExam: {
		"PATIENT_NAME", "PATIENT_ID", "STUDY_SCAN_DATE", "STUDY_SCAN_TIME",
		"MODEL_NAME", "TRACER_NAME", "RADIONUCLIDE",
	},
	rdf.RecordAcqStats: {"TOTAL_PROMPTS", "TOTAL_DELAYS", "FRAME_DURATION"},
	rdf.RecordList:     {"LIST_START_OFFSET", "SIZE_OF_LIST", "IS_LIST_COMPRESSED"},
}

func runInfo(args []string) error {
	path := args[0]
	printVerbose("Opening file: %s\n", path)

	report, err := ops.Inspect(path, &ops.InspectOptions{Schema: headerSchema()})
	if err != nil {
		return fmt.Errorf("failed to inspect: %w", err)
	}

	if jsonOut {
		return printJSON(report)
	}

	order := "little-endian"
	if report.BigEndian {
		order = "big-endian"
	}
	printInfo("\nRDF Information:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Size: %s\n", formatSize(report.Size))
	printInfo("  Byte order: %s\n", order)
	printInfo("  Schema: %s\n", report.Schema)
	if report.Version != "" {
		printInfo("  Version: %s\n", report.Version)
	}

	printInfo("\nOffsets:\n")
	for _, o := range report.Offsets {
		printInfo("  %-18s %d\n", o.Slot, o.Offset)
	}

	for _, kind := range []rdf.RecordKind{rdf.RecordExam, rdf.RecordAcqStats, rdf.RecordList} {
		sec := report.Section(kind)
		if len(sec.Values) == 0 {
			continue
		}
		values := make(map[string]string, len(sec.Values))
		for _, kv := range sec.Values {
			values[kv.Key] = kv.Value
		}
		printInfo("\n%s:\n", sec.Name)
		for _, key := range infoKeys[kind] {
			if v, ok := values[key]; ok {
				printInfo("  %s: %s\n", key, v)
			}
		}
	}

	if len(report.Errors) > 0 {
		printInfo("\nProblems:\n")
		for _, e := range report.Errors {
			printInfo("  ✗ %s\n", e)
		}
	}
	return nil
}
