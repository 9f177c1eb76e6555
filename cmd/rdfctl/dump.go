package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/pkg/ops"
	"github.com/nmtools/rdfkit/rdf"
)

var (
	dumpRecord string
	dumpRaw    bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpRecord, "record", "", "Only dump this record (config, exam, acq-params, acq-stats, system-geometry, sorter, list-header)")
	cmd.Flags().BoolVar(&dumpRaw, "raw", false, "Also dump every layout field")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the decoded header dictionaries",
		Long: `The dump command prints the well-known keys of every header record.
With --raw it also prints each layout field in on-disk order.

Example:
  rdfctl dump scan.BLF
  rdfctl dump scan.BLF --record exam --raw
  rdfctl dump scan.BLF --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]
	printVerbose("Opening file: %s\n", path)

	var only *rdf.RecordKind
	if dumpRecord != "" {
		kind, err := rdf.ParseRecordKind(dumpRecord)
		if err != nil {
			return err
		}
		only = &kind
	}

	report, err := ops.Inspect(path, &ops.InspectOptions{Schema: headerSchema(), Raw: dumpRaw})
	if err != nil {
		return fmt.Errorf("failed to inspect: %w", err)
	}

	sections := report.Sections
	if only != nil {
		sec := report.Section(*only)
		if len(sec.Values) == 0 {
			return fmt.Errorf("%s: %w", sec.Name, rdf.ErrNotReady)
		}
		sections = []ops.Section{sec}
	}

	if jsonOut {
		return printJSON(sections)
	}
	for _, sec := range sections {
		printInfo("[%s]\n", sec.Name)
		for _, kv := range sec.Values {
			printInfo("  %s = %s\n", kv.Key, kv.Value)
		}
		if len(sec.Fields) > 0 {
			printInfo("  -- fields --\n")
			for _, f := range sec.Fields {
				printInfo("  %s: %s\n", f.Name, f.Value)
			}
		}
		printInfo("\n")
	}
	return nil
}
