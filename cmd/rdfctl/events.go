package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/pkg/ops"
)

var (
	eventsLimit       uint64
	eventsSkipUnknown bool
)

func init() {
	cmd := newEventsCmd()
	cmd.Flags().Uint64Var(&eventsLimit, "limit", 0, "Stop after this many records (0 = all)")
	cmd.Flags().BoolVar(&eventsSkipUnknown, "skip-unknown", false, "Skip unrecognised records instead of failing")
	rootCmd.AddCommand(cmd)
}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "Summarise the listmode event stream",
		Long: `The events command decodes the listmode stream and counts prompts,
delays, time markers and gating records.

Example:
  rdfctl events scan.BLF
  rdfctl events scan.BLF --skip-unknown --limit 1000000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(args)
		},
	}
	return cmd
}

func runEvents(args []string) error {
	path := args[0]
	opts, err := scanOptions()
	if err != nil {
		return err
	}
	opts.Limit = eventsLimit
	opts.SkipUnknown = opts.SkipUnknown || eventsSkipUnknown
	printVerbose("Scanning: %s\n", path)

	stats, err := ops.ScanEvents(path, &opts)
	if err != nil {
		return fmt.Errorf("failed to scan events: %w", err)
	}

	if jsonOut {
		return printJSON(stats)
	}
	printInfo("\nListmode Statistics:\n")
	printInfo("  Generation: %s\n", stats.Generation)
	printInfo("  Records: %d (%s)\n", stats.Records, formatSize(stats.Bytes))
	printInfo("  Events: %d\n", stats.Events)
	printInfo("    Prompts: %d\n", stats.Prompts)
	printInfo("    Delays: %d\n", stats.Delays)
	if stats.Events > 0 {
		printInfo("    TOF bins: %d..%d\n", stats.MinTOFBin, stats.MaxTOFBin)
	}
	printInfo("  Time markers: %d\n", stats.TimeMarkers)
	if stats.TimeMarkers > 0 {
		printInfo("    First: %d ms\n", stats.FirstTimeMs)
		printInfo("    Last: %d ms\n", stats.LastTimeMs)
		printInfo("    Duration: %d ms\n", stats.DurationMs())
	}
	printInfo("  Gating records: %d\n", stats.GatingRecords)
	if stats.Skipped > 0 {
		printInfo("  Skipped: %d\n", stats.Skipped)
	}
	return nil
}
