package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/pkg/ops"
)

var (
	gatingValue int
	gatingLimit uint64
)

func init() {
	cmd := newGatingCmd()
	cmd.Flags().IntVar(&gatingValue, "value", -1, "Only print times of gating records with this value")
	cmd.Flags().Uint64Var(&gatingLimit, "num-events-to-list", 0, "Stop after this many records (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newGatingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gating <file>",
		Short: "List gating inputs with their time",
		Long: `The gating command prints one line per gating record: the time of the
latest time marker in milliseconds and the gating value, separated by a tab.
With --value only the times of matching records are printed.

Example:
  rdfctl gating scan.BLF
  rdfctl gating scan.BLF --value 1 --num-events-to-list 100000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGating(args)
		},
	}
	return cmd
}

func runGating(args []string) error {
	path := args[0]
	scan, err := scanOptions()
	if err != nil {
		return err
	}
	scan.Limit = gatingLimit
	opts := &ops.GatingOptions{ScanOptions: scan}
	if gatingValue >= 0 {
		opts.Value = &gatingValue
	}

	var points []ops.GatingPoint
	err = ops.GatingTimeline(path, opts, func(p ops.GatingPoint) error {
		if jsonOut {
			points = append(points, p)
			return nil
		}
		if opts.Value != nil {
			printInfo("%d\n", p.TimeMs)
		} else {
			printInfo("%d\t%d\n", p.TimeMs, p.Gating)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read gating input: %w", err)
	}
	if jsonOut {
		return printJSON(points)
	}
	return nil
}
