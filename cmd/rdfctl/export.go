package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/pkg/ops"
)

var (
	exportBatchSize int
	exportOverwrite bool
	exportLimit     uint64
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().IntVar(&exportBatchSize, "batch-size", 0, "Rows buffered per write (default from config)")
	cmd.Flags().BoolVar(&exportOverwrite, "overwrite", false, "Replace an existing output file")
	cmd.Flags().Uint64Var(&exportLimit, "limit", 0, "Stop after this many records (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file> <out.parquet>",
		Short: "Export decoded listmode records to Parquet",
		Long: `The export command decodes every listmode record and writes one
Parquet row per record, carrying the latest time marker on each row.

Example:
  rdfctl export scan.BLF events.parquet
  rdfctl export scan.BLF events.parquet --config rdfctl.yaml --overwrite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	src, dst := args[0], args[1]
	scan, err := scanOptions()
	if err != nil {
		return err
	}
	scan.Limit = exportLimit
	batch := exportBatchSize
	if batch <= 0 {
		batch = settings.Export.BatchSize
	}
	printVerbose("Exporting %s -> %s\n", src, dst)

	n, err := ops.ExportParquet(src, dst, &ops.ExportOptions{
		ScanOptions: scan,
		BatchSize:   batch,
		Overwrite:   exportOverwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{"src": src, "dst": dst, "rows": n})
	}
	printInfo("\n✓ Exported %d rows to %s\n", n, dst)
	return nil
}
