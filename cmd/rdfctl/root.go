package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/internal/config"
	"github.com/nmtools/rdfkit/internal/logging"
	"github.com/nmtools/rdfkit/pkg/ops"
	"github.com/nmtools/rdfkit/rdf"
	"github.com/nmtools/rdfkit/rdf/listmode"
)

var (
	// Global flags
	configPath string
	verbose    bool
	quiet      bool
	jsonOut    bool
	logFile    string

	// settings is the loaded configuration with flags applied.
	settings   = config.Default()
	closeLogFn = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "rdfctl",
	Short: "Inspect and decode GE RDF PET listmode files",
	Long: `rdfctl reads the header of GE RDF listmode files, writes de-identified
copies, and decodes the bit-packed listmode event stream into statistics,
gating timelines or Parquet tables.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: func(*cobra.Command, []string) error { return closeLogFn() },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logs")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this rotating file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies global flags and starts logging.
func setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logFile != "" {
		cfg.Logs.File = logFile
	}
	switch {
	case verbose:
		cfg.Logs.Level = "debug"
	case quiet:
		cfg.Logs.Level = "error"
	}
	settings = cfg

	closer, err := logging.Init(logging.Options{
		Level:  cfg.Logs.Level,
		Human:  cfg.Logs.Format == "console",
		Output: cmd.ErrOrStderr(),
		File: logging.FileOptions{
			Path:       cfg.Logs.File,
			MaxSizeMB:  cfg.Logs.MaxSizeMB,
			MaxAgeDays: cfg.Logs.MaxAgeDays,
			MaxBackups: cfg.Logs.MaxBackups,
			Compress:   cfg.Logs.Compress,
		},
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	closeLogFn = closer
	return nil
}

// headerSchema maps the configured schema name onto rdf.Schema.
func headerSchema() rdf.Schema {
	switch settings.Header.Schema {
	case config.SchemaV7:
		return rdf.SchemaV7
	case config.SchemaV8:
		return rdf.SchemaV8
	default:
		return rdf.SchemaAuto
	}
}

// scanOptions builds listmode options from the configuration.
func scanOptions() (ops.ScanOptions, error) {
	gen, err := listmode.ParseGeneration(settings.Listmode.Generation)
	if err != nil {
		return ops.ScanOptions{}, err
	}
	return ops.ScanOptions{
		Generation:   gen,
		Schema:       headerSchema(),
		TOFBinSizePs: settings.Listmode.TOFBinSizePs,
		SkipUnknown:  settings.Listmode.SkipUnknown,
		Mmap:         settings.Listmode.Mmap,
	}, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatSize renders a byte count for humans.
func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
