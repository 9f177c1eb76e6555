package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/rdf"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check whether files look like RDF listmode files",
		Long: `The check command tests the byte-order marker of each file and then
tries to decode its offset table and config record.

Example:
  rdfctl check scan.BLF
  rdfctl check *.BLF --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

// CheckResult is the outcome of checking one file.
type CheckResult struct {
	Path      string `json:"path"`
	Signature bool   `json:"signature"`
	Valid     bool   `json:"valid"`
	Schema    string `json:"schema,omitempty"`
	Error     string `json:"error,omitempty"`
}

func checkFile(path string) CheckResult {
	res := CheckResult{Path: path}
	fh, err := os.Open(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	sig := make([]byte, 4)
	_, err = io.ReadFull(fh, sig)
	_ = fh.Close()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Signature = rdf.CanRead(sig)
	if !res.Signature {
		res.Error = rdf.ErrInvalidFormat.Error()
		return res
	}

	f, err := rdf.Open(path, rdf.Options{Schema: headerSchema()})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()
	res.Valid = true
	res.Schema = f.Schema().String()
	return res
}

func runCheck(args []string) error {
	var results []CheckResult
	failed := 0
	for _, path := range args {
		printVerbose("Checking: %s\n", path)
		res := checkFile(path)
		if !res.Valid {
			failed++
		}
		results = append(results, res)
	}

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.Valid {
				printInfo("%s: ok (%s)\n", res.Path, res.Schema)
			} else {
				printInfo("%s: FAIL %s\n", res.Path, res.Error)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", failed, len(args), errCheckFailed)
	}
	return nil
}

var errCheckFailed = errors.New("check failed")
