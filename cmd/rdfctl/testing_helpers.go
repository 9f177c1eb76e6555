package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/nmtools/rdfkit/internal/config"
	"github.com/nmtools/rdfkit/internal/format"
	"github.com/nmtools/rdfkit/internal/testutil"
	"github.com/nmtools/rdfkit/pkg/ops"
	"github.com/nmtools/rdfkit/rdf/listmode"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// resetFlags restores global flag state between tests.
func resetFlags() {
	quiet = false
	verbose = false
	jsonOut = false
	settings = config.Default()
	dumpRecord = ""
	dumpRaw = false
	setIdentity = ops.Identity{}
	eventsLimit = 0
	eventsSkipUnknown = false
	gatingValue = -1
	gatingLimit = 0
	exportBatchSize = 0
	exportOverwrite = false
	exportLimit = 0
}

// testFile writes a synthetic RDF file whose list holds recs encoded for gen.
func testFile(t *testing.T, schema format.Schema, gen listmode.Generation, recs ...listmode.Record) string {
	t.Helper()
	b := testutil.NewBuilder(schema)
	c, err := listmode.NewCodec(gen, binary.LittleEndian, 0)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	for _, r := range recs {
		if b.Payload, err = c.Append(b.Payload, r); err != nil {
			t.Fatalf("encode %v: %v", r, err)
		}
	}
	return b.WriteFile(t, "scan.BLF")
}
