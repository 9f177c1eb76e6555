package mmfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenReadAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bin")
	want := []byte{0xff, 0xfe, 0x00, 0x00, 0x42}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Size() != int64(len(want)) {
		t.Fatalf("size = %d, want %d", f.Size(), len(want))
	}

	p := make([]byte, 2)
	if n, err := f.ReadAt(p, 3); err != nil || n != 2 || p[0] != 0x00 || p[1] != 0x42 {
		t.Fatalf("ReadAt(3) = %d %v %x", n, err, p)
	}
	if n, err := f.ReadAt(p, 4); n != 1 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt(4) = %d %v, want 1 EOF", n, err)
	}
	if _, err := f.ReadAt(p, 5); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt(5) err = %v, want EOF", err)
	}
	if _, err := f.ReadAt(p, -1); err == nil {
		t.Fatalf("ReadAt(-1) succeeded")
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := f.ReadAt(p, 0); err == nil {
		t.Fatalf("ReadAt after Close succeeded")
	}
}

func TestOpenZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Size() != 0 {
		t.Fatalf("expected zero-length mapping, got %d", f.Size())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
