//go:build linux || freebsd

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data without forcing a metadata-only update.
func syncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
