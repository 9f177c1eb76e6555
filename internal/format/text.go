package format

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText converts a padded string field to UTF-8. The console writes
// ISO-8859-1; everything from the first NUL onwards is pad and is dropped,
// as is trailing whitespace.
func DecodeText(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// ISO-8859-1 maps every byte, so this only guards against future decoders.
		return strings.TrimRight(string(raw), " \t\r\n")
	}
	return strings.TrimRight(string(out), " \t\r\n")
}

// EncodeText renders s into a padded field of nominal length n. The result is
// always exactly Pad4(n) bytes, NUL padded. A value longer than n bytes after
// encoding, or one with characters outside ISO-8859-1, is ErrFieldTooLong or
// an encoding error respectively.
func EncodeText(s string, n int) ([]byte, error) {
	enc, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", s, err)
	}
	if len(enc) > n {
		return nil, fmt.Errorf("%d bytes > %d: %w", len(enc), n, ErrFieldTooLong)
	}
	out := make([]byte, Pad4(n))
	copy(out, enc)
	return out, nil
}
