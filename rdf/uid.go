package rdf

import (
	"fmt"
	"strings"
)

// maxUIDLen is the DICOM limit on UI value length.
const maxUIDLen = 64

// UIDValidator checks a DICOM UID before it is written into the exam.
type UIDValidator func(uid string) error

// ValidateUID checks DICOM UID syntax: at most 64 characters of dot-separated
// numeric components, none empty and none with a leading zero.
func ValidateUID(uid string) error {
	if uid == "" || len(uid) > maxUIDLen {
		return fmt.Errorf("%q: length %d: %w", uid, len(uid), ErrInvalidUID)
	}
	for _, comp := range strings.Split(uid, ".") {
		if comp == "" {
			return fmt.Errorf("%q: empty component: %w", uid, ErrInvalidUID)
		}
		if len(comp) > 1 && comp[0] == '0' {
			return fmt.Errorf("%q: leading zero in %q: %w", uid, comp, ErrInvalidUID)
		}
		for i := 0; i < len(comp); i++ {
			if comp[i] < '0' || comp[i] > '9' {
				return fmt.Errorf("%q: non-digit %q: %w", uid, comp[i], ErrInvalidUID)
			}
		}
	}
	return nil
}
