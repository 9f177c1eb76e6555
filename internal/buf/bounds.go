package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe64 adds a and b, returning ok = false when the int64 result
// would overflow. Used for file offsets.
func AddOverflowSafe64(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that n bytes starting at off lie within a source of
// size bytes. It returns the end offset on success.
//
//	end, err := buf.CheckRange(fileSize, int64(offsets.Exam), layout.Size)
//	if err != nil {
//	    return fmt.Errorf("exam: %w", err)
//	}
func CheckRange(size, off int64, n int) (int64, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe64(off, int64(n))
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, n)
	}
	if end > size {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, size)
	}
	return end, nil
}
