package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe64(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe64(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe64(math.MinInt64, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt64")
	}
	if _, ok := AddOverflowSafe64(math.MaxInt64, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt64")
	}
}

func TestCheckRange(t *testing.T) {
	end, err := CheckRange(100, 40, 60)
	if err != nil || end != 100 {
		t.Fatalf("CheckRange(100,40,60)=%d,%v want 100,nil", end, err)
	}
	if _, err := CheckRange(100, 41, 60); err == nil {
		t.Fatalf("expected bounds error past end of source")
	}
	if _, err := CheckRange(100, -1, 4); err == nil {
		t.Fatalf("expected error for negative offset")
	}
	if _, err := CheckRange(100, 0, -4); err == nil {
		t.Fatalf("expected error for negative length")
	}
	if _, err := CheckRange(math.MaxInt64, math.MaxInt64-1, 8); err == nil {
		t.Fatalf("expected overflow error")
	}
}
