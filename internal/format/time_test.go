package format

import "testing"

func TestScanDateTime(t *testing.T) {
	cases := []struct {
		in       string
		date, tm string
	}{
		{"20190315123045.00", "2019-03-15", "123045"},
		{"20190230123045.00", NoDate, "123045"},
		{"2019031512", NoDate, NoTime},
		{"", NoDate, NoTime},
	}
	for _, tc := range cases {
		if got := ScanDate(tc.in); got != tc.date {
			t.Fatalf("ScanDate(%q) = %q, want %q", tc.in, got, tc.date)
		}
		if got := ScanTime(tc.in); got != tc.tm {
			t.Fatalf("ScanTime(%q) = %q, want %q", tc.in, got, tc.tm)
		}
	}
}
