package format

import "time"

const (
	// dateTimeLen is the length of a YYYYMMDDHHMMSS.ff header timestamp.
	dateTimeLen = 17

	NoDate = "NODATE"
	NoTime = "NOTIME"
)

// ScanDate extracts the calendar date from a header timestamp and renders it
// as YYYY-MM-DD. Values of the wrong length or with an impossible date yield
// NoDate.
func ScanDate(v string) string {
	if len(v) != dateTimeLen {
		return NoDate
	}
	d, err := time.Parse("20060102", v[:8])
	if err != nil {
		return NoDate
	}
	return d.Format("2006-01-02")
}

// ScanTime returns the HHMMSS portion of a header timestamp verbatim, or
// NoTime when the value has the wrong length.
func ScanTime(v string) string {
	if len(v) != dateTimeLen {
		return NoTime
	}
	return v[8:14]
}
