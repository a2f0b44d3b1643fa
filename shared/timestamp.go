package shared

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MinTimestampLength is the length of a timestamp without the millisecond group.
	MinTimestampLength = 14
	// MaxTimestampLength is the length of a timestamp with a full millisecond group.
	MaxTimestampLength = 18
	// NoData is the display placeholder for timestamps that cannot be formatted.
	NoData = "No data"
	// DisplayLayout is the display format layout for decoded timestamps.
	DisplayLayout = "02.01.2006, 15:04:05"

	// millisecondSeparator separates the seconds and millisecond groups.
	millisecondSeparator = '.'
)

var (
	// ErrMalformedTimestamp is returned when a wire timestamp fails fixed-offset decoding.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// Timestamp is a decoded wire timestamp of the form YYYYMMDDHHMMSS[.mmm].
type Timestamp struct {
	Year int
	// Month is the zero-based month index (0 = January).
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// Time converts the timestamp to an instant in the provided location.
func (ts Timestamp) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	return time.Date(ts.Year, time.Month(ts.Month+1), ts.Day, ts.Hour, ts.Minute,
		ts.Second, ts.Millisecond*int(time.Millisecond), loc)
}

// timestampField describes a fixed-offset group of a wire timestamp.
type timestampField struct {
	name  string
	start int
	end   int
	min   int
	max   int
	dst   *int
}

// parseDigits decodes a non-negative decimal integer from the provided slice. Signs,
// spaces and any other non-digit byte are rejected.
func parseDigits(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}

	var n int
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}

	return n, true
}

// ParseTimestamp decodes the provided wire timestamp by fixed offsets:
//
//	YYYY MM DD HH MM SS [. mmm]
//	0    4  6  8  10 12  14 15-17
//
// The millisecond group is optional. When present it holds one to three digits
// read as a decimal fraction of a second.
func ParseTimestamp(s string) (Timestamp, error) {
	switch {
	case s == "":
		return Timestamp{}, fmt.Errorf("%w: empty string", ErrMalformedTimestamp)
	case len(s) < MinTimestampLength:
		return Timestamp{}, fmt.Errorf("%w: %q is shorter than %d characters",
			ErrMalformedTimestamp, s, MinTimestampLength)
	case len(s) > MaxTimestampLength:
		return Timestamp{}, fmt.Errorf("%w: %q is longer than %d characters",
			ErrMalformedTimestamp, s, MaxTimestampLength)
	}

	var ts Timestamp
	var month int
	fields := []timestampField{
		{name: "year", start: 0, end: 4, min: 0, max: 9999, dst: &ts.Year},
		{name: "month", start: 4, end: 6, min: 1, max: 12, dst: &month},
		{name: "day", start: 6, end: 8, min: 1, max: 31, dst: &ts.Day},
		{name: "hour", start: 8, end: 10, min: 0, max: 23, dst: &ts.Hour},
		{name: "minute", start: 10, end: 12, min: 0, max: 59, dst: &ts.Minute},
		{name: "second", start: 12, end: 14, min: 0, max: 59, dst: &ts.Second},
	}

	for idx := range fields {
		f := fields[idx]
		val, ok := parseDigits(s[f.start:f.end])
		if !ok {
			return Timestamp{}, fmt.Errorf("%w: %s %q is not a non-negative integer",
				ErrMalformedTimestamp, f.name, s[f.start:f.end])
		}
		if val < f.min || val > f.max {
			return Timestamp{}, fmt.Errorf("%w: %s %d out of range [%d, %d]",
				ErrMalformedTimestamp, f.name, val, f.min, f.max)
		}
		*f.dst = val
	}

	ts.Month = month - 1

	// Day zero of the following month is the last day of this one.
	monthDays := time.Date(ts.Year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
	if ts.Day > monthDays {
		return Timestamp{}, fmt.Errorf("%w: day %d out of range for %04d-%02d",
			ErrMalformedTimestamp, ts.Day, ts.Year, month)
	}

	if len(s) > MinTimestampLength {
		if s[MinTimestampLength] != millisecondSeparator {
			return Timestamp{}, fmt.Errorf("%w: expected '%c' at offset %d, got %q",
				ErrMalformedTimestamp, millisecondSeparator, MinTimestampLength, s[MinTimestampLength])
		}

		frac := s[MinTimestampLength+1:]
		val, ok := parseDigits(frac)
		if !ok {
			return Timestamp{}, fmt.Errorf("%w: millisecond %q is not a non-negative integer",
				ErrMalformedTimestamp, frac)
		}

		// Scale ".5" and ".05" up to whole milliseconds.
		for pad := len(frac); pad < 3; pad++ {
			val *= 10
		}
		ts.Millisecond = val
	}

	return ts, nil
}

// ParseTimestampTime decodes the provided wire timestamp into an instant in the
// provided location.
func ParseTimestampTime(s string, loc *time.Location) (time.Time, error) {
	ts, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}

	return ts.Time(loc), nil
}

// FormatTimestamp renders the provided wire timestamp for display. Timestamps that
// cannot be decoded render as the NoData placeholder.
func FormatTimestamp(s string, loc *time.Location) string {
	t, err := ParseTimestampTime(s, loc)
	if err != nil {
		return NoData
	}

	return t.Format(DisplayLayout)
}
