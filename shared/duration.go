package shared

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// NotAvailable is the placeholder for durations that cannot be calculated.
	NotAvailable = "N/A"
)

var (
	// unavailableSentinels are wire values the backend sends in place of a timestamp.
	unavailableSentinels = map[string]struct{}{
		NotAvailable: {},
		NoData:       {},
		"null":       {},
	}
)

// IsUnavailable returns whether the provided wire timestamp is empty or a known
// placeholder for a missing value.
func IsUnavailable(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}

	_, ok := unavailableSentinels[s]
	return ok
}

// FormatElapsedSince formats the time elapsed from since to now as HH:MM:SS. The hour
// group is not wrapped at 24. A since later than now formats as 00:00:00.
func FormatElapsedSince(since time.Time, now time.Time) string {
	elapsed := now.Sub(since)
	if elapsed < 0 {
		elapsed = 0
	}

	secs := int64(elapsed / time.Second)
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatElapsed formats the time elapsed since the provided wire timestamp as HH:MM:SS.
// Empty, placeholder or malformed timestamps format as NotAvailable.
func FormatElapsed(ts string, now time.Time, loc *time.Location) string {
	if IsUnavailable(ts) {
		return NotAvailable
	}

	since, err := ParseTimestampTime(ts, loc)
	if err != nil {
		return NotAvailable
	}

	return FormatElapsedSince(since, now)
}

// ParseElapsed decodes a HH:MM:SS elapsed string back into a duration.
func ParseElapsed(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("elapsed %q: expected HH:MM:SS", s)
	}

	var errs error
	vals := make([]int, len(parts))
	for idx := range parts {
		val, ok := parseDigits(parts[idx])
		if !ok {
			errs = errors.Join(errs, fmt.Errorf("elapsed %q: group %d is not a non-negative integer", s, idx))
			continue
		}
		vals[idx] = val
	}
	if errs != nil {
		return 0, errs
	}

	if vals[1] > 59 || vals[2] > 59 {
		return 0, fmt.Errorf("elapsed %q: minutes and seconds must be below 60", s)
	}

	return time.Duration(vals[0])*time.Hour + time.Duration(vals[1])*time.Minute +
		time.Duration(vals[2])*time.Second, nil
}
