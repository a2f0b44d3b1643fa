package shared

import (
	"time"
)

// FilterWindow returns the records whose instant, as reported by at, falls within
// lookback of now. The relative order of the records is preserved and the provided
// slice is not modified.
func FilterWindow[T any](records []T, at func(T) time.Time, lookback time.Duration, now time.Time) []T {
	filtered := make([]T, 0, len(records))
	cutoff := now.Add(-lookback)

	for idx := range records {
		if !at(records[idx]).Before(cutoff) {
			filtered = append(filtered, records[idx])
		}
	}

	return filtered
}

// SampleTime returns the instant of the provided voltage sample.
func SampleTime(s VoltageSample) time.Time {
	return s.Timestamp
}

// AlarmEventTime returns the instant of the provided alarm event.
func AlarmEventTime(e AlarmEvent) time.Time {
	return e.RecordedAt
}

// AlarmChangeTime returns the instant of the provided alarm change event.
func AlarmChangeTime(e AlarmChangeEvent) time.Time {
	return e.Timestamp
}

// LookbackDays returns the lookback duration covering the provided number of days.
func LookbackDays(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
