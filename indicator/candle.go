package indicator

import (
	"errors"
	"fmt"
	"time"

	"github.com/dnldd/bsmonitor/shared"
)

var (
	// ErrInvalidInterval is returned when a candle interval is not positive.
	ErrInvalidInterval = errors.New("candle interval must be positive")
	// ErrUnsortedInput is returned when series points are not in ascending time order.
	ErrUnsortedInput = errors.New("series points must be sorted in ascending time order")
)

// floorBucket returns the start of the bucket holding the provided instant.
func floorBucket(t time.Time, interval time.Duration, alignment shared.Alignment, loc *time.Location) time.Time {
	t = t.In(loc)

	switch alignment {
	case shared.GridAlignment:
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return midnight.Add(t.Sub(midnight).Truncate(interval))
	default:
		minutes := int(interval / time.Minute)
		minute := (t.Minute() / minutes) * minutes
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, loc)
	}
}

// AggregateCandles buckets the provided ascending series into candles of the
// provided interval. Buckets without points produce no candle.
func AggregateCandles(points []shared.Point, intervalMinutes int, alignment shared.Alignment, loc *time.Location) ([]shared.Candle, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d minutes", ErrInvalidInterval, intervalMinutes)
	}

	candles := make([]shared.Candle, 0)
	if len(points) == 0 {
		return candles, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	interval := time.Duration(intervalMinutes) * time.Minute
	bucketStart := floorBucket(points[0].Timestamp, interval, alignment, loc)
	bucketEnd := bucketStart.Add(interval)
	values := make([]float64, 0, len(points))

	for idx := range points {
		point := points[idx]
		if idx > 0 && point.Timestamp.Before(points[idx-1].Timestamp) {
			return nil, fmt.Errorf("%w: point %d (%s) precedes point %d (%s)", ErrUnsortedInput,
				idx, point.Timestamp.Format(time.RFC3339), idx-1,
				points[idx-1].Timestamp.Format(time.RFC3339))
		}

		if !point.Timestamp.Before(bucketEnd) {
			if len(values) > 0 {
				candles = append(candles, shared.NewCandle(bucketStart, values))
				values = values[:0]
			}

			// Skip past any empty buckets to the one holding the point.
			skip := point.Timestamp.Sub(bucketStart) / interval
			bucketStart = bucketStart.Add(skip * interval)
			bucketEnd = bucketStart.Add(interval)
		}

		values = append(values, point.Value)
	}

	if len(values) > 0 {
		candles = append(candles, shared.NewCandle(bucketStart, values))
	}

	return candles, nil
}
