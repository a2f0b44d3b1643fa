package indicator

import (
	"errors"
	"fmt"

	"github.com/dnldd/bsmonitor/shared"
)

var (
	// ErrInvalidPeriod is returned when a moving average period is not positive.
	ErrInvalidPeriod = errors.New("moving average period must be positive")
)

// MovingAverage computes the trailing simple moving average of the provided ascending
// series over windows of period points. Positions without a full window produce no
// output.
func MovingAverage(points []shared.Point, period int) ([]shared.MovingAveragePoint, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}

	if len(points) < period {
		return make([]shared.MovingAveragePoint, 0), nil
	}

	averages := make([]shared.MovingAveragePoint, 0, len(points)-period+1)

	var sum float64
	for idx := range points {
		sum += points[idx].Value
		if idx >= period {
			sum -= points[idx-period].Value
		}

		if idx < period-1 {
			continue
		}

		averages = append(averages, shared.MovingAveragePoint{
			Timestamp: points[idx].Timestamp,
			Value:     sum / float64(period),
		})
	}

	return averages, nil
}
