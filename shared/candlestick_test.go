package shared

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestCandleTrend(t *testing.T) {
	start := time.Date(2025, time.May, 21, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		values []float64
		trend  Trend
		candle Candle
	}{
		{
			name:   "single value",
			values: []float64{48},
			trend:  Steady,
			candle: Candle{BucketStart: start, Open: 48, High: 48, Low: 48, Close: 48},
		},
		{
			name:   "rising",
			values: []float64{47, 46, 49, 48},
			trend:  Rising,
			candle: Candle{BucketStart: start, Open: 47, High: 49, Low: 46, Close: 48},
		},
		{
			name:   "falling",
			values: []float64{52, 54, 50},
			trend:  Falling,
			candle: Candle{BucketStart: start, Open: 52, High: 54, Low: 50, Close: 50},
		},
		{
			name:   "flat close",
			values: []float64{50, 44, 51, 50},
			trend:  Steady,
			candle: Candle{BucketStart: start, Open: 50, High: 51, Low: 44, Close: 50},
		},
	}

	for _, test := range tests {
		candle := NewCandle(start, test.values)
		assert.Equal(t, candle, test.candle)

		trend := candle.FetchTrend()
		if trend != test.trend {
			t.Errorf("%s: expected %s trend, got %s", test.name, test.trend, trend)
		}

		assert.True(t, candle.Low <= candle.Open && candle.Open <= candle.High)
		assert.True(t, candle.Low <= candle.Close && candle.Close <= candle.High)
		assert.Equal(t, candle.Range(), candle.High-candle.Low)
	}
}
