package gold

import (
	"math"
	"math/rand"
	"time"
)

// Synthetic data bounds. The generator is a bounded random walk around a
// fixed base price; it does not enforce low <= open,close <= high.
const (
	mockBasePrice   = 95000.0
	mockFluctuation = 2000.0
	mockWickRange   = 1500.0
	mockMinVolume   = 100
	mockMaxVolume   = 5000
)

// syntheticSeries generates one OHLCV point per day in [begin, begin+days).
// Used as the silent fallback when the KRX upstream fails; callers tag the
// resulting series SourceSynthetic.
func syntheticSeries(begin time.Time, days int) []PricePoint {
	points := make([]PricePoint, 0, days)

	for i := 0; i < days; i++ {
		date := begin.AddDate(0, 0, i)

		open := mockBasePrice + randRange(-mockFluctuation, mockFluctuation)
		high := open + randRange(0, mockWickRange)
		low := open - randRange(0, mockWickRange)
		closePrice := low + rand.Float64()*(high-low)

		points = append(points, PricePoint{
			Date:   date.Format("2006-01-02"),
			Open:   math.Round(open),
			High:   math.Round(high),
			Low:    math.Round(low),
			Close:  math.Round(closePrice),
			Volume: int64(mockMinVolume + rand.Intn(mockMaxVolume-mockMinVolume+1)),
		})
	}

	return points
}

func randRange(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}
