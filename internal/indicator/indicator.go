// Package indicator provides the series-based technical primitives the
// scoring strategy is built on. Every function returns a slice aligned
// with its input; positions that fall inside the warm-up window hold NaN.
package indicator

import (
	"math"

	"github.com/equitysim/backtest/internal/types"
)

// SMA computes a simple moving average over the given period.
func SMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))

	var sum float64

	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i < period-1 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// EMA computes an exponential moving average with smoothing
// alpha = 2/(span+1), seeded on the first value.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// Closes extracts the close series from a bar slice.
func Closes(bars []types.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Close
	}

	return out
}
