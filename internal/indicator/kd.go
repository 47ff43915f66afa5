package indicator

import (
	"math"

	"github.com/equitysim/backtest/internal/types"
)

// KD computes the stochastic K and D lines over n-bar windows with EMA
// smoothing spans m1 and m2. The (9,3,3) parameterization is the TWSE
// convention. The first n-1 positions are NaN.
func KD(bars []types.PriceBar, n, m1, m2 int) (k []float64, d []float64) {
	rsv := make([]float64, len(bars))

	for i := range bars {
		if i < n-1 {
			rsv[i] = math.NaN()
			continue
		}

		low := bars[i].Low
		high := bars[i].High

		for j := i - n + 1; j < i; j++ {
			if bars[j].Low < low {
				low = bars[j].Low
			}

			if bars[j].High > high {
				high = bars[j].High
			}
		}

		// epsilon keeps a flat window from dividing by zero
		rsv[i] = 100 * (bars[i].Close - low) / (high - low + 1e-10)
	}

	k = smoothNaN(rsv, m1)
	d = smoothNaN(k, m2)

	return k, d
}

// smoothNaN applies EMA smoothing starting from the first non-NaN value.
func smoothNaN(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	alpha := 2.0 / float64(span+1)

	started := false

	var prev float64

	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}

		if !started {
			started = true
			prev = v
		} else {
			prev = alpha*v + (1-alpha)*prev
		}

		out[i] = prev
	}

	return out
}
