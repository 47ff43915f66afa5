package indicator

import "github.com/equitysim/backtest/internal/types"

// OBV computes On-Balance Volume: a running volume total that adds on up
// closes and subtracts on down closes.
func OBV(bars []types.PriceBar) []float64 {
	out := make([]float64, len(bars))
	if len(bars) == 0 {
		return out
	}

	out[0] = 0

	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			out[i] = out[i-1] + float64(bars[i].Volume)
		case bars[i].Close < bars[i-1].Close:
			out[i] = out[i-1] - float64(bars[i].Volume)
		default:
			out[i] = out[i-1]
		}
	}

	return out
}
