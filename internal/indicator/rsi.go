package indicator

import "math"

// RSI computes the Relative Strength Index over closes using Wilder
// smoothing. The first period values are NaN.
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}

	out[0] = math.NaN()

	var avgGain, avgLoss float64

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]

		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		if i <= period {
			avgGain += gain
			avgLoss += loss

			if i < period {
				out[i] = math.NaN()
				continue
			}

			avgGain /= float64(period)
			avgLoss /= float64(period)
		} else {
			avgGain = (avgGain*float64(period-1) + gain) / float64(period)
			avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		}

		if avgLoss == 0 {
			out[i] = 100
		} else {
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}

	return out
}
