package strategy

import (
	"math"

	"github.com/equitysim/backtest/internal/indicator"
	"github.com/equitysim/backtest/internal/types"
)

// ScoreAdapter grades each bar on a TWSE-tuned technical scale of roughly
// 0-40 points: stochastic KD carries the most weight (15), then OBV money
// flow (10), moving-average alignment (10), and an RSI adjustment (2.5).
// Both the entry signal and the exit quality read the same scale, so the
// entry threshold and the deterioration threshold stay independently
// configurable.
//
// All indicator series are materialized at construction; per-bar queries
// are pure lookups.
type ScoreAdapter struct {
	k, d    []float64
	obv     []float64
	obvMA5  []float64
	obvMA10 []float64
	ma10    []float64
	ma20    []float64
	ma60    []float64
	rsi     []float64
	closes  []float64
}

// NewScoreAdapter precomputes every indicator the score needs from the
// given bar series.
func NewScoreAdapter(bars []types.PriceBar) *ScoreAdapter {
	closes := indicator.Closes(bars)
	k, d := indicator.KD(bars, 9, 3, 3)
	obv := indicator.OBV(bars)

	return &ScoreAdapter{
		k:       k,
		d:       d,
		obv:     obv,
		obvMA5:  indicator.SMA(obv, 5),
		obvMA10: indicator.SMA(obv, 10),
		ma10:    indicator.SMA(closes, 10),
		ma20:    indicator.SMA(closes, 20),
		ma60:    indicator.SMA(closes, 60),
		rsi:     indicator.RSI(closes, 14),
		closes:  closes,
	}
}

// Name implements Adapter.
func (a *ScoreAdapter) Name() string {
	return "taiwan_technical_score"
}

// EntrySignal implements Adapter.
func (a *ScoreAdapter) EntrySignal(index int) float64 {
	return a.score(index)
}

// ExitQuality implements Adapter.
func (a *ScoreAdapter) ExitQuality(index int) float64 {
	return a.score(index)
}

func (a *ScoreAdapter) score(i int) float64 {
	if i < 0 || i >= len(a.closes) {
		return 0
	}

	return a.kdScore(i) + a.obvScore(i) + a.maScore(i) + a.rsiScore(i)
}

// kdScore grades stochastic crosses, 15 points max. Low-level golden
// crosses score highest; high-level dead crosses go negative.
func (a *ScoreAdapter) kdScore(i int) float64 {
	k, d := a.k[i], a.d[i]
	if math.IsNaN(k) || math.IsNaN(d) {
		return 0
	}

	var score float64

	if i > 0 && !math.IsNaN(a.k[i-1]) && !math.IsNaN(a.d[i-1]) {
		kPrev, dPrev := a.k[i-1], a.d[i-1]

		switch {
		case k < 20 && k > d && kPrev <= dPrev:
			score += 15
		case k < 50 && k > d && kPrev <= dPrev:
			score += 12
		case k > 80 && k < d && kPrev >= dPrev:
			score -= 10
		case k > 50 && k < d && kPrev >= dPrev:
			score -= 5
		case k > d && k < 70:
			score += 8
		case k < d:
			score += 2
		}
	}

	// overbought / oversold correction
	if k > 80 {
		score -= 3
	} else if k < 20 {
		score += 3
	}

	return score
}

// obvScore grades money flow against its own short and medium averages,
// 10 points max.
func (a *ScoreAdapter) obvScore(i int) float64 {
	obv, ma5, ma10 := a.obv[i], a.obvMA5[i], a.obvMA10[i]
	if math.IsNaN(ma5) || math.IsNaN(ma10) {
		return 0
	}

	switch {
	case obv > ma5 && ma5 > ma10:
		return 10
	case obv > ma5:
		return 6
	case obv < ma5 && ma5 < ma10:
		return -5
	}

	return 0
}

// maScore grades trend alignment across the 10/20/60 day averages,
// 10 points max plus a proximity bonus.
func (a *ScoreAdapter) maScore(i int) float64 {
	close, ma10, ma20, ma60 := a.closes[i], a.ma10[i], a.ma20[i], a.ma60[i]
	if math.IsNaN(ma10) || math.IsNaN(ma20) || math.IsNaN(ma60) {
		return 0
	}

	var score float64

	switch {
	case close > ma10 && ma10 > ma20 && ma20 > ma60:
		score += 10
	case close > ma10 && ma10 > ma20:
		score += 7
	case close > ma10:
		score += 4
	case close < ma10 && ma10 < ma20 && ma20 < ma60:
		score -= 5
	case close < ma10:
		score -= 2
	}

	distance := (close - ma10) / ma10
	if distance > -0.03 && distance < 0.03 {
		score += 2
	}

	return score
}

// rsiScore is a small auxiliary adjustment, 2.5 points max.
func (a *ScoreAdapter) rsiScore(i int) float64 {
	rsi := a.rsi[i]
	if math.IsNaN(rsi) {
		return 0
	}

	switch {
	case rsi > 40 && rsi < 60:
		return 2.5
	case rsi > 30 && rsi <= 40:
		return 1.5
	case rsi <= 30:
		return 1.0
	case rsi >= 60 && rsi < 70:
		return 1.0
	}

	return -1.0
}
