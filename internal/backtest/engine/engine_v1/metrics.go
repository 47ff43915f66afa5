package engine

import (
	"math"

	"github.com/equitysim/backtest/internal/types"
)

const tradingDaysPerYear = 252

// CalculateMetrics reduces a run's trades and equity curve to a
// performance report. A run with no trades yields the zero report.
func CalculateMetrics(trades []types.Trade, curve []types.EquitySnapshot) types.PerformanceReport {
	var report types.PerformanceReport

	if len(trades) == 0 {
		return report
	}

	report.TotalTrades = len(trades)
	report.MaxProfit = math.Inf(-1)
	report.MaxLoss = math.Inf(1)

	var (
		profitSum    float64
		profitPctSum float64
		daysSum      float64
		profitPcts   = make([]float64, 0, len(trades))
	)

	for _, trade := range trades {
		profitSum += trade.Profit
		profitPctSum += trade.ProfitPct
		daysSum += float64(trade.DaysHeld)
		profitPcts = append(profitPcts, trade.ProfitPct)

		if trade.Profit > 0 {
			report.WinningTrades++
			report.TotalGains += trade.Profit
		} else {
			report.LosingTrades++
			report.TotalLosses += -trade.Profit
		}

		if trade.Profit > report.MaxProfit {
			report.MaxProfit = trade.Profit
		}

		if trade.Profit < report.MaxLoss {
			report.MaxLoss = trade.Profit
		}
	}

	n := float64(len(trades))
	report.WinRate = float64(report.WinningTrades) / n
	report.AvgProfit = profitSum / n
	report.AvgProfitPct = profitPctSum / n
	report.AvgHoldingDays = daysSum / n
	report.ProfitFactor = profitFactor(report.TotalGains, report.TotalLosses)
	report.SharpeRatio = sharpeRatio(profitPcts)
	report.MaxDrawdown = MaxDrawdown(curve)

	return report
}

// profitFactor is gains over losses. With no losses it is +Inf when
// any gain exists, and 0 when there were no gains either.
func profitFactor(gains, losses float64) float64 {
	if losses > 0 {
		return gains / losses
	}

	if gains > 0 {
		return math.Inf(1)
	}

	return 0
}

// sharpeRatio annualizes the per-trade return distribution using the
// sample standard deviation. Fewer than two trades, or a degenerate
// distribution with zero variance, yields 0.
func sharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	n := float64(len(returns))

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= n

	var sumSq float64
	for _, r := range returns {
		d := r - mean
		sumSq += d * d
	}

	stddev := math.Sqrt(sumSq / (n - 1))
	if stddev == 0 {
		return 0
	}

	return mean / stddev * math.Sqrt(tradingDaysPerYear)
}

// MaxDrawdown returns the largest peak-to-trough equity decline as a
// fraction of the peak. An empty curve yields 0.
func MaxDrawdown(curve []types.EquitySnapshot) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0].Equity

	var maxDrawdown float64

	for _, point := range curve {
		if point.Equity > peak {
			peak = point.Equity
		}

		drawdown := (peak - point.Equity) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}
