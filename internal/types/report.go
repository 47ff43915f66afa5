package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PerformanceReport holds the derived statistics of a finished run. It is
// a pure function of the trade sequence and the equity curve; all fields
// are zero over an empty trade list.
type PerformanceReport struct {
	// Count of all closed trades.
	TotalTrades int `yaml:"total_trades"`
	// Count of trades with positive profit.
	WinningTrades int `yaml:"winning_trades"`
	// Count of trades with zero or negative profit.
	LosingTrades int `yaml:"losing_trades"`
	// Win rate.
	WinRate float64 `yaml:"win_rate"`
	// Average net profit per trade.
	AvgProfit float64 `yaml:"avg_profit"`
	// Average profit relative to entry outlay.
	AvgProfitPct float64 `yaml:"avg_profit_pct"`
	// Largest single-trade profit.
	MaxProfit float64 `yaml:"max_profit"`
	// Largest single-trade loss (minimum profit, signed).
	MaxLoss float64 `yaml:"max_loss"`
	// Gross winning profit over gross absolute losing amount.
	// +Inf when there are winners but no losses.
	ProfitFactor float64 `yaml:"profit_factor"`
	// Annualized Sharpe ratio over the per-trade return series
	// (252-day convention, sample stddev).
	SharpeRatio float64 `yaml:"sharpe_ratio"`
	// Maximum fractional decline of equity from its running peak.
	MaxDrawdown float64 `yaml:"max_drawdown"`
	// Average holding period in days.
	AvgHoldingDays float64 `yaml:"avg_holding_days"`
	// Sum of profits over winning trades.
	TotalGains float64 `yaml:"total_gains"`
	// Absolute sum of profits over losing trades.
	TotalLosses float64 `yaml:"total_losses"`
}

// BacktestResult is the single immutable value a simulation run produces.
type BacktestResult struct {
	// ID is the unique identifier for this run.
	ID string `yaml:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp"`
	// Strategy is the name of the strategy adapter used.
	Strategy string `yaml:"strategy"`
	// DataPath is the market data file used, when loaded from disk.
	DataPath string `yaml:"data_path,omitempty"`
	// InitialCapital is the starting cash.
	InitialCapital float64 `yaml:"initial_capital"`
	// FinalEquity equals the account cash after forced liquidation.
	FinalEquity float64 `yaml:"final_equity"`
	// TotalReturn is FinalEquity/InitialCapital - 1.
	TotalReturn float64 `yaml:"total_return"`
	// Trades is the append-only sequence of closed trades.
	Trades []Trade `yaml:"trades"`
	// EquityCurve has one snapshot per simulated bar. Excluded from the
	// YAML report; the result store exports it as CSV.
	EquityCurve []EquitySnapshot `yaml:"-"`
	// Metrics is the derived performance report.
	Metrics PerformanceReport `yaml:"metrics"`
}

// WriteBacktestReport writes the run report to a YAML file.
func WriteBacktestReport(path string, result BacktestResult) error {
	// Marshal the struct to YAML
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest report to YAML: %w", err)
	}

	// Write the YAML data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest report to file: %w", err)
	}

	return nil
}
