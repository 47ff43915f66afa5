package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitReason enumerates why a position was closed.
type ExitReason string

const (
	ExitReasonStopLoss            ExitReason = "stop_loss"
	ExitReasonTakeProfit          ExitReason = "take_profit"
	ExitReasonSignalDeterioration ExitReason = "signal_deterioration"
	ExitReasonEndOfPeriod         ExitReason = "end_of_period"
)

// Position represents the single open long holding of a simulation run.
// At most one Position exists at any time.
type Position struct {
	EntryDate time.Time `csv:"entry_date"`
	// EntryPrice is the fill price at entry, before costs.
	EntryPrice float64 `csv:"entry_price"`
	// Shares is always a multiple of the configured lot size.
	Shares int64 `csv:"shares"`
	// EntryCost is the transaction cost paid at entry, retained for
	// profit computation at exit.
	EntryCost float64 `csv:"entry_cost"`
	// EntryIndex is the bar index of the entry, used for holding
	// duration and periodic reassessment gating.
	EntryIndex int `csv:"entry_index"`
	// EntrySignalScore is the strategy signal at entry (diagnostic only).
	EntrySignalScore float64 `csv:"entry_signal_score"`
}

// Outlay returns the total capital committed at entry: principal plus
// entry cost. Strictly positive for any opened position.
func (p *Position) Outlay() float64 {
	principal := decimal.NewFromFloat(p.EntryPrice).Mul(decimal.NewFromInt(p.Shares))
	outlay, _ := principal.Add(decimal.NewFromFloat(p.EntryCost)).Float64()

	return outlay
}

// MarketValue returns the mark-to-market value of the holding at price.
func (p *Position) MarketValue(price float64) float64 {
	return float64(p.Shares) * price
}

// Return returns the fractional price return relative to the entry price,
// before costs.
func (p *Position) Return(price float64) float64 {
	return (price - p.EntryPrice) / p.EntryPrice
}

// Trade is an immutable record created the moment a position is closed.
type Trade struct {
	EntryDate time.Time `csv:"entry_date" yaml:"entry_date"`
	ExitDate  time.Time `csv:"exit_date" yaml:"exit_date"`
	EntryPrice float64  `csv:"entry_price" yaml:"entry_price"`
	ExitPrice  float64  `csv:"exit_price" yaml:"exit_price"`
	Shares     int64    `csv:"shares" yaml:"shares"`
	// Profit is signed and net of both entry and exit costs.
	Profit float64 `csv:"profit" yaml:"profit"`
	// ProfitPct is Profit relative to the total entry outlay.
	ProfitPct  float64    `csv:"profit_pct" yaml:"profit_pct"`
	DaysHeld   int        `csv:"days_held" yaml:"days_held"`
	ExitReason ExitReason `csv:"exit_reason" yaml:"exit_reason"`
}
