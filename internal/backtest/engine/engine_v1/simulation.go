package engine

import (
	"github.com/equitysim/backtest/internal/backtest/engine/engine_v1/costmodel"
	"github.com/equitysim/backtest/internal/types"
	"github.com/shopspring/decimal"
)

// portfolio is the mutable simulation state: cash, the open position
// if any, and the records accumulated over the run.
type portfolio struct {
	cash      float64
	position  *types.Position
	trades    []types.Trade
	snapshots []types.EquitySnapshot
	costModel costmodel.CostModel
}

func newPortfolio(initialCapital float64, costModel costmodel.CostModel) *portfolio {
	return &portfolio{
		cash:      initialCapital,
		costModel: costModel,
	}
}

// equity returns the mark-to-market value of cash plus the open
// position at the given price. Open position value ignores exit costs
// until the position actually closes.
func (p *portfolio) equity(price float64) float64 {
	if p.position == nil {
		return p.cash
	}

	return p.cash + float64(p.position.Shares)*price
}

// snapshot records the equity state at the top of a bar, before any
// trade on that bar executes.
func (p *portfolio) snapshot(bar types.PriceBar) {
	equity := p.equity(bar.Close)
	p.snapshots = append(p.snapshots, types.EquitySnapshot{
		Date:          bar.Date,
		Equity:        equity,
		Cash:          p.cash,
		PositionValue: equity - p.cash,
	})
}

// sizeEntry computes the share count for a new position: the committed
// cash rounded down to a whole number of lots. Returns 0 when even one
// lot is out of reach.
func sizeEntry(cash, fraction, price float64, lotSize int64) int64 {
	budget := cash * fraction
	lotCost := price * float64(lotSize)

	lots := int64(budget / lotCost)
	if lots < 1 {
		return 0
	}

	return lots * lotSize
}

// enter opens a position at the bar close. Returns false without
// touching state when the sized order is unaffordable once costs are
// included, or rounds down to zero lots.
func (p *portfolio) enter(bar types.PriceBar, index int, score float64, cfg *SimulationConfig) bool {
	shares := sizeEntry(p.cash, cfg.PositionSizeFraction, bar.Close, cfg.LotSize)
	if shares == 0 {
		return false
	}

	entryCost := p.costModel.Calculate(bar.Close, shares, true)

	total := decimal.NewFromFloat(bar.Close).
		Mul(decimal.NewFromInt(shares)).
		Add(decimal.NewFromFloat(entryCost))
	if total.InexactFloat64() > p.cash {
		return false
	}

	p.cash = decimal.NewFromFloat(p.cash).Sub(total).InexactFloat64()
	p.position = &types.Position{
		EntryDate:        bar.Date,
		EntryPrice:       bar.Close,
		Shares:           shares,
		EntryCost:        entryCost,
		EntryIndex:       index,
		EntrySignalScore: score,
	}

	return true
}

// exit closes the open position at the bar close and records the trade.
func (p *portfolio) exit(bar types.PriceBar, daysHeld int, reason types.ExitReason) types.Trade {
	pos := p.position

	exitCost := p.costModel.Calculate(bar.Close, pos.Shares, false)

	shares := decimal.NewFromInt(pos.Shares)
	exitValue := decimal.NewFromFloat(bar.Close).Mul(shares).
		Sub(decimal.NewFromFloat(exitCost))
	outlay := decimal.NewFromFloat(pos.EntryPrice).Mul(shares).
		Add(decimal.NewFromFloat(pos.EntryCost))

	profit := exitValue.Sub(outlay)
	profitPct := profit.Div(outlay)

	p.cash = decimal.NewFromFloat(p.cash).Add(exitValue).InexactFloat64()

	trade := types.Trade{
		EntryDate:  pos.EntryDate,
		ExitDate:   bar.Date,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  bar.Close,
		Shares:     pos.Shares,
		Profit:     profit.InexactFloat64(),
		ProfitPct:  profitPct.InexactFloat64(),
		DaysHeld:   daysHeld,
		ExitReason: reason,
	}

	p.trades = append(p.trades, trade)
	p.position = nil

	return trade
}

// checkExit decides whether the open position must close on this bar.
// Stop loss wins over take profit, which wins over a scheduled
// reassessment. Both price triggers are inclusive.
func checkExit(pos *types.Position, bar types.PriceBar, daysHeld int, cfg *SimulationConfig, exitQuality func() float64) (types.ExitReason, bool) {
	ret := (bar.Close - pos.EntryPrice) / pos.EntryPrice

	switch {
	case ret <= cfg.StopLossThreshold:
		return types.ExitReasonStopLoss, true
	case ret >= cfg.TakeProfitThreshold:
		return types.ExitReasonTakeProfit, true
	case daysHeld > 0 && daysHeld%cfg.RebalanceInterval == 0:
		if exitQuality() < cfg.ExitDeterioration {
			return types.ExitReasonSignalDeterioration, true
		}
	}

	return "", false
}
