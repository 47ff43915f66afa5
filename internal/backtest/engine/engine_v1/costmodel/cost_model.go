package costmodel

// CostModel computes the transaction cost for a single fill.
type CostModel interface {
	// Calculate returns the total cost for trading shares at price.
	// isBuy selects the side; sell-only charges apply when false.
	Calculate(price float64, shares int64, isBuy bool) float64
}

type Market string

const (
	MarketTaiwanEquity Market = "taiwan_equity"
	MarketFrictionless Market = "frictionless"
)

var AllMarkets = []any{
	MarketTaiwanEquity,
	MarketFrictionless,
}

// GetCostModelHandler returns the cost model for a market convention.
func GetCostModelHandler(market Market) CostModel {
	switch market {
	case MarketTaiwanEquity:
		return NewTaiwanEquityCost()
	case MarketFrictionless:
		return NewZeroCost()
	default:
		return NewTaiwanEquityCost()
	}
}
