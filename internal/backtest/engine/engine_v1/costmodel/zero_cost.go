package costmodel

// ZeroCost implements CostModel with no transaction friction.
type ZeroCost struct{}

// NewZeroCost creates a new frictionless cost model.
func NewZeroCost() CostModel {
	return &ZeroCost{}
}

// Calculate returns 0 for any trade.
func (c *ZeroCost) Calculate(price float64, shares int64, isBuy bool) float64 {
	return 0.0
}
