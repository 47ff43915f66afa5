package costmodel

import (
	"github.com/equitysim/backtest/pkg/errors"
)

// Taiwan Stock Exchange retail conventions.
const (
	DefaultCommissionRate  = 0.001425
	DefaultTaxRate         = 0.003
	DefaultSlippageRate    = 0.001
	DefaultCommissionFloor = 20.0
)

// TaiwanEquityCost models TWSE transaction friction: a commission with a
// minimum fee on both sides, a transaction tax on sells only, and a flat
// percentage slippage on both sides.
type TaiwanEquityCost struct {
	commissionRate  float64
	taxRate         float64
	slippageRate    float64
	commissionFloor float64
}

// NewTaiwanEquityCost creates a cost model with the default TWSE rates.
func NewTaiwanEquityCost() CostModel {
	return &TaiwanEquityCost{
		commissionRate:  DefaultCommissionRate,
		taxRate:         DefaultTaxRate,
		slippageRate:    DefaultSlippageRate,
		commissionFloor: DefaultCommissionFloor,
	}
}

// NewTaiwanEquityCostWithRates creates a cost model with custom fractional
// rates. All parameters must be non-negative.
func NewTaiwanEquityCostWithRates(commissionRate, taxRate, slippageRate, commissionFloor float64) (CostModel, error) {
	if commissionRate < 0 || taxRate < 0 || slippageRate < 0 || commissionFloor < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidRate,
			"cost model rates must be non-negative: commission=%f tax=%f slippage=%f floor=%f",
			commissionRate, taxRate, slippageRate, commissionFloor)
	}

	return &TaiwanEquityCost{
		commissionRate:  commissionRate,
		taxRate:         taxRate,
		slippageRate:    slippageRate,
		commissionFloor: commissionFloor,
	}, nil
}

// Calculate implements CostModel.
func (c *TaiwanEquityCost) Calculate(price float64, shares int64, isBuy bool) float64 {
	tradeValue := price * float64(shares)

	commission := tradeValue * c.commissionRate
	if commission < c.commissionFloor {
		commission = c.commissionFloor
	}

	tax := 0.0
	if !isBuy {
		tax = tradeValue * c.taxRate
	}

	slippage := tradeValue * c.slippageRate

	return commission + tax + slippage
}
