package types

import "time"

// EquitySnapshot is one point on the equity curve: total equity and its
// cash/position split at one simulated bar. One snapshot is taken per
// bar, before any trade executes on that bar.
type EquitySnapshot struct {
	Date          time.Time `csv:"date" yaml:"date"`
	Equity        float64   `csv:"equity" yaml:"equity"`
	Cash          float64   `csv:"cash" yaml:"cash"`
	PositionValue float64   `csv:"position_value" yaml:"position_value"`
}
