package types

import "time"

// PriceBar is one trading day of OHLCV data. Bars are immutable once
// loaded; the engine only reads them.
type PriceBar struct {
	Date   time.Time `csv:"date" yaml:"date"`
	Open   float64   `csv:"open" yaml:"open"`
	High   float64   `csv:"high" yaml:"high"`
	Low    float64   `csv:"low" yaml:"low"`
	Close  float64   `csv:"close" yaml:"close"`
	Volume int64     `csv:"volume" yaml:"volume"`
}
