package datasource

import (
	"github.com/equitysim/backtest/internal/types"
	"github.com/equitysim/backtest/pkg/errors"
)

// DataSource loads a daily price series. The engine materializes the
// whole series before simulation starts; nothing streams into the hot
// loop.
type DataSource interface {
	// Initialize points the data source at a data file (CSV or parquet).
	Initialize(path string) error
	// ReadAll returns the full series in chronological order.
	ReadAll() ([]types.PriceBar, error)
	// Count returns the number of bars available.
	Count() (int, error)
	// Close releases any resources held by the data source.
	Close() error
}

// ValidateSeries rejects a series the engine must not run on:
// non-chronological or duplicate dates, non-positive prices, negative
// volume. The returned error names the offending bar index.
func ValidateSeries(bars []types.PriceBar) error {
	for i, bar := range bars {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return errors.Newf(errors.ErrCodeNonPositivePrice,
				"bar %d (%s) has a non-positive price: open=%f high=%f low=%f close=%f",
				i, bar.Date.Format("2006-01-02"), bar.Open, bar.High, bar.Low, bar.Close)
		}

		if bar.Volume < 0 {
			return errors.Newf(errors.ErrCodeNegativeVolume,
				"bar %d (%s) has negative volume: %d",
				i, bar.Date.Format("2006-01-02"), bar.Volume)
		}

		if i > 0 && !bars[i-1].Date.Before(bar.Date) {
			return errors.Newf(errors.ErrCodeNonMonotonicDates,
				"bar %d (%s) does not advance past bar %d (%s)",
				i, bar.Date.Format("2006-01-02"), i-1, bars[i-1].Date.Format("2006-01-02"))
		}
	}

	return nil
}
