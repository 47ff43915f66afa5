package engine

import (
	"context"

	baseengine "github.com/equitysim/backtest/internal/backtest/engine"
	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/strategy"
	"github.com/equitysim/backtest/internal/types"
)

// ComparisonEntry names one configuration of a parameter sweep.
type ComparisonEntry struct {
	Name   string
	Config SimulationConfig
}

// ComparisonResult pairs a sweep entry with its finished run.
type ComparisonResult struct {
	Name   string
	Result *types.BacktestResult
}

// RunComparison runs the same series and strategy under each
// configuration in turn. Runs are independent; each starts from its
// own initial capital. The series is loaded once and shared.
func RunComparison(ctx context.Context, bars []types.PriceBar, adapter strategy.Adapter, entries []ComparisonEntry) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(entries))

	for _, entry := range entries {
		eng := NewSimulationEngineV1WithLogger(logger.NewNopLogger())

		if err := eng.SetConfig(entry.Config); err != nil {
			return nil, err
		}

		if err := eng.SetBars("", bars); err != nil {
			return nil, err
		}

		if err := eng.LoadStrategy(adapter); err != nil {
			return nil, err
		}

		result, err := eng.Run(ctx, baseengine.LifecycleCallbacks{})
		if err != nil {
			return nil, err
		}

		results = append(results, ComparisonResult{Name: entry.Name, Result: result})
	}

	return results, nil
}
