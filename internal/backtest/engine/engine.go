package engine

import (
	"context"

	"github.com/equitysim/backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/equitysim/backtest/internal/strategy"
	"github.com/equitysim/backtest/internal/types"
)

// Lifecycle callback types for the simulation phases.
// Callbacks returning an error abort the run.

// OnRunStartCallback is called once before the bar walk begins.
// runID is a unique identifier generated for this run.
type OnRunStartCallback func(runID string, strategyName string, totalBars int) error

// OnRunEndCallback is called when the run completes (always called via defer).
type OnRunEndCallback func(err error)

// OnProcessBarCallback is called for each bar processed.
type OnProcessBarCallback func(current int, total int) error

// LifecycleCallbacks holds the lifecycle callbacks for the engine.
// All fields are pointers; nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart   *OnRunStartCallback
	OnRunEnd     *OnRunEndCallback
	OnProcessBar *OnProcessBarCallback
}

type Engine interface {
	// Initialize configures the engine from YAML configuration content.
	Initialize(config string) error
	// SetConfigPath loads the engine configuration from a YAML file.
	SetConfigPath(path string) error
	// SetDataSource sets the data source the engine reads bars from.
	SetDataSource(dataSource datasource.DataSource) error
	// SetDataPath points the engine at a data file and loads it through
	// the configured data source.
	SetDataPath(path string) error
	// LoadStrategy loads the strategy adapter the engine trades on.
	LoadStrategy(adapter strategy.Adapter) error
	// Run executes the simulation over the loaded series.
	// The context can be used to cancel a long run.
	Run(ctx context.Context, callbacks LifecycleCallbacks) (*types.BacktestResult, error)
	// GetConfigSchema returns the JSON schema of the engine configuration.
	GetConfigSchema() (string, error)
}
