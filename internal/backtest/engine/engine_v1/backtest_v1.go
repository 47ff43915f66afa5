package engine

import (
	"context"
	"os"
	"time"

	"github.com/equitysim/backtest/internal/backtest/engine"
	"github.com/equitysim/backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/strategy"
	"github.com/equitysim/backtest/internal/types"
	"github.com/equitysim/backtest/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulationEngineV1 walks a daily price series bar by bar, holding at
// most one long position, and produces a full run record: trades,
// equity curve, and performance metrics.
type SimulationEngineV1 struct {
	config      SimulationConfig
	initialized bool
	dataSource  datasource.DataSource
	dataPath    string
	bars        []types.PriceBar
	adapter     strategy.Adapter
	log         *logger.Logger
}

func NewSimulationEngineV1() *SimulationEngineV1 {
	log, err := logger.NewLogger()
	if err != nil {
		log = logger.NewNopLogger()
	}

	return &SimulationEngineV1{
		config: EmptyConfig(),
		log:    log,
	}
}

// NewSimulationEngineV1WithLogger is the constructor used by tests and
// parameter sweeps that need a quiet or captured logger.
func NewSimulationEngineV1WithLogger(log *logger.Logger) *SimulationEngineV1 {
	return &SimulationEngineV1{
		config: EmptyConfig(),
		log:    log,
	}
}

var _ engine.Engine = (*SimulationEngineV1)(nil)

// Initialize implements engine.Engine.
func (e *SimulationEngineV1) Initialize(config string) error {
	parsed, err := ParseConfig(config)
	if err != nil {
		return err
	}

	if err := parsed.Validate(); err != nil {
		return err
	}

	e.config = parsed
	e.initialized = true

	e.log.Debug("Simulation engine initialized",
		zap.Float64("initial_capital", parsed.InitialCapital),
		zap.String("market", string(parsed.Market)),
	)

	return nil
}

// SetConfig installs an already-built configuration, validating it
// first. Programmatic callers use this instead of Initialize.
func (e *SimulationEngineV1) SetConfig(config SimulationConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	e.config = config
	e.initialized = true

	return nil
}

// SetConfigPath implements engine.Engine.
func (e *SimulationEngineV1) SetConfigPath(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return e.Initialize(string(content))
}

// SetDataSource implements engine.Engine.
func (e *SimulationEngineV1) SetDataSource(dataSource datasource.DataSource) error {
	if dataSource == nil {
		return errors.New(errors.ErrCodeDataNotInitialized, "data source is nil")
	}

	e.dataSource = dataSource

	return nil
}

// SetDataPath implements engine.Engine. It loads the file through the
// configured data source and validates the resulting series.
func (e *SimulationEngineV1) SetDataPath(path string) error {
	if e.dataSource == nil {
		return errors.New(errors.ErrCodeDataNotInitialized, "set a data source before setting a data path")
	}

	if err := e.dataSource.Initialize(path); err != nil {
		return err
	}

	bars, err := e.dataSource.ReadAll()
	if err != nil {
		return err
	}

	return e.SetBars(path, bars)
}

// SetBars loads an in-memory series directly, bypassing the data
// source. Parameter sweeps use it to avoid re-reading the same file.
func (e *SimulationEngineV1) SetBars(path string, bars []types.PriceBar) error {
	if err := datasource.ValidateSeries(bars); err != nil {
		return err
	}

	e.dataPath = path
	e.bars = bars

	e.log.Debug("Loaded price series",
		zap.String("path", path),
		zap.Int("bars", len(bars)),
	)

	return nil
}

// LoadStrategy implements engine.Engine.
func (e *SimulationEngineV1) LoadStrategy(adapter strategy.Adapter) error {
	if adapter == nil {
		return errors.New(errors.ErrCodeSimulationNoStrategy, "strategy adapter is nil")
	}

	e.adapter = adapter

	return nil
}

// GetConfigSchema implements engine.Engine.
func (e *SimulationEngineV1) GetConfigSchema() (string, error) {
	return e.config.GenerateSchemaJSON()
}

func (e *SimulationEngineV1) preRunCheck() error {
	if !e.initialized {
		return errors.New(errors.ErrCodeInvalidConfiguration, "engine is not initialized")
	}

	if e.adapter == nil {
		return errors.New(errors.ErrCodeSimulationNoStrategy, "no strategy adapter loaded")
	}

	if len(e.bars) == 0 {
		return errors.New(errors.ErrCodeSimulationNoData, "no price series loaded")
	}

	if len(e.bars) <= e.config.WarmupBars {
		return errors.NewInsufficientDataErrorf(e.config.WarmupBars+1, len(e.bars),
			"series has %d bars but warm-up needs more than %d", len(e.bars), e.config.WarmupBars)
	}

	return nil
}

// tradeRange returns the closed bar index range [first, last] the
// engine trades over, honoring warm-up and the optional time window.
func (e *SimulationEngineV1) tradeRange() (int, int) {
	first := e.config.WarmupBars
	last := len(e.bars) - 1

	if e.config.StartTime.IsSome() {
		start := e.config.StartTime.Unwrap()
		for first <= last && e.bars[first].Date.Before(start) {
			first++
		}
	}

	if e.config.EndTime.IsSome() {
		end := e.config.EndTime.Unwrap()
		for last >= first && e.bars[last].Date.After(end) {
			last--
		}
	}

	return first, last
}

// Run implements engine.Engine.
func (e *SimulationEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (result *types.BacktestResult, err error) {
	defer func() {
		if callbacks.OnRunEnd != nil {
			(*callbacks.OnRunEnd)(err)
		}
	}()

	if err = e.preRunCheck(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	first, last := e.tradeRange()
	total := last - first + 1

	if total <= 0 {
		return nil, errors.New(errors.ErrCodeSimulationNoData, "no bars remain inside the trading window")
	}

	if callbacks.OnRunStart != nil {
		if err = (*callbacks.OnRunStart)(runID, e.adapter.Name(), total); err != nil {
			return nil, err
		}
	}

	e.log.Info("Starting simulation",
		zap.String("run_id", runID),
		zap.String("strategy", e.adapter.Name()),
		zap.Int("bars", total),
	)

	model, err := e.config.CostModel()
	if err != nil {
		return nil, err
	}

	pf := newPortfolio(e.config.InitialCapital, model)

	for i := first; i <= last; i++ {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(errors.ErrCodeUnknown, "simulation canceled", ctx.Err())
		default:
		}

		bar := e.bars[i]
		pf.snapshot(bar)

		if pf.position != nil {
			daysHeld := i - pf.position.EntryIndex

			reason, shouldExit := checkExit(pf.position, bar, daysHeld, &e.config, func() float64 {
				return e.adapter.ExitQuality(i)
			})
			if shouldExit {
				trade := pf.exit(bar, daysHeld, reason)
				e.log.Debug("Closed position",
					zap.String("run_id", runID),
					zap.Time("date", bar.Date),
					zap.Float64("price", bar.Close),
					zap.Float64("profit_pct", trade.ProfitPct),
					zap.Int("days_held", trade.DaysHeld),
					zap.String("reason", string(trade.ExitReason)),
				)
			}
		}

		// A position closed above frees the engine to re-enter on the
		// same bar when the signal still qualifies.
		if pf.position == nil {
			score := e.adapter.EntrySignal(i)
			if score >= e.config.EntryThreshold && pf.enter(bar, i, score, &e.config) {
				e.log.Debug("Opened position",
					zap.String("run_id", runID),
					zap.Time("date", bar.Date),
					zap.Float64("price", bar.Close),
					zap.Int64("shares", pf.position.Shares),
					zap.Float64("score", score),
					zap.Float64("cash", pf.cash),
				)
			}
		}

		if callbacks.OnProcessBar != nil {
			if err = (*callbacks.OnProcessBar)(i-first+1, total); err != nil {
				return nil, err
			}
		}
	}

	if pf.position != nil {
		finalBar := e.bars[last]
		daysHeld := last - pf.position.EntryIndex
		trade := pf.exit(finalBar, daysHeld, types.ExitReasonEndOfPeriod)
		e.log.Debug("Forced liquidation at end of period",
			zap.String("run_id", runID),
			zap.Time("date", finalBar.Date),
			zap.Float64("profit_pct", trade.ProfitPct),
		)
	}

	metrics := CalculateMetrics(pf.trades, pf.snapshots)

	result = &types.BacktestResult{
		ID:             runID,
		Timestamp:      time.Now().UTC(),
		Strategy:       e.adapter.Name(),
		DataPath:       e.dataPath,
		InitialCapital: e.config.InitialCapital,
		FinalEquity:    pf.cash,
		TotalReturn:    pf.cash/e.config.InitialCapital - 1,
		Trades:         pf.trades,
		EquityCurve:    pf.snapshots,
		Metrics:        metrics,
	}

	e.log.Info("Simulation finished",
		zap.String("run_id", runID),
		zap.Float64("final_equity", result.FinalEquity),
		zap.Float64("total_return", result.TotalReturn),
		zap.Int("trades", len(result.Trades)),
	)

	return result, nil
}
