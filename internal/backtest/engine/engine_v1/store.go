package engine

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/types"
	"github.com/equitysim/backtest/pkg/errors"
	_ "github.com/marcboeker/go-duckdb"
)

// ResultStore persists finished runs to DuckDB. The engine never
// touches it during the bar walk; results land here after a run
// completes, and can be exported to CSV or parquet from there.
type ResultStore struct {
	logger *logger.Logger
	db     *sql.DB
	sq     squirrel.StatementBuilderType
}

func NewResultStore(logger *logger.Logger) (*ResultStore, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to open result store", err)
	}

	return &ResultStore{
		logger: logger,
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the tables runs are recorded into.
func (s *ResultStore) Initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			run_at TIMESTAMP,
			strategy_name TEXT,
			data_path TEXT,
			initial_capital DOUBLE,
			final_equity DOUBLE,
			total_return DOUBLE,
			total_trades INTEGER,
			win_rate DOUBLE,
			sharpe_ratio DOUBLE,
			max_drawdown DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to create runs table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			run_id TEXT,
			entry_date TIMESTAMP,
			exit_date TIMESTAMP,
			entry_price DOUBLE,
			exit_price DOUBLE,
			shares BIGINT,
			profit DOUBLE,
			profit_pct DOUBLE,
			days_held INTEGER,
			exit_reason TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to create trades table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS equity_curve (
			run_id TEXT,
			date TIMESTAMP,
			equity DOUBLE,
			cash DOUBLE,
			position_value DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to create equity_curve table", err)
	}

	return nil
}

// Record inserts a finished run with its trades and equity curve.
func (s *ResultStore) Record(result *types.BacktestResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	runQuery := s.sq.
		Insert("runs").
		Columns("run_id", "run_at", "strategy_name", "data_path", "initial_capital",
			"final_equity", "total_return", "total_trades", "win_rate", "sharpe_ratio", "max_drawdown").
		Values(result.ID, result.Timestamp, result.Strategy, result.DataPath, result.InitialCapital,
			result.FinalEquity, result.TotalReturn, result.Metrics.TotalTrades,
			result.Metrics.WinRate, result.Metrics.SharpeRatio, result.Metrics.MaxDrawdown)

	query, args, err := runQuery.ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to build run insert", err)
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to insert run", err)
	}

	for _, trade := range result.Trades {
		tradeQuery := s.sq.
			Insert("trades").
			Columns("run_id", "entry_date", "exit_date", "entry_price", "exit_price",
				"shares", "profit", "profit_pct", "days_held", "exit_reason").
			Values(result.ID, trade.EntryDate, trade.ExitDate, trade.EntryPrice, trade.ExitPrice,
				trade.Shares, trade.Profit, trade.ProfitPct, trade.DaysHeld, string(trade.ExitReason))

		query, args, err := tradeQuery.ToSql()
		if err != nil {
			return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to build trade insert", err)
		}

		if _, err := tx.Exec(query, args...); err != nil {
			return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to insert trade", err)
		}
	}

	for _, point := range result.EquityCurve {
		pointQuery := s.sq.
			Insert("equity_curve").
			Columns("run_id", "date", "equity", "cash", "position_value").
			Values(result.ID, point.Date, point.Equity, point.Cash, point.PositionValue)

		query, args, err := pointQuery.ToSql()
		if err != nil {
			return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to build equity insert", err)
		}

		if _, err := tx.Exec(query, args...); err != nil {
			return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to insert equity point", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to commit run", err)
	}

	return nil
}

// GetTrades returns the recorded trades of a run in entry order.
func (s *ResultStore) GetTrades(runID string) ([]types.Trade, error) {
	query, args, err := s.sq.
		Select("entry_date", "exit_date", "entry_price", "exit_price",
			"shares", "profit", "profit_pct", "days_held", "exit_reason").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("entry_date ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to build trades query", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var (
			trade  types.Trade
			reason string
		)

		err := rows.Scan(&trade.EntryDate, &trade.ExitDate, &trade.EntryPrice, &trade.ExitPrice,
			&trade.Shares, &trade.Profit, &trade.ProfitPct, &trade.DaysHeld, &reason)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSimulationStoreFailed, "failed to scan trade", err)
		}

		trade.ExitReason = types.ExitReason(reason)
		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

// ExportFormat selects the file format Write exports tables in.
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
)

// Write exports the recorded tables into the given folder, one file
// per table.
func (s *ResultStore) Write(folder string, format ExportFormat) error {
	duckFormat := "FORMAT CSV, HEADER"
	ext := "csv"

	if format == ExportFormatParquet {
		duckFormat = "FORMAT PARQUET"
		ext = "parquet"
	}

	for _, table := range []string{"runs", "trades", "equity_curve"} {
		path := filepath.Join(folder, fmt.Sprintf("%s.%s", table, ext))

		_, err := s.db.Exec(fmt.Sprintf(`COPY %s TO '%s' (%s)`, table, path, duckFormat))
		if err != nil {
			return errors.Wrapf(errors.ErrCodeSimulationWriteFailed, err, "failed to export %s", table)
		}
	}

	return nil
}

// Cleanup drops all recorded runs.
func (s *ResultStore) Cleanup() error {
	for _, table := range []string{"runs", "trades", "equity_curve"} {
		if _, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return errors.Wrapf(errors.ErrCodeSimulationStoreFailed, err, "failed to clear %s", table)
		}
	}

	return nil
}

// Close releases the underlying database.
func (s *ResultStore) Close() error {
	return s.db.Close()
}
