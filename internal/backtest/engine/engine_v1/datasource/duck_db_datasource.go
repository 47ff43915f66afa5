package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/types"
	"github.com/equitysim/backtest/pkg/errors"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBDataSource creates a DuckDB-backed data source. The path
// parameter is the DuckDB database location (use ":memory:" for an
// in-memory instance); market data is loaded later via Initialize.
func NewDuckDBDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceFailed, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. It creates a view over the data
// file, dispatching on the extension: .parquet uses read_parquet,
// anything else goes through read_csv_auto.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS price_bars;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceFailed, "failed to drop existing view", err)
	}

	reader := "read_csv_auto"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		reader = "read_parquet"
	}

	// Squirrel has no CREATE VIEW builder, so the view is raw SQL.
	query := fmt.Sprintf(`
		CREATE VIEW price_bars AS
		SELECT * FROM %s('%s');
	`, reader, path)

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "failed to load %s", path)
	}

	return nil
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll() ([]types.PriceBar, error) {
	query, args, err := d.sq.
		Select("date", "open", "high", "low", "close", "volume").
		From("price_bars").
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceFailed, "failed to read price bars", err)
	}
	defer rows.Close()

	var bars []types.PriceBar

	for rows.Next() {
		var (
			bar  types.PriceBar
			date time.Time
		)

		if err := rows.Scan(&date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataParseFailed, "failed to scan price bar", err)
		}

		bar.Date = date
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceFailed, "failed while iterating price bars", err)
	}

	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeNoDataFound, "data source contains no price bars")
	}

	return bars, nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count() (int, error) {
	var count int

	err := d.db.QueryRow("SELECT COUNT(*) FROM price_bars").Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeDataSourceFailed, "failed to count price bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
