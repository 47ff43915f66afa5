package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *ResultStore
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (suite *StoreTestSuite) SetupTest() {
	store, err := NewResultStore(logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(store.Initialize())
	suite.store = store
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func fixtureResult() *types.BacktestResult {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}

	return &types.BacktestResult{
		ID:             "run-1",
		Timestamp:      day(10),
		Strategy:       "fixture",
		DataPath:       "bars.csv",
		InitialCapital: 700000,
		FinalEquity:    727482.25,
		TotalReturn:    727482.25/700000 - 1,
		Trades: []types.Trade{
			{
				EntryDate:  day(1),
				ExitDate:   day(3),
				EntryPrice: 100,
				ExitPrice:  110,
				Shares:     3000,
				Profit:     27482.25,
				ProfitPct:  0.0914,
				DaysHeld:   2,
				ExitReason: types.ExitReasonTakeProfit,
			},
			{
				EntryDate:  day(4),
				ExitDate:   day(5),
				EntryPrice: 110,
				ExitPrice:  105,
				Shares:     2000,
				Profit:     -10500,
				ProfitPct:  -0.047,
				DaysHeld:   1,
				ExitReason: types.ExitReasonEndOfPeriod,
			},
		},
		EquityCurve: []types.EquitySnapshot{
			{Date: day(1), Equity: 700000, Cash: 700000},
			{Date: day(2), Equity: 715000, Cash: 399272.5, PositionValue: 315727.5},
		},
		Metrics: types.PerformanceReport{
			TotalTrades:   2,
			WinningTrades: 1,
			LosingTrades:  1,
			WinRate:       0.5,
			SharpeRatio:   1.2,
			MaxDrawdown:   0.1,
		},
	}
}

func (suite *StoreTestSuite) TestRecordAndGetTrades() {
	suite.Require().NoError(suite.store.Record(fixtureResult()))

	trades, err := suite.store.GetTrades("run-1")
	suite.Require().NoError(err)
	suite.Require().Len(trades, 2)

	suite.Equal(100.0, trades[0].EntryPrice)
	suite.Equal(int64(3000), trades[0].Shares)
	suite.Equal(types.ExitReasonTakeProfit, trades[0].ExitReason)
	suite.Equal(types.ExitReasonEndOfPeriod, trades[1].ExitReason)
	suite.InDelta(-10500.0, trades[1].Profit, 1e-9)
}

func (suite *StoreTestSuite) TestGetTradesUnknownRun() {
	trades, err := suite.store.GetTrades("missing")
	suite.Require().NoError(err)
	suite.Empty(trades)
}

func (suite *StoreTestSuite) TestWriteCSV() {
	suite.Require().NoError(suite.store.Record(fixtureResult()))

	folder := suite.T().TempDir()
	suite.Require().NoError(suite.store.Write(folder, ExportFormatCSV))

	for _, name := range []string{"runs.csv", "trades.csv", "equity_curve.csv"} {
		info, err := os.Stat(filepath.Join(folder, name))
		suite.Require().NoError(err)
		suite.Greater(info.Size(), int64(0))
	}
}

func (suite *StoreTestSuite) TestWriteParquet() {
	suite.Require().NoError(suite.store.Record(fixtureResult()))

	folder := suite.T().TempDir()
	suite.Require().NoError(suite.store.Write(folder, ExportFormatParquet))

	_, err := os.Stat(filepath.Join(folder, "trades.parquet"))
	suite.Require().NoError(err)
}

func (suite *StoreTestSuite) TestCleanup() {
	suite.Require().NoError(suite.store.Record(fixtureResult()))
	suite.Require().NoError(suite.store.Cleanup())

	trades, err := suite.store.GetTrades("run-1")
	suite.Require().NoError(err)
	suite.Empty(trades)
}
