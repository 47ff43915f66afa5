package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ReportTestSuite struct {
	suite.Suite
	tempDir string
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

func (suite *ReportTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "report_test")
	suite.NoError(err)
	suite.tempDir = tempDir
}

func (suite *ReportTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *ReportTestSuite) TestWriteBacktestReport() {
	result := BacktestResult{
		ID:             "run-1",
		Timestamp:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Strategy:       "score_v1",
		DataPath:       "data/2330.csv",
		InitialCapital: 1000000,
		FinalEquity:    1027482.25,
		TotalReturn:    0.02748225,
		Trades: []Trade{
			{
				EntryDate:  time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
				ExitDate:   time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
				EntryPrice: 100,
				ExitPrice:  110,
				Shares:     3000,
				Profit:     27482.25,
				ProfitPct:  0.0914,
				DaysHeld:   10,
				ExitReason: ExitReasonTakeProfit,
			},
		},
		EquityCurve: []EquitySnapshot{
			{Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), Equity: 1000000, Cash: 1000000},
		},
		Metrics: PerformanceReport{
			TotalTrades:   1,
			WinningTrades: 1,
			WinRate:       1.0,
			AvgProfit:     27482.25,
			TotalGains:    27482.25,
		},
	}

	filePath := filepath.Join(suite.tempDir, "report.yaml")
	err := WriteBacktestReport(filePath, result)
	suite.Require().NoError(err)

	data, err := os.ReadFile(filePath)
	suite.Require().NoError(err)

	var loaded map[string]any
	err = yaml.Unmarshal(data, &loaded)
	suite.Require().NoError(err)

	suite.Equal("run-1", loaded["id"])
	suite.Equal("score_v1", loaded["strategy"])
	// The equity curve stays out of the YAML report.
	suite.NotContains(loaded, "equity_curve")

	trades, ok := loaded["trades"].([]any)
	suite.Require().True(ok)
	suite.Len(trades, 1)
}

func (suite *ReportTestSuite) TestWriteBacktestReportInvalidPath() {
	err := WriteBacktestReport(filepath.Join(suite.tempDir, "missing", "report.yaml"), BacktestResult{})
	suite.Error(err)
}

func (suite *ReportTestSuite) TestPositionHelpers() {
	p := Position{
		EntryDate:  time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		EntryPrice: 100,
		Shares:     3000,
		EntryCost:  727.5,
		EntryIndex: 60,
	}

	suite.InDelta(300727.5, p.Outlay(), 1e-9)
	suite.InDelta(330000, p.MarketValue(110), 1e-9)
	suite.InDelta(0.10, p.Return(110), 1e-12)
	suite.InDelta(-0.08, p.Return(92), 1e-12)
}
