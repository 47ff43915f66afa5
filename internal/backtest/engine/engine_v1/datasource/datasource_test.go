package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/types"
	"github.com/equitysim/backtest/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DataSourceTestSuite struct {
	suite.Suite
	source DataSource
	logger *logger.Logger
}

func TestDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DataSourceTestSuite))
}

func (suite *DataSourceTestSuite) SetupSuite() {
	suite.logger = logger.NewNopLogger()
}

func (suite *DataSourceTestSuite) SetupTest() {
	source, err := NewDuckDBDataSource(":memory:", suite.logger)
	suite.Require().NoError(err)
	suite.source = source
}

func (suite *DataSourceTestSuite) TearDownTest() {
	if suite.source != nil {
		suite.source.Close()
	}
}

func (suite *DataSourceTestSuite) writeCSV(content string) string {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *DataSourceTestSuite) TestReadAllOrdersByDate() {
	// Rows deliberately out of order; ReadAll must sort chronologically.
	path := suite.writeCSV(`date,open,high,low,close,volume
2024-01-03,102,104,101,103,12000
2024-01-01,100,101,99,100,10000
2024-01-02,100,103,100,102,11000
`)

	suite.Require().NoError(suite.source.Initialize(path))

	bars, err := suite.source.ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	assert.Equal(suite.T(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Date.UTC())
	assert.Equal(suite.T(), 100.0, bars[0].Close)
	assert.Equal(suite.T(), 102.0, bars[1].Close)
	assert.Equal(suite.T(), 103.0, bars[2].Close)
	assert.Equal(suite.T(), int64(12000), bars[2].Volume)
}

func (suite *DataSourceTestSuite) TestCount() {
	path := suite.writeCSV(`date,open,high,low,close,volume
2024-01-01,100,101,99,100,10000
2024-01-02,100,103,100,102,11000
`)

	suite.Require().NoError(suite.source.Initialize(path))

	count, err := suite.source.Count()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, count)
}

func (suite *DataSourceTestSuite) TestInitializeMissingFile() {
	err := suite.source.Initialize(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Assert().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeDataSourceFailed))
}

func (suite *DataSourceTestSuite) TestReadAllEmptyFile() {
	path := suite.writeCSV("date,open,high,low,close,volume\n")

	suite.Require().NoError(suite.source.Initialize(path))

	_, err := suite.source.ReadAll()
	suite.Assert().Error(err)
	suite.Assert().True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *DataSourceTestSuite) TestValidateSeries() {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	bar := func(d int, close float64, volume int64) types.PriceBar {
		return types.PriceBar{Date: day(d), Open: close, High: close, Low: close, Close: close, Volume: volume}
	}

	tests := []struct {
		name     string
		bars     []types.PriceBar
		wantCode errors.ErrorCode
	}{
		{
			name: "valid series",
			bars: []types.PriceBar{bar(1, 100, 1000), bar(2, 101, 1000)},
		},
		{
			name:     "duplicate date",
			bars:     []types.PriceBar{bar(1, 100, 1000), bar(1, 101, 1000)},
			wantCode: errors.ErrCodeNonMonotonicDates,
		},
		{
			name:     "backwards date",
			bars:     []types.PriceBar{bar(2, 100, 1000), bar(1, 101, 1000)},
			wantCode: errors.ErrCodeNonMonotonicDates,
		},
		{
			name:     "zero price",
			bars:     []types.PriceBar{bar(1, 0, 1000)},
			wantCode: errors.ErrCodeNonPositivePrice,
		},
		{
			name:     "negative volume",
			bars:     []types.PriceBar{bar(1, 100, -1)},
			wantCode: errors.ErrCodeNegativeVolume,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := ValidateSeries(tc.bars)
			if tc.wantCode == 0 {
				suite.Assert().NoError(err)
			} else {
				suite.Require().Error(err)
				suite.Assert().True(errors.HasCode(err, tc.wantCode))
			}
		})
	}
}
