package engine

import (
	"context"
	"testing"

	baseengine "github.com/equitysim/backtest/internal/backtest/engine"
	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/strategy"
	"github.com/equitysim/backtest/mocks"
	"github.com/equitysim/backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EngineMockTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
}

func TestEngineMockSuite(t *testing.T) {
	suite.Run(t, new(EngineMockTestSuite))
}

func (suite *EngineMockTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
}

func (suite *EngineMockTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *EngineMockTestSuite) TestSetDataPathReadsThroughDataSource() {
	bars := barsWithCloses(100, 101, 102)

	source := mocks.NewMockDataSource(suite.ctrl)
	source.EXPECT().Initialize("bars.csv").Return(nil)
	source.EXPECT().ReadAll().Return(bars, nil)

	eng := NewSimulationEngineV1WithLogger(logger.NewNopLogger())
	suite.Require().NoError(eng.SetConfig(frictionlessConfig()))
	suite.Require().NoError(eng.SetDataSource(source))
	suite.Require().NoError(eng.SetDataPath("bars.csv"))

	adapter := strategy.NewSliceAdapter("fixture", constant(0, 3), constant(0, 3))
	suite.Require().NoError(eng.LoadStrategy(adapter))

	result, err := eng.Run(context.Background(), baseengine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Len(result.EquityCurve, 3)
	suite.Equal("bars.csv", result.DataPath)
}

func (suite *EngineMockTestSuite) TestSetDataPathPropagatesReadError() {
	source := mocks.NewMockDataSource(suite.ctrl)
	source.EXPECT().Initialize("bars.csv").Return(nil)
	source.EXPECT().ReadAll().Return(nil, errors.New(errors.ErrCodeNoDataFound, "empty"))

	eng := NewSimulationEngineV1WithLogger(logger.NewNopLogger())
	suite.Require().NoError(eng.SetDataSource(source))

	err := eng.SetDataPath("bars.csv")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *EngineMockTestSuite) TestMockAdapterDrivenRun() {
	adapter := mocks.NewMockAdapter(suite.ctrl)
	adapter.EXPECT().Name().Return("mocked").AnyTimes()
	adapter.EXPECT().EntrySignal(gomock.Any()).Return(30.0).AnyTimes()
	adapter.EXPECT().ExitQuality(gomock.Any()).Return(30.0).AnyTimes()

	eng := NewSimulationEngineV1WithLogger(logger.NewNopLogger())
	suite.Require().NoError(eng.SetConfig(frictionlessConfig()))
	suite.Require().NoError(eng.SetBars("", barsWithCloses(100, 101, 102)))
	suite.Require().NoError(eng.LoadStrategy(adapter))

	result, err := eng.Run(context.Background(), baseengine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Equal("mocked", result.Strategy)
	suite.NotEmpty(result.Trades)
}

func (suite *EngineMockTestSuite) TestGeneratedSeriesEndsFlat() {
	gen := mocks.NewDataGenerator(42)
	config := mocks.DefaultConfig()
	config.Count = 300
	bars := gen.Generate(config)

	engConfig := frictionlessConfig()
	engConfig.WarmupBars = 60

	entry := make([]float64, len(bars))
	quality := make([]float64, len(bars))
	for i := range bars {
		entry[i] = 30
		quality[i] = 30
	}
	adapter := strategy.NewSliceAdapter("fixture", entry, quality)

	eng := NewSimulationEngineV1WithLogger(logger.NewNopLogger())
	suite.Require().NoError(eng.SetConfig(engConfig))
	suite.Require().NoError(eng.SetBars("", bars))
	suite.Require().NoError(eng.LoadStrategy(adapter))

	result, err := eng.Run(context.Background(), baseengine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	suite.Len(result.EquityCurve, len(bars)-60)
	suite.Require().NotEmpty(result.Trades)

	// Every run liquidates: total profit reconciles with final cash.
	var total float64
	for _, trade := range result.Trades {
		total += trade.Profit
	}
	suite.InDelta(engConfig.InitialCapital+total, result.FinalEquity, 1e-6)
}
