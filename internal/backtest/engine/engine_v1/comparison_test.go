package engine

import (
	"context"
	"testing"

	"github.com/equitysim/backtest/internal/strategy"
	"github.com/stretchr/testify/suite"
)

type ComparisonTestSuite struct {
	suite.Suite
}

func TestComparisonSuite(t *testing.T) {
	suite.Run(t, new(ComparisonTestSuite))
}

func (suite *ComparisonTestSuite) TestRunComparison() {
	bars := barsWithCloses(100, 108, 95, 103, 116, 100, 92, 99, 110, 100)
	adapter := strategy.NewSliceAdapter("fixture", constant(30, 10), constant(30, 10))

	tight := frictionlessConfig()
	tight.StopLossThreshold = -0.03
	tight.TakeProfitThreshold = 0.05

	wide := frictionlessConfig()
	wide.StopLossThreshold = -0.20
	wide.TakeProfitThreshold = 0.30

	results, err := RunComparison(context.Background(), bars, adapter, []ComparisonEntry{
		{Name: "tight", Config: tight},
		{Name: "wide", Config: wide},
	})
	suite.Require().NoError(err)
	suite.Require().Len(results, 2)

	suite.Equal("tight", results[0].Name)
	suite.Equal("wide", results[1].Name)

	// Tight exit bands churn more trades than wide ones on the same
	// series.
	suite.Greater(len(results[0].Result.Trades), len(results[1].Result.Trades))

	for _, r := range results {
		suite.NotEmpty(r.Result.ID)
		suite.Equal("fixture", r.Result.Strategy)
	}
}

func (suite *ComparisonTestSuite) TestRunComparisonRejectsBadConfig() {
	bars := barsWithCloses(100, 101)
	adapter := strategy.NewSliceAdapter("fixture", constant(0, 2), constant(0, 2))

	bad := frictionlessConfig()
	bad.InitialCapital = 0

	_, err := RunComparison(context.Background(), bars, adapter, []ComparisonEntry{
		{Name: "bad", Config: bad},
	})
	suite.Error(err)
}
