package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/equitysim/backtest/internal/strategy Adapter
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/equitysim/backtest/internal/backtest/engine/engine_v1/datasource DataSource
