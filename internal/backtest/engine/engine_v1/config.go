package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/equitysim/backtest/internal/backtest/engine/engine_v1/costmodel"
	"github.com/equitysim/backtest/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v2"
)

const (
	DefaultInitialCapital       = 700000.0
	DefaultPositionSizeFraction = 0.3
	DefaultStopLossThreshold    = -0.08
	DefaultTakeProfitThreshold  = 0.15
	DefaultRebalanceInterval    = 5
	DefaultLotSize              = 1000
	DefaultWarmupBars           = 60
	DefaultEntryThreshold       = 25.0
	DefaultExitDeterioration    = 20.0
)

type SimulationConfig struct {
	InitialCapital       float64          `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting cash for the simulation,minimum=0" validate:"gt=0"`
	Market               costmodel.Market `yaml:"market" json:"market" jsonschema:"title=Market,description=Cost model applied to every fill"`
	CommissionRate       float64          `yaml:"commission_rate" json:"commission_rate" jsonschema:"title=Commission Rate,minimum=0" validate:"gte=0"`
	TaxRate              float64          `yaml:"tax_rate" json:"tax_rate" jsonschema:"title=Transaction Tax Rate,description=Applied to sells only,minimum=0" validate:"gte=0"`
	SlippageRate         float64          `yaml:"slippage_rate" json:"slippage_rate" jsonschema:"title=Slippage Rate,minimum=0" validate:"gte=0"`
	CommissionFloor      float64          `yaml:"commission_floor" json:"commission_floor" jsonschema:"title=Commission Floor,minimum=0" validate:"gte=0"`
	PositionSizeFraction float64          `yaml:"position_size_fraction" json:"position_size_fraction" jsonschema:"title=Position Size Fraction,description=Fraction of current cash committed per entry,minimum=0,maximum=1"`
	StopLossThreshold    float64          `yaml:"stop_loss_threshold" json:"stop_loss_threshold" jsonschema:"title=Stop Loss Threshold,description=Negative return that forces an exit"`
	TakeProfitThreshold  float64          `yaml:"take_profit_threshold" json:"take_profit_threshold" jsonschema:"title=Take Profit Threshold,description=Positive return that forces an exit"`
	RebalanceInterval    int              `yaml:"rebalance_interval" json:"rebalance_interval" jsonschema:"title=Rebalance Interval,description=Holding days between signal reassessments,minimum=1"`
	LotSize              int64            `yaml:"lot_size" json:"lot_size" jsonschema:"title=Lot Size,description=Share quantity granularity,minimum=1"`
	WarmupBars           int              `yaml:"warmup_bars" json:"warmup_bars" jsonschema:"title=Warmup Bars,description=Bars skipped before trading starts,minimum=0" validate:"gte=0"`
	EntryThreshold       float64          `yaml:"entry_threshold" json:"entry_threshold" jsonschema:"title=Entry Threshold,description=Minimum entry signal score to open a position"`
	ExitDeterioration    float64          `yaml:"exit_deterioration_threshold" json:"exit_deterioration_threshold" jsonschema:"title=Exit Deterioration Threshold,description=Exit quality below this at a reassessment closes the position"`

	// Optional trading window. Bars outside it are still used for
	// indicator warm-up but never traded.
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time"`
}

// UnmarshalYAML implements custom unmarshaling for SimulationConfig.
func (c *SimulationConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		InitialCapital       float64          `yaml:"initial_capital"`
		Market               costmodel.Market `yaml:"market"`
		CommissionRate       float64          `yaml:"commission_rate"`
		TaxRate              float64          `yaml:"tax_rate"`
		SlippageRate         float64          `yaml:"slippage_rate"`
		CommissionFloor      float64          `yaml:"commission_floor"`
		PositionSizeFraction float64          `yaml:"position_size_fraction"`
		StopLossThreshold    float64          `yaml:"stop_loss_threshold"`
		TakeProfitThreshold  float64          `yaml:"take_profit_threshold"`
		RebalanceInterval    int              `yaml:"rebalance_interval"`
		LotSize              int64            `yaml:"lot_size"`
		WarmupBars           *int             `yaml:"warmup_bars"`
		EntryThreshold       *float64         `yaml:"entry_threshold"`
		ExitDeterioration    *float64         `yaml:"exit_deterioration_threshold"`
		StartTime            *time.Time       `yaml:"start_time"`
		EndTime              *time.Time       `yaml:"end_time"`
	}

	config := Config{
		InitialCapital:       DefaultInitialCapital,
		Market:               costmodel.MarketTaiwanEquity,
		CommissionRate:       costmodel.DefaultCommissionRate,
		TaxRate:              costmodel.DefaultTaxRate,
		SlippageRate:         costmodel.DefaultSlippageRate,
		CommissionFloor:      costmodel.DefaultCommissionFloor,
		PositionSizeFraction: DefaultPositionSizeFraction,
		StopLossThreshold:    DefaultStopLossThreshold,
		TakeProfitThreshold:  DefaultTakeProfitThreshold,
		RebalanceInterval:    DefaultRebalanceInterval,
		LotSize:              DefaultLotSize,
	}
	if err := unmarshal(&config); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse configuration", err)
	}

	c.InitialCapital = config.InitialCapital
	c.Market = config.Market
	c.CommissionRate = config.CommissionRate
	c.TaxRate = config.TaxRate
	c.SlippageRate = config.SlippageRate
	c.CommissionFloor = config.CommissionFloor
	c.PositionSizeFraction = config.PositionSizeFraction
	c.StopLossThreshold = config.StopLossThreshold
	c.TakeProfitThreshold = config.TakeProfitThreshold
	c.RebalanceInterval = config.RebalanceInterval
	c.LotSize = config.LotSize

	c.WarmupBars = DefaultWarmupBars
	if config.WarmupBars != nil {
		c.WarmupBars = *config.WarmupBars
	}

	c.EntryThreshold = DefaultEntryThreshold
	if config.EntryThreshold != nil {
		c.EntryThreshold = *config.EntryThreshold
	}

	c.ExitDeterioration = DefaultExitDeterioration
	if config.ExitDeterioration != nil {
		c.ExitDeterioration = *config.ExitDeterioration
	}

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// ParseConfig parses YAML configuration content into a SimulationConfig.
func ParseConfig(content string) (SimulationConfig, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return config, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse configuration", err)
	}

	return config, nil
}

// Validate rejects configurations the engine cannot safely run on.
func (c *SimulationConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "configuration failed validation", err)
	}

	if c.InitialCapital <= 0 {
		return errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %f", c.InitialCapital)
	}

	if c.PositionSizeFraction <= 0 || c.PositionSizeFraction > 1 {
		return errors.Newf(errors.ErrCodeInvalidPositionFraction, "position size fraction must be in (0, 1], got %f", c.PositionSizeFraction)
	}

	if c.StopLossThreshold >= 0 {
		return errors.Newf(errors.ErrCodeInvalidStopLoss, "stop loss threshold must be negative, got %f", c.StopLossThreshold)
	}

	if c.TakeProfitThreshold <= 0 {
		return errors.Newf(errors.ErrCodeInvalidTakeProfit, "take profit threshold must be positive, got %f", c.TakeProfitThreshold)
	}

	if c.RebalanceInterval < 1 {
		return errors.Newf(errors.ErrCodeInvalidRebalanceDays, "rebalance interval must be at least 1, got %d", c.RebalanceInterval)
	}

	if c.LotSize < 1 {
		return errors.Newf(errors.ErrCodeInvalidLotSize, "lot size must be at least 1, got %d", c.LotSize)
	}

	if c.WarmupBars < 0 {
		return errors.Newf(errors.ErrCodeInvalidWarmup, "warmup bars must be non-negative, got %d", c.WarmupBars)
	}

	if c.ExitDeterioration > c.EntryThreshold {
		return errors.Newf(errors.ErrCodeInvalidThreshold,
			"exit deterioration threshold %f exceeds entry threshold %f", c.ExitDeterioration, c.EntryThreshold)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end time is before start time")
	}

	return nil
}

// CostModel builds the cost model the configuration describes.
func (c *SimulationConfig) CostModel() (costmodel.CostModel, error) {
	if c.Market == costmodel.MarketFrictionless {
		return costmodel.GetCostModelHandler(c.Market), nil
	}

	return costmodel.NewTaiwanEquityCostWithRates(c.CommissionRate, c.TaxRate, c.SlippageRate, c.CommissionFloor)
}

// GenerateSchema generates a JSON schema for the SimulationConfig.
func (c *SimulationConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			if strings.Contains(t.String(), "costmodel.Market") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: costmodel.AllMarkets,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "simulation-engine-v1-config"
	schema.Description = "Configuration schema for SimulationEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the SimulationConfig.
func (c *SimulationConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig returns a SimulationConfig with the stock defaults.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		InitialCapital:       DefaultInitialCapital,
		Market:               costmodel.MarketTaiwanEquity,
		CommissionRate:       costmodel.DefaultCommissionRate,
		TaxRate:              costmodel.DefaultTaxRate,
		SlippageRate:         costmodel.DefaultSlippageRate,
		CommissionFloor:      costmodel.DefaultCommissionFloor,
		PositionSizeFraction: DefaultPositionSizeFraction,
		StopLossThreshold:    DefaultStopLossThreshold,
		TakeProfitThreshold:  DefaultTakeProfitThreshold,
		RebalanceInterval:    DefaultRebalanceInterval,
		LotSize:              DefaultLotSize,
		WarmupBars:           DefaultWarmupBars,
		EntryThreshold:       DefaultEntryThreshold,
		ExitDeterioration:    DefaultExitDeterioration,
		StartTime:            optional.None[time.Time](),
		EndTime:              optional.None[time.Time](),
	}
}

// EmptyConfig returns a zero-valued SimulationConfig.
func EmptyConfig() SimulationConfig {
	return SimulationConfig{
		Market:    costmodel.MarketTaiwanEquity,
		StartTime: optional.None[time.Time](),
		EndTime:   optional.None[time.Time](),
	}
}
