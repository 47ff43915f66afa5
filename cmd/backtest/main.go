package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	baseengine "github.com/equitysim/backtest/internal/backtest/engine"
	engine "github.com/equitysim/backtest/internal/backtest/engine/engine_v1"
	"github.com/equitysim/backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/equitysim/backtest/internal/logger"
	"github.com/equitysim/backtest/internal/strategy"
	"github.com/equitysim/backtest/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// runAction loads the price series, wires the scoring strategy, runs
// the simulation, and writes the report plus the exported run tables.
func runAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	dataPath := cmd.String("data")
	outputDir := cmd.String("output")
	format := engine.ExportFormat(cmd.String("format"))

	runLog, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	eng := engine.NewSimulationEngineV1WithLogger(runLog)

	if configPath != "" {
		if err := eng.SetConfigPath(configPath); err != nil {
			return err
		}
	} else {
		if err := eng.SetConfig(engine.DefaultConfig()); err != nil {
			return err
		}
	}

	source, err := datasource.NewDuckDBDataSource(":memory:", runLog)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Initialize(dataPath); err != nil {
		return err
	}

	bars, err := source.ReadAll()
	if err != nil {
		return err
	}

	if err := eng.SetBars(dataPath, bars); err != nil {
		return err
	}

	if err := eng.LoadStrategy(strategy.NewScoreAdapter(bars)); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar

	onStart := baseengine.OnRunStartCallback(func(runID, strategyName string, totalBars int) error {
		bar = progressbar.Default(int64(totalBars), "simulating")

		return nil
	})
	onBar := baseengine.OnProcessBarCallback(func(current, total int) error {
		return bar.Set(current)
	})

	result, err := eng.Run(ctx, baseengine.LifecycleCallbacks{
		OnRunStart:   &onStart,
		OnProcessBar: &onBar,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	reportPath := filepath.Join(outputDir, "report.yaml")
	if err := types.WriteBacktestReport(reportPath, *result); err != nil {
		return err
	}

	store, err := engine.NewResultStore(runLog)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		return err
	}

	if err := store.Record(result); err != nil {
		return err
	}

	if err := store.Write(outputDir, format); err != nil {
		return err
	}

	fmt.Printf("run %s finished: %d trades, final equity %.2f (%.2f%%)\n",
		result.ID, len(result.Trades), result.FinalEquity, result.TotalReturn*100)
	fmt.Printf("results written to %s\n", outputDir)

	return nil
}

// schemaAction prints the JSON schema of the engine configuration.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := engine.DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Simulate a scoring strategy over a daily price series",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a simulation and export its results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the price series (CSV or parquet)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the engine configuration YAML. Defaults apply when omitted.",
						Required: false,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Folder the report and run tables are written into",
						Value:    "results",
						Required: false,
					},
					&cli.StringFlag{
						Name:     "format",
						Aliases:  []string{"f"},
						Usage:    "Export format for run tables (csv or parquet)",
						Value:    string(engine.ExportFormatCSV),
						Required: false,
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the engine configuration",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
