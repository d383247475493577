// Command fusion runs the population/energy-price fusion pipeline:
// SSP population projections are filtered to one model and scenario,
// interpolated onto the target year range and joined against the IEA
// energy price table, producing output/valinfo.csv.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"fusecli/internal/config"
	"fusecli/internal/fusion"
	"fusecli/internal/infrastructure"
)

func main() {
	popFile := flag.String("population", "", "population projection file, .csv or .xlsx (default data/population.csv)")
	priceFile := flag.String("prices", "", "energy price Stata file (default data/IEA_Price_FIN_Clean_gr014_GLOBAL.dta)")
	outDir := flag.String("out-dir", "", "output directory (default output)")
	outName := flag.String("out-name", "", "output file name (default valinfo.csv)")
	model := flag.String("model", "", "projection model to select (default IIASA-WiC POP)")
	scenario := flag.String("scenario", "", "projection scenario to select (default SSP3_v9_130115)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags override configuration.
	if *popFile != "" {
		cfg.Pipeline.PopulationFile = *popFile
	}
	if *priceFile != "" {
		cfg.Pipeline.EnergyPriceFile = *priceFile
	}
	if *outDir != "" {
		cfg.Pipeline.OutputDir = *outDir
	}
	if *outName != "" {
		cfg.Pipeline.OutputFileName = *outName
	}
	if *model != "" {
		cfg.Pipeline.Model = *model
	}
	if *scenario != "" {
		cfg.Pipeline.Scenario = *scenario
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())
	logger.InfoContext(ctx, "Starting data fusion",
		slog.String("population_file", cfg.Pipeline.PopulationFile),
		slog.String("energy_price_file", cfg.Pipeline.EnergyPriceFile),
		slog.String("output_file", cfg.Pipeline.OutputFilePath()),
		slog.String("model", cfg.Pipeline.Model),
		slog.String("scenario", cfg.Pipeline.Scenario))

	result, err := fusion.Run(ctx, cfg.Pipeline, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Data fusion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Data fusion complete",
		slog.String("output_path", result.OutputPath),
		slog.Int("rows", result.Rows),
		slog.Int("regions", result.Regions))
}
