package fusion

import (
	"context"
	"fmt"
	"log/slog"

	"fusecli/internal/config"
	"fusecli/internal/dataset"
	"fusecli/internal/exporter"
	"fusecli/internal/loader"
)

// Result summarizes a completed pipeline run.
type Result struct {
	OutputPath string
	Rows       int
	Regions    int
}

// Run executes the fusion pipeline end to end: load projections, filter
// to the configured model and scenario, melt, interpolate onto the
// target year range, load the price table, join and write the combined
// CSV. The first failing stage aborts the run.
func Run(ctx context.Context, cfg config.PipelineConfig, logger *slog.Logger) (*Result, error) {
	popData, err := loader.LoadPopulation(cfg.PopulationFile)
	if err != nil {
		return nil, fmt.Errorf("load population data: %w", err)
	}
	rows, cols := popData.Shape()
	logger.InfoContext(ctx, "loaded population data",
		slog.String("path", cfg.PopulationFile),
		slog.Int("rows", rows),
		slog.Int("columns", cols))

	filtered := FilterPopulation(popData, cfg.Model, cfg.Scenario)
	logger.InfoContext(ctx, "filtered population data",
		slog.String("model", cfg.Model),
		slog.String("scenario", cfg.Scenario),
		slog.Int("rows", filtered.NumRows()))
	if filtered.NumRows() == 0 {
		logger.WarnContext(ctx, "no population rows match the configured model and scenario")
	}

	melted, err := MeltPopulation(filtered)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "melted population data", slog.Int("rows", melted.NumRows()))

	interpolated, err := Interpolate(melted, cfg.StartYear, cfg.EndYear)
	if err != nil {
		return nil, err
	}
	yearsPerRegion := cfg.EndYear - cfg.StartYear
	regions := 0
	if yearsPerRegion > 0 {
		regions = interpolated.NumRows() / yearsPerRegion
	}
	logger.InfoContext(ctx, "interpolated population data",
		slog.Int("rows", interpolated.NumRows()),
		slog.Int("regions", regions),
		slog.Int("start_year", cfg.StartYear),
		slog.Int("end_year", cfg.EndYear))

	priceData, err := loader.LoadStata(cfg.EnergyPriceFile)
	if err != nil {
		return nil, fmt.Errorf("load energy price data: %w", err)
	}
	logger.InfoContext(ctx, "loaded energy price data",
		slog.String("path", cfg.EnergyPriceFile),
		slog.Int("rows", priceData.NumRows()))

	combined, err := Merge(interpolated, priceData)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "merged population and energy price data",
		slog.Int("rows", combined.NumRows()))

	writer := exporter.NewCSVWriter(logger)
	outputPath, err := writer.WriteDataset(ctx, cfg.OutputDir, cfg.OutputFileName, combined)
	if err != nil {
		return nil, fmt.Errorf("write combined data: %w", err)
	}

	return &Result{
		OutputPath: outputPath,
		Rows:       combined.NumRows(),
		Regions:    regions,
	}, nil
}

// Combined is a convenience for tests: the pipeline minus load and
// write, operating on already-loaded datasets.
func Combined(popData, priceData dataset.Dataset, cfg config.PipelineConfig) (dataset.Dataset, error) {
	filtered := FilterPopulation(popData, cfg.Model, cfg.Scenario)
	melted, err := MeltPopulation(filtered)
	if err != nil {
		return dataset.Dataset{}, err
	}
	interpolated, err := Interpolate(melted, cfg.StartYear, cfg.EndYear)
	if err != nil {
		return dataset.Dataset{}, err
	}
	return Merge(interpolated, priceData)
}
