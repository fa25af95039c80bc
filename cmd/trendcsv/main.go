// Command trendcsv computes the yearly trend tables from the cleaned
// datasets and writes them as report CSVs: sports performance trends,
// mainstream efficiency trends, fuel-type shares, and base-year
// normalized segment indices.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"autotrends/internal/aggregate"
	"autotrends/internal/config"
	"autotrends/internal/exporter"
	"autotrends/internal/indices"
	"autotrends/internal/infrastructure"
	"autotrends/internal/ingest"
	"autotrends/pkg/contracts/domain"
)

func main() {
	vehiclesPath := flag.String("vehicles", "", "cleaned mainstream CSV (defaults to <cleaned_dir>/vehicles_mainstream.csv)")
	sportsPath := flag.String("sports", "", "cleaned sports CSV (defaults to <cleaned_dir>/sports_cars_merged.csv)")
	outDir := flag.String("out", "", "report output directory (defaults from config)")
	percent := flag.Bool("percent", true, "write fuel shares as percentages instead of counts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *vehiclesPath == "" {
		*vehiclesPath = filepath.Join(cfg.Paths.CleanedDir, "vehicles_mainstream.csv")
	}
	if *sportsPath == "" {
		*sportsPath = filepath.Join(cfg.Paths.CleanedDir, "sports_cars_merged.csv")
	}
	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	logger.Info("Starting trend extraction",
		slog.String("vehicles", *vehiclesPath),
		slog.String("sports", *sportsPath),
		slog.String("out", *outDir))

	ctx := context.Background()
	loader := ingest.NewLoader(logger, cfg.Cleaning.YearMin, cfg.Cleaning.YearMax)

	vehicles, _, err := loader.LoadVehicles(ctx, *vehiclesPath)
	if err != nil {
		logger.Error("Failed to load cleaned vehicles", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sports, _, err := loader.LoadSports(ctx, *sportsPath)
	if err != nil {
		logger.Error("Failed to load cleaned sports cars", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)

	sportsTrends, err := aggregate.Yearly(sports, aggregate.Query{
		YearMin: cfg.Cleaning.YearMin,
		YearMax: cfg.Cleaning.YearMax,
		Metrics: []string{domain.ColHorsepower, domain.ColZeroToSixty, domain.ColPrice},
	})
	if err != nil {
		logger.Error("Failed to aggregate sports trends", slog.String("error", err.Error()))
		os.Exit(1)
	}
	mustWrite(logger, writer.WriteTable(filepath.Join(*outDir, "sports_trends.csv"), sportsTrends))

	efficiency, err := aggregate.Yearly(vehicles, aggregate.Query{
		YearMin: cfg.Cleaning.YearMin,
		YearMax: cfg.Cleaning.YearMax,
		Metrics: []string{domain.ColCombinedMPG, domain.ColCO2Tailpipe},
	})
	if err != nil {
		logger.Error("Failed to aggregate efficiency trends", slog.String("error", err.Error()))
		os.Exit(1)
	}
	mustWrite(logger, writer.WriteTable(filepath.Join(*outDir, "efficiency_trends.csv"), efficiency))

	shares := indices.FuelShare(vehicles, indices.ShareQuery{
		YearMin:    cfg.Cleaning.YearMin,
		YearMax:    cfg.Cleaning.YearMax,
		Field:      domain.FieldFuelType,
		UsePercent: *percent,
	})
	mustWrite(logger, writer.WriteShareTable(filepath.Join(*outDir, "fuel_shares.csv"), shares))

	series, err := indices.SegmentIndices(vehicles, sports, indices.SegmentQuery{
		YearMin:           cfg.Cleaning.YearMin,
		YearMax:           cfg.Cleaning.YearMax,
		GasFuelTypes:      cfg.Segments.GasFuelTypes,
		ElectricFuelTypes: cfg.Segments.ElectricFuelTypes,
		IncludeGas:        true,
		IncludeElectric:   true,
		IncludeSports:     true,
	})
	if err != nil {
		logger.Error("Failed to compute segment indices", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, s := range series {
		mustWrite(logger, writer.WriteTable(filepath.Join(*outDir, s.Segment+"_performance_index.csv"), s.Performance))
		mustWrite(logger, writer.WriteTable(filepath.Join(*outDir, s.Segment+"_efficiency_index.csv"), s.Efficiency))
	}

	logger.Info("Trend extraction complete", slog.String("out", *outDir))
	infrastructure.CloseLogFile()
}

func mustWrite(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("Failed to write report", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
