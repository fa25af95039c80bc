// Command cleaner runs the offline cleaning pipeline: it reads the raw
// mainstream and sports-car datasets, normalizes and reconciles them,
// and writes the cleaned CSVs used by the aggregation tools.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"autotrends/internal/classify"
	"autotrends/internal/config"
	"autotrends/internal/exporter"
	"autotrends/internal/infrastructure"
	"autotrends/internal/ingest"
	"autotrends/internal/reconcile"
	"autotrends/internal/validation"
)

func main() {
	vehiclesPath := flag.String("vehicles", "", "raw mainstream dataset (defaults from config)")
	sportsPath := flag.String("sports", "", "raw sports dataset (defaults from config)")
	outDir := flag.String("out", "", "output directory for cleaned CSVs (defaults from config)")
	yearMin := flag.Int("year-min", 0, "minimum model year to keep (defaults from config)")
	yearMax := flag.Int("year-max", 0, "maximum model year to keep (defaults from config)")
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
		*vehiclesPath = cfg.VehiclePath()
	}
	if *sportsPath == "" {
		*sportsPath = cfg.SportsPath()
	}
	if *outDir == "" {
		*outDir = cfg.Paths.CleanedDir
	}
	if *yearMin == 0 {
		*yearMin = cfg.Cleaning.YearMin
	}
	if *yearMax == 0 {
		*yearMax = cfg.Cleaning.YearMax
	}

	logger.Info("Starting dataset cleaning",
		slog.String("vehicles", *vehiclesPath),
		slog.String("sports", *sportsPath),
		slog.String("out", *outDir),
		slog.Int("year_min", *yearMin),
		slog.Int("year_max", *yearMax))

	validator := validation.NewFileValidator(logger)
	for _, p := range []string{*vehiclesPath, *sportsPath} {
		if err := validator.ValidateDatasetFile(p); err != nil {
			logger.Error("Dataset file validation failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if err := validator.ValidateOutputDirectory(*outDir); err != nil {
		logger.Error("Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	loader := ingest.NewLoader(logger, *yearMin, *yearMax)

	vehicles, vehicleReport, err := loader.LoadVehicles(ctx, *vehiclesPath)
	if err != nil {
		logger.Error("Failed to load vehicle dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}
	curated, sportsReport, err := loader.LoadSports(ctx, *sportsPath)
	if err != nil {
		logger.Error("Failed to load sports dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	classifier := classify.New(classify.DefaultConfig())
	mainstream, performance := classifier.Partition(vehicles)
	merged, result := reconcile.Merge(curated, reconcile.MapAllToSports(performance), logger)

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteVehicles(filepath.Join(*outDir, "vehicles_mainstream.csv"), mainstream); err != nil {
		logger.Error("Failed to write mainstream CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := writer.WriteSports(filepath.Join(*outDir, "sports_cars_merged.csv"), merged); err != nil {
		logger.Error("Failed to write sports CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Cleaning complete",
		slog.Int("vehicles_read", vehicleReport.RowsRead),
		slog.Int("vehicles_kept", vehicleReport.Kept),
		slog.Int("sports_read", sportsReport.RowsRead),
		slog.Int("sports_kept", sportsReport.Kept),
		slog.Int("performance_reclassified", result.DerivedIn),
		slog.Int("merged_total", result.MergedOut),
		slog.Int("collisions", result.Collisions))

	infrastructure.CloseLogFile()
}
