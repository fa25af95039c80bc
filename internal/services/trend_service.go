package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"autotrends/internal/aggregate"
	"autotrends/internal/classify"
	apperrors "autotrends/internal/errors"
	"autotrends/internal/exporter"
	"autotrends/internal/indices"
	"autotrends/internal/infrastructure"
	"autotrends/internal/ingest"
	"autotrends/internal/reconcile"
	"autotrends/internal/validation"
	"autotrends/pkg/contracts/domain"
)

// DatasetInfo summarizes the currently loaded datasets.
type DatasetInfo struct {
	VehicleCount    int               `json:"vehicle_count"`
	SportsCount     int               `json:"sports_count"`
	LoadedAt        time.Time         `json:"loaded_at"`
	VehicleReport   *ingest.Report    `json:"vehicle_report,omitempty"`
	SportsReport    *ingest.Report    `json:"sports_report,omitempty"`
	ReconcileResult *reconcile.Result `json:"reconcile,omitempty"`
}

// TrendService loads both datasets, runs the reconciliation pipeline and
// serves aggregated trend tables. Refresh swaps the in-memory datasets
// atomically; readers never see a partial load.
type TrendService struct {
	config     *ServiceConfig
	logger     *slog.Logger
	classifier *classify.Classifier
	loader     *ingest.Loader
	exporter   *exporter.CSVWriter
	validator  *validation.FileValidator

	mu       sync.RWMutex
	vehicles []domain.VehicleRecord
	sports   []domain.SportsRecord
	info     DatasetInfo

	// onRefresh is invoked after a successful Refresh, outside the lock.
	onRefresh func()
}

// ServiceConfig collects the knobs TrendService needs; it is assembled
// by the caller from the application config.
type ServiceConfig struct {
	VehiclePath string
	SportsPath  string
	CleanedDir  string
	YearMin     int
	YearMax     int
}

// CleanedVehiclePath returns the output path for the cleaned mainstream
// dataset.
func (c *ServiceConfig) CleanedVehiclePath() string {
	return filepath.Join(c.CleanedDir, "vehicles_mainstream.csv")
}

// CleanedSportsPath returns the output path for the reconciled sports
// dataset.
func (c *ServiceConfig) CleanedSportsPath() string {
	return filepath.Join(c.CleanedDir, "sports_cars_merged.csv")
}

// NewTrendService creates a trend service. A nil logger falls back to
// slog.Default().
func NewTrendService(cfg *ServiceConfig, classifier *classify.Classifier, logger *slog.Logger) (*TrendService, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigError("service config is required", nil)
	}
	if classifier == nil {
		classifier = classify.New(classify.DefaultConfig())
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "trends"))

	logger.Info("TrendService initialized",
		slog.String("vehicle_path", cfg.VehiclePath),
		slog.String("sports_path", cfg.SportsPath),
		slog.Int("year_min", cfg.YearMin),
		slog.Int("year_max", cfg.YearMax))

	return &TrendService{
		config:     cfg,
		logger:     logger,
		classifier: classifier,
		loader:     ingest.NewLoader(logger, cfg.YearMin, cfg.YearMax),
		exporter:   exporter.NewCSVWriter(logger),
		validator:  validation.NewFileValidator(logger),
	}, nil
}

// OnRefresh registers a callback invoked after each successful refresh.
// Used to notify websocket clients.
func (s *TrendService) OnRefresh(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

// Refresh re-reads both raw datasets, cleans and reconciles them, writes
// the cleaned CSVs, and swaps the in-memory state.
func (s *TrendService) Refresh(ctx context.Context) (*DatasetInfo, error) {
	start := time.Now()
	s.logger.InfoContext(ctx, "dataset refresh started")

	if err := s.validator.ValidateDatasetFile(s.config.VehiclePath); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDatasetFile(s.config.SportsPath); err != nil {
		return nil, err
	}

	var (
		vehicles      []domain.VehicleRecord
		vehicleReport *ingest.Report
		curated       []domain.SportsRecord
		sportsReport  *ingest.Report
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vehicles, vehicleReport, err = s.loader.LoadVehicles(gctx, s.config.VehiclePath)
		return err
	})
	g.Go(func() error {
		var err error
		curated, sportsReport, err = s.loader.LoadSports(gctx, s.config.SportsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "dataset refresh failed", slog.String("error", err.Error()))
		return nil, err
	}

	infrastructure.CountCleaning(ingest.DatasetVehicles, vehicleReport.Kept, vehicleReport.Values.Unparsable, map[string]int{
		"no_year":    vehicleReport.DroppedNoYear,
		"year_range": vehicleReport.DroppedYearRange,
		"no_mpg":     vehicleReport.DroppedNoMPG,
	})
	infrastructure.CountCleaning(ingest.DatasetSports, sportsReport.Kept, sportsReport.Values.Unparsable, map[string]int{
		"no_year":    sportsReport.DroppedNoYear,
		"year_range": sportsReport.DroppedYearRange,
	})

	// Split the EPA dataset into mainstream and performance halves, then
	// fold the performance half into the curated sports dataset.
	mainstream, performance := s.classifier.Partition(vehicles)
	derived := reconcile.MapAllToSports(performance)
	merged, result := reconcile.Merge(curated, derived, s.logger)

	if s.config.CleanedDir != "" {
		if err := s.writeCleaned(ctx, mainstream, merged); err != nil {
			return nil, err
		}
	}

	info := DatasetInfo{
		VehicleCount:    len(mainstream),
		SportsCount:     len(merged),
		LoadedAt:        time.Now(),
		VehicleReport:   vehicleReport,
		SportsReport:    sportsReport,
		ReconcileResult: &result,
	}

	s.mu.Lock()
	s.vehicles = mainstream
	s.sports = merged
	s.info = info
	notify := s.onRefresh
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset refresh complete",
		slog.Int("vehicles", info.VehicleCount),
		slog.Int("sports", info.SportsCount),
		slog.Duration("elapsed", time.Since(start)))

	if notify != nil {
		notify()
	}
	return &info, nil
}

func (s *TrendService) writeCleaned(ctx context.Context, vehicles []domain.VehicleRecord, sports []domain.SportsRecord) error {
	if err := s.validator.ValidateOutputDirectory(s.config.CleanedDir); err != nil {
		return err
	}
	if err := s.exporter.WriteVehicles(s.config.CleanedVehiclePath(), vehicles); err != nil {
		return fmt.Errorf("write cleaned vehicles: %w", err)
	}
	if err := s.exporter.WriteSports(s.config.CleanedSportsPath(), sports); err != nil {
		return fmt.Errorf("write cleaned sports: %w", err)
	}
	s.logger.DebugContext(ctx, "cleaned datasets written",
		slog.String("dir", s.config.CleanedDir))
	return nil
}

// ensureLoaded lazily runs the first Refresh so read endpoints work
// without an explicit POST /api/datasets/refresh.
func (s *TrendService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := !s.info.LoadedAt.IsZero()
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}

// SportsTrends returns yearly averages of the requested sports-car
// metrics. Empty metrics defaults to horsepower and 0-60 time.
func (s *TrendService) SportsTrends(ctx context.Context, q aggregate.Query) (*aggregate.Table, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if len(q.Metrics) == 0 {
		q.Metrics = []string{domain.ColHorsepower, domain.ColZeroToSixty}
	}
	s.applyYearDefaults(&q)

	s.mu.RLock()
	sports := s.sports
	s.mu.RUnlock()
	return aggregate.Yearly(sports, q)
}

// EfficiencyTrends returns yearly averages of mainstream efficiency
// metrics. Empty metrics defaults to combined MPG and CO2.
func (s *TrendService) EfficiencyTrends(ctx context.Context, q aggregate.Query) (*aggregate.Table, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if len(q.Metrics) == 0 {
		q.Metrics = []string{domain.ColCombinedMPG, domain.ColCO2Tailpipe}
	}
	s.applyYearDefaults(&q)

	s.mu.RLock()
	vehicles := s.vehicles
	s.mu.RUnlock()
	return aggregate.Yearly(vehicles, q)
}

// FuelShares returns the yearly fuel-type composition of the mainstream
// dataset as counts or percentages.
func (s *TrendService) FuelShares(ctx context.Context, q indices.ShareQuery) (*indices.ShareTable, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if q.Field == "" {
		q.Field = domain.FieldFuelType
	}
	if q.YearMin == 0 {
		q.YearMin = s.config.YearMin
	}
	if q.YearMax == 0 {
		q.YearMax = s.config.YearMax
	}

	s.mu.RLock()
	vehicles := s.vehicles
	s.mu.RUnlock()
	return indices.FuelShare(vehicles, q), nil
}

// SegmentIndices returns base-year-normalized performance and efficiency
// indices for the gas, electric and sports segments.
func (s *TrendService) SegmentIndices(ctx context.Context, q indices.SegmentQuery) ([]indices.SegmentSeries, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if q.YearMin == 0 {
		q.YearMin = s.config.YearMin
	}
	if q.YearMax == 0 {
		q.YearMax = s.config.YearMax
	}

	s.mu.RLock()
	vehicles := s.vehicles
	sports := s.sports
	s.mu.RUnlock()
	return indices.SegmentIndices(vehicles, sports, q)
}

// Loaded reports whether a successful refresh has happened.
func (s *TrendService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.info.LoadedAt.IsZero()
}

// Datasets returns load metadata for the current in-memory datasets.
func (s *TrendService) Datasets(ctx context.Context) (*DatasetInfo, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	info := s.info
	return &info, nil
}

func (s *TrendService) applyYearDefaults(q *aggregate.Query) {
	if q.YearMin == 0 {
		q.YearMin = s.config.YearMin
	}
	if q.YearMax == 0 {
		q.YearMax = s.config.YearMax
	}
}
