// Package ingest loads the raw vehicle datasets into typed records.
//
// Source files arrive in mixed shapes: the mainstream (EPA) extract is a
// semicolon-separated CSV, the sports-car extract is comma-separated, and
// either may be an Excel workbook. Columns are located by header name so
// column order never matters, and files missing optional columns load
// fine; only a wholly absent required column (make, model, year) is a
// schema error.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "autotrends/internal/errors"
	"autotrends/internal/normalize"
	"autotrends/pkg/contracts/domain"
)

// Dataset names used in reports, logs, and metrics labels.
const (
	DatasetVehicles = "vehicles"
	DatasetSports   = "sports"
)

// Report summarizes one load: how many rows survived cleaning and why
// the rest were dropped. Dropped rows and unparsable cells are
// data-quality counts, never errors.
type Report struct {
	Dataset          string          `json:"dataset"`
	RowsRead         int             `json:"rows_read"`
	Kept             int             `json:"kept"`
	DroppedNoYear    int             `json:"dropped_no_year"`
	DroppedYearRange int             `json:"dropped_year_range"`
	DroppedNoMPG     int             `json:"dropped_no_mpg"`
	Values           normalize.Stats `json:"values"`
}

// Loader reads and cleans raw dataset files.
type Loader struct {
	logger  *slog.Logger
	yearMin int
	yearMax int
}

// NewLoader creates a loader that keeps records within the inclusive
// year range.
func NewLoader(logger *slog.Logger, yearMin, yearMax int) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, yearMin: yearMin, yearMax: yearMax}
}

// columnMap resolves header names to column indexes. Header matching is
// case-insensitive and whitespace-collapsed because the EPA extract has
// headers like "Co2  Tailpipe For Fuel Type1".
type columnMap map[string]int

func buildColumnMap(header []string) columnMap {
	m := make(columnMap, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, exists := m[key]; !exists {
			m[key] = i
		}
	}
	return m
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), " ")
}

// find returns the index of the first matching candidate header name.
func (m columnMap) find(candidates ...string) (int, bool) {
	for _, c := range candidates {
		if idx, ok := m[c]; ok {
			return idx, true
		}
	}
	return -1, false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// optField normalizes an optional numeric cell. Columns absent from the
// file are skipped entirely so they do not inflate the missing-value
// count.
func (r *Report) optField(row []string, idx int) *float64 {
	if idx < 0 {
		return nil
	}
	return r.Values.Field(cell(row, idx))
}

// LoadVehicles reads the mainstream dataset and applies the cleaning
// rules: parsable in-range year, and (when the file carries an MPG
// column) a positive combined MPG value.
func (l *Loader) LoadVehicles(ctx context.Context, path string) ([]domain.VehicleRecord, *Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	header, rows, err := readTable(path)
	if err != nil {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("failed to read vehicle dataset %s", path), err)
	}

	cols := buildColumnMap(header)
	makeIdx, makeOK := cols.find("make")
	modelIdx, modelOK := cols.find("model")
	yearIdx, yearOK := cols.find("year")
	if missing := missingRequired(makeOK, modelOK, yearOK); len(missing) > 0 {
		return nil, nil, apperrors.NewSchemaError(DatasetVehicles, missing)
	}

	fuelIdx, _ := cols.find("fuel type")
	mpgIdx, hasMPG := cols.find("combined mpg for fuel type1", "mpg")
	co2Idx, _ := cols.find("co2 tailpipe for fuel type1")
	dispIdx, _ := cols.find("engine displacement")
	hpIdx, _ := cols.find("horsepower (est)", "horsepower")
	zeroIdx, _ := cols.find("0-60 time (est)")

	report := &Report{Dataset: DatasetVehicles, RowsRead: len(rows)}
	records := make([]domain.VehicleRecord, 0, len(rows))

	for _, row := range rows {
		year, ok := normalize.ParseYear(cell(row, yearIdx))
		if !ok {
			report.DroppedNoYear++
			continue
		}
		if year < l.yearMin || year > l.yearMax {
			report.DroppedYearRange++
			continue
		}

		r := domain.VehicleRecord{
			Make:     cell(row, makeIdx),
			Model:    cell(row, modelIdx),
			Year:     year,
			FuelType: cell(row, fuelIdx),
		}
		if hasMPG {
			r.CombinedMPG = report.Values.Field(cell(row, mpgIdx))
			// Rows without a usable efficiency figure carry no signal for
			// any of the EPA views; the reference cleaning drops them.
			if r.CombinedMPG == nil || *r.CombinedMPG <= 0 {
				report.DroppedNoMPG++
				continue
			}
		}
		r.CO2Tailpipe = report.optField(row, co2Idx)
		r.EngineDisplacement = report.optField(row, dispIdx)
		r.HorsepowerEst = report.optField(row, hpIdx)
		r.ZeroToSixtyEst = report.optField(row, zeroIdx)

		records = append(records, r)
	}
	report.Kept = len(records)

	l.logger.Info("loaded vehicle dataset",
		slog.String("path", path),
		slog.Int("rows_read", report.RowsRead),
		slog.Int("kept", report.Kept),
		slog.Int("dropped_no_year", report.DroppedNoYear),
		slog.Int("dropped_year_range", report.DroppedYearRange),
		slog.Int("dropped_no_mpg", report.DroppedNoMPG),
		slog.Int("unparsable_values", report.Values.Unparsable))

	return records, report, nil
}

// LoadSports reads the curated sports dataset.
func (l *Loader) LoadSports(ctx context.Context, path string) ([]domain.SportsRecord, *Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	header, rows, err := readTable(path)
	if err != nil {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sports dataset %s", path), err)
	}

	cols := buildColumnMap(header)
	makeIdx, makeOK := cols.find("car make", "make")
	modelIdx, modelOK := cols.find("car model", "model")
	yearIdx, yearOK := cols.find("year")
	if missing := missingRequired(makeOK, modelOK, yearOK); len(missing) > 0 {
		return nil, nil, apperrors.NewSchemaError(DatasetSports, missing)
	}

	engineIdx, _ := cols.find("engine size (l)", "engine size")
	hpIdx, _ := cols.find("horsepower")
	torqueIdx, _ := cols.find("torque (lb-ft)", "torque")
	zeroIdx, _ := cols.find("0-60 mph time (seconds)", "0-60 mph time")
	priceIdx, _ := cols.find("price (in usd)", "price")
	mpgIdx, _ := cols.find("mpg")

	report := &Report{Dataset: DatasetSports, RowsRead: len(rows)}
	records := make([]domain.SportsRecord, 0, len(rows))

	for _, row := range rows {
		year, ok := normalize.ParseYear(cell(row, yearIdx))
		if !ok {
			report.DroppedNoYear++
			continue
		}
		if year < l.yearMin || year > l.yearMax {
			report.DroppedYearRange++
			continue
		}

		records = append(records, domain.SportsRecord{
			Make:        cell(row, makeIdx),
			Model:       cell(row, modelIdx),
			Year:        year,
			EngineSize:  report.optField(row, engineIdx),
			Horsepower:  report.optField(row, hpIdx),
			Torque:      report.optField(row, torqueIdx),
			ZeroToSixty: report.optField(row, zeroIdx),
			Price:       report.optField(row, priceIdx),
			CombinedMPG: report.optField(row, mpgIdx),
		})
	}
	report.Kept = len(records)

	l.logger.Info("loaded sports dataset",
		slog.String("path", path),
		slog.Int("rows_read", report.RowsRead),
		slog.Int("kept", report.Kept),
		slog.Int("dropped_no_year", report.DroppedNoYear),
		slog.Int("dropped_year_range", report.DroppedYearRange),
		slog.Int("unparsable_values", report.Values.Unparsable))

	return records, report, nil
}

func missingRequired(makeOK, modelOK, yearOK bool) []string {
	var missing []string
	if !makeOK {
		missing = append(missing, "make")
	}
	if !modelOK {
		missing = append(missing, "model")
	}
	if !yearOK {
		missing = append(missing, "year")
	}
	return missing
}
