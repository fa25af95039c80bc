// Package http implements the REST API for the vehicle trends service.
package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"autotrends/internal/aggregate"
	apperrors "autotrends/internal/errors"
	"autotrends/internal/indices"
	"autotrends/pkg/contracts/domain"
)

// TrendsHandler serves the aggregated trend endpoints.
type TrendsHandler struct {
	service  TrendServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewTrendsHandler creates a trends handler.
func NewTrendsHandler(service TrendServiceInterface, logger *slog.Logger) *TrendsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrendsHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "trends_handler")),
		validate: validator.New(),
	}
}

// Routes returns the trends API routes as a standalone router.
func (h *TrendsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	h.Register(r)
	return r
}

// Register adds the trend endpoints to an existing router, so the caller
// can combine them with sibling mounts.
func (h *TrendsHandler) Register(r chi.Router) {
	r.Get("/trends/sports", h.GetSportsTrends)
	r.Get("/trends/efficiency", h.GetEfficiencyTrends)
	r.Get("/shares/fuel", h.GetFuelShares)
	r.Get("/indices", h.GetIndices)
	r.Get("/datasets", h.GetDatasets)
	r.Post("/datasets/refresh", h.RefreshDatasets)
}

// trendParams carries the common query parameters of the trend
// endpoints.
// yearRange carries the year-bound query parameters every endpoint
// accepts. Zero means "use the configured default".
type yearRange struct {
	YearMin int `validate:"omitempty,min=1900,max=2100"`
	YearMax int `validate:"omitempty,min=1900,max=2100,gtefield=YearMin"`
}

func (h *TrendsHandler) parseYearRange(r *http.Request) (yearRange, error) {
	var yr yearRange
	var err error
	if yr.YearMin, err = intParam(r, "year_min"); err != nil {
		return yr, err
	}
	if yr.YearMax, err = intParam(r, "year_max"); err != nil {
		return yr, err
	}
	if err := h.validate.Struct(yr); err != nil {
		return yr, apperrors.NewValidationError("invalid query parameters: " + err.Error())
	}
	return yr, nil
}

type trendParams struct {
	yearRange
	Metrics   []string `validate:"omitempty,dive,oneof=combined_mpg co2_tailpipe engine_displacement horsepower zero_to_sixty engine_size torque price"`
	Normalize bool
}

// parseTrendParams binds the shared trend query parameters; filterParam
// names the categorical filter this endpoint accepts (brand for sports,
// fuel_type for efficiency).
func (h *TrendsHandler) parseTrendParams(r *http.Request, filterParam, filterField string) (trendParams, *aggregate.Filter, error) {
	var p trendParams
	var err error
	if p.yearRange, err = h.parseYearRange(r); err != nil {
		return p, nil, err
	}
	p.Metrics = listParam(r, "metrics")
	p.Normalize = boolParam(r, "normalize")
	if err := h.validate.Struct(p); err != nil {
		return p, nil, apperrors.NewValidationError("invalid query parameters: " + err.Error())
	}

	var filter *aggregate.Filter
	if values := listParam(r, filterParam); len(values) > 0 {
		filter = &aggregate.Filter{Field: filterField, Values: values}
	}
	return p, filter, nil
}

func listParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name + " must be an integer")
	}
	return v, nil
}

func boolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// GetSportsTrends handles GET /trends/sports. The brand parameter
// restricts the aggregate to the named makes; normalize rebases each
// metric to its first observed year.
func (h *TrendsHandler) GetSportsTrends(w http.ResponseWriter, r *http.Request) {
	p, filter, err := h.parseTrendParams(r, "brand", domain.FieldMake)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	table, err := h.service.SportsTrends(r.Context(), aggregate.Query{
		YearMin: p.YearMin,
		YearMax: p.YearMax,
		Metrics: p.Metrics,
		Filter:  filter,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if p.Normalize {
		table = indices.NormalizeToBaseYear(table)
	}
	render.JSON(w, r, table)
}

// GetEfficiencyTrends handles GET /trends/efficiency. The fuel_type
// parameter restricts the aggregate to the named fuel labels.
func (h *TrendsHandler) GetEfficiencyTrends(w http.ResponseWriter, r *http.Request) {
	p, filter, err := h.parseTrendParams(r, "fuel_type", domain.FieldFuelType)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	table, err := h.service.EfficiencyTrends(r.Context(), aggregate.Query{
		YearMin: p.YearMin,
		YearMax: p.YearMax,
		Metrics: p.Metrics,
		Filter:  filter,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if p.Normalize {
		table = indices.NormalizeToBaseYear(table)
	}
	render.JSON(w, r, table)
}

// GetFuelShares handles GET /shares/fuel. The grouped parameter maps raw
// fuel labels onto Gas/Electric/Other buckets; percent switches counts
// to row percentages.
func (h *TrendsHandler) GetFuelShares(w http.ResponseWriter, r *http.Request) {
	yr, err := h.parseYearRange(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	q := indices.ShareQuery{
		YearMin:    yr.YearMin,
		YearMax:    yr.YearMax,
		UsePercent: boolParam(r, "percent"),
	}
	if boolParam(r, "grouped") {
		q.CategoryMap = fuelGroupMap()
	}

	table, err := h.service.FuelShares(r.Context(), q)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, table)
}

// fuelGroupMap folds the raw EPA fuel labels into Gas and Electric;
// anything else lands in the Other bucket.
func fuelGroupMap() map[string]string {
	m := make(map[string]string)
	for _, label := range indices.DefaultGasFuelTypes() {
		m[label] = "Gas"
	}
	for _, label := range indices.DefaultElectricFuelTypes() {
		m[label] = "Electric"
	}
	return m
}

// GetIndices handles GET /indices. The segments parameter selects which
// of gas, electric and sports to compute; empty means all three.
func (h *TrendsHandler) GetIndices(w http.ResponseWriter, r *http.Request) {
	yr, err := h.parseYearRange(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	q := indices.SegmentQuery{YearMin: yr.YearMin, YearMax: yr.YearMax}
	raw := r.URL.Query().Get("segments")
	if raw == "" {
		q.IncludeGas, q.IncludeElectric, q.IncludeSports = true, true, true
	} else {
		for _, s := range strings.Split(raw, ",") {
			switch strings.TrimSpace(s) {
			case indices.SegmentGas:
				q.IncludeGas = true
			case indices.SegmentElectric:
				q.IncludeElectric = true
			case indices.SegmentSports:
				q.IncludeSports = true
			default:
				h.renderError(w, r, apperrors.NewValidationError("unknown segment: "+s))
				return
			}
		}
	}

	series, err := h.service.SegmentIndices(r.Context(), q)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, series)
}

// GetDatasets handles GET /datasets.
func (h *TrendsHandler) GetDatasets(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Datasets(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.JSON(w, r, info)
}

// RefreshDatasets handles POST /datasets/refresh.
func (h *TrendsHandler) RefreshDatasets(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Refresh(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, info)
}

func (h *TrendsHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	render.Render(w, r, apperrors.ToAPIError(err))
}
