package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "autotrends/internal/errors"
	"autotrends/internal/files"
)

// ReportsHandler lists the CSV files the pipeline has produced.
type ReportsHandler struct {
	discovery *files.Discovery
	logger    *slog.Logger
	// Named directories to scan, e.g. "cleaned" and "reports".
	dirs map[string]string
}

// NewReportsHandler creates a reports handler scanning the given named
// directories.
func NewReportsHandler(dirs map[string]string, logger *slog.Logger) *ReportsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportsHandler{
		discovery: files.NewDiscovery(""),
		logger:    logger.With(slog.String("component", "reports_handler")),
		dirs:      dirs,
	}
}

// Routes returns the report listing routes.
func (h *ReportsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.ListReports)
	return r
}

// ListReports handles GET /reports: every generated CSV, grouped by
// output category.
func (h *ReportsHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]files.FileInfo, len(h.dirs))
	for name, dir := range h.dirs {
		found, err := h.discovery.FindCSVFiles(dir)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "report listing failed",
				slog.String("dir", dir),
				slog.String("error", err.Error()))
			render.Render(w, r, apperrors.ToAPIError(err))
			return
		}
		out[name] = found
	}
	render.JSON(w, r, out)
}
