package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	service TrendServiceInterface
	logger  *slog.Logger
	started time.Time
	version string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service TrendServiceInterface, version string, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
		started: time.Now(),
		version: version,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Datasets string `json:"datasets"`
}

// ServeHTTP handles GET /healthz. The process is healthy as soon as it
// can serve; dataset state is reported but never fails the probe, since
// a load error is recoverable via POST /api/datasets/refresh.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Version:  h.version,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Datasets: "not_loaded",
	}
	if h.service.Loaded() {
		resp.Datasets = "loaded"
	}
	render.JSON(w, r, resp)
}
