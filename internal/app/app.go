// Package app wires the trends service, HTTP transport and background
// components into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autotrends/internal/classify"
	"autotrends/internal/config"
	"autotrends/internal/infrastructure"
	"autotrends/internal/middleware"
	"autotrends/internal/services"
	transporthttp "autotrends/internal/transport/http"
	"autotrends/internal/websocket"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Application holds the wired components of the web server.
type Application struct {
	Config       *config.Config
	Logger       *slog.Logger
	Router       chi.Router
	Server       *http.Server
	Hub          *websocket.Hub
	TrendService *services.TrendService

	otelShutdown func(context.Context) error
}

// NewApplication loads configuration and wires all components.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	otelShutdown, err := infrastructure.InitTracing(context.Background(), logger)
	if err != nil {
		logger.Warn("tracing disabled", slog.String("error", err.Error()))
		otelShutdown = func(context.Context) error { return nil }
	}

	classifier := classify.New(classifierConfig(cfg))

	svc, err := services.NewTrendService(&services.ServiceConfig{
		VehiclePath: cfg.VehiclePath(),
		SportsPath:  cfg.SportsPath(),
		CleanedDir:  cfg.Paths.CleanedDir,
		YearMin:     cfg.Cleaning.YearMin,
		YearMax:     cfg.Cleaning.YearMax,
	}, classifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create trend service: %w", err)
	}

	hub := websocket.NewHub(logger)
	svc.OnRefresh(func() {
		hub.Broadcast(websocket.TypeDatasetsRefreshed, nil)
	})

	a := &Application{
		Config:       cfg,
		Logger:       logger,
		Hub:          hub,
		TrendService: svc,
		otelShutdown: otelShutdown,
	}
	a.setupRouter()
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

// classifierConfig builds the classifier config, falling back to the
// built-in lists when the file provides none.
func classifierConfig(cfg *config.Config) classify.Config {
	cc := classify.DefaultConfig()
	if len(cfg.Classifier.Brands) > 0 {
		cc.Brands = cfg.Classifier.Brands
	}
	if len(cfg.Classifier.ModelKeywords) > 0 {
		cc.ModelKeywords = cfg.Classifier.ModelKeywords
	}
	return cc
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	if a.Config.Server.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(
			a.Config.Server.RateLimitRPS,
			a.Config.Server.RateLimitBurst,
			a.Logger,
		).Handler)
	}

	trendsHandler := transporthttp.NewTrendsHandler(a.TrendService, a.Logger)
	healthHandler := transporthttp.NewHealthHandler(a.TrendService, Version, a.Logger)
	reportsHandler := transporthttp.NewReportsHandler(map[string]string{
		"cleaned": a.Config.Paths.CleanedDir,
		"reports": a.Config.Paths.ReportsDir,
	}, a.Logger)

	api := chi.NewRouter()
	api.Use(render.SetContentType(render.ContentTypeJSON))
	trendsHandler.Register(api)
	api.Mount("/reports", reportsHandler.Routes())
	r.Mount("/api", api)
	r.Method(http.MethodGet, "/healthz", healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", websocket.ServeWS(a.Hub, a.Logger))

	a.Router = r
}

// Start launches the websocket hub and the HTTP server, then kicks off
// the initial dataset load in the background so the server is reachable
// immediately.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("log_level", a.Config.Logging.Level))

	go a.Hub.Run()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	go func() {
		if _, err := a.TrendService.Refresh(ctx); err != nil {
			a.Logger.ErrorContext(ctx, "initial dataset load failed",
				slog.String("error", err.Error()))
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully shuts down the server and background components.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Hub.Stop()

	if err := a.otelShutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "error shutting down tracing",
			slog.String("error", err.Error()))
	}

	infrastructure.CloseLogFile()
	return nil
}

// Run starts the application and blocks until SIGINT/SIGTERM.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
