// Command reportserver runs the aggregation pipeline once at startup and
// then serves the precomputed exhibits over HTTP: the decade overview,
// per-category rankings, and per-neighborhood time series. The dataset is
// immutable for the lifetime of the process; restart the server to pick
// up a new snapshot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"crimescope/internal/app"
	"crimescope/internal/config"
	apperrors "crimescope/internal/errors"
	"crimescope/internal/files"
	"crimescope/internal/infrastructure"
	"crimescope/internal/middleware"
	"crimescope/internal/services"
	transporthttp "crimescope/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("reportserver exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Pipeline.InputPath == "" {
		return fmt.Errorf("no input snapshot configured; set CRIMESCOPE_PIPELINE_INPUT_PATH or pipeline.input_path")
	}
	resolvedInput, err := files.ResolveInput(cfg.Pipeline.InputPath)
	if err != nil {
		return fmt.Errorf("resolve input snapshot: %w", err)
	}
	cfg.Pipeline.InputPath = resolvedInput

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	cfg.Logging.FilePath = paths.GetLogPath("reportserver.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.EnableTracing = false
	otelCfg.TraceExporter = "none"
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx := infrastructure.ContextWithTraceID(ctx)
	pipeline, err := app.NewPipeline(cfg, paths, logger, providers)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	result, err := pipeline.RunAndExport(startCtx)
	if err != nil {
		return fmt.Errorf("startup pipeline run: %w", err)
	}
	logger.InfoContext(startCtx, "exhibits ready",
		slog.Int("neighborhoods", len(result.Table.Rows)),
		slog.Int("categories", len(result.Table.Categories)))

	service := services.NewExhibitService(result.Snapshot, result.Table, logger)
	errorHandler := apperrors.NewErrorHandler(logger, false)
	exhibits := transporthttp.NewExhibitsHandler(service, cfg.Pipeline.TopN, logger, errorHandler)

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.SecurityHeaders)
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		router.Use(limiter.Handler)
	}
	router.NotFound(errorHandler.NotFound)

	router.Method(http.MethodGet, "/healthz", transporthttp.NewHealthHandler())
	if providers.PrometheusHTTP != nil {
		router.Method(http.MethodGet, "/metrics", providers.PrometheusHTTP)
	}
	router.Mount("/api/exhibits", exhibits.Routes())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("exhibits server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down exhibits server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return providers.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
