// Command processor runs the batch aggregation pipeline: it loads the
// neighborhood crime snapshot, normalizes missing counts to zero,
// aggregates decade totals per category, ranks neighborhoods, extracts the
// configured trend series, and writes every report artifact. The run is
// fail-fast: the first error aborts with a message naming the failing
// stage and the offending key or column, and no partial output is left
// behind.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"crimescope/internal/app"
	"crimescope/internal/config"
	"crimescope/internal/files"
	"crimescope/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the optional YAML config file")
	inPath := flag.String("in", "", "input snapshot file (.csv or .xlsx)")
	baseDir := flag.String("out", "", "base directory for data/reports/logs (defaults to the working directory)")
	categories := flag.String("categories", "", "comma-separated categories to aggregate (defaults to all)")
	topN := flag.Int("top", 0, "ranking depth for the per-category exhibits")
	trendHood := flag.Int("trend-hood", 0, "hood_id for the trend exhibit")
	trendCategory := flag.String("trend-category", "", "category for the trend exhibit")
	enableTracing := flag.Bool("trace", false, "emit OpenTelemetry spans for each stage to stdout")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override file and environment configuration.
	if *inPath != "" {
		cfg.Pipeline.InputPath = *inPath
	}
	if *baseDir != "" {
		cfg.Paths.BaseDir = *baseDir
	}
	if *categories != "" {
		cfg.Pipeline.Categories = strings.Split(*categories, ",")
	}
	if *topN > 0 {
		cfg.Pipeline.TopN = *topN
	}
	if *trendHood != 0 {
		cfg.Pipeline.TrendHoodID = *trendHood
	}
	if *trendCategory != "" {
		cfg.Pipeline.TrendCategory = *trendCategory
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Pipeline.InputPath == "" {
		slog.Error("no input snapshot configured; pass -in or set CRIMESCOPE_PIPELINE_INPUT_PATH")
		os.Exit(1)
	}

	// A directory input resolves to its newest snapshot file.
	resolvedInput, err := files.ResolveInput(cfg.Pipeline.InputPath)
	if err != nil {
		slog.Error("failed to resolve input snapshot", "error", err)
		os.Exit(1)
	}
	cfg.Pipeline.InputPath = resolvedInput

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		slog.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("failed to create output directories", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = paths.GetLogPath("processor.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.EnableTracing = *enableTracing
	otelCfg.EnableMetrics = false
	otelCfg.MetricExporter = "none"
	if !*enableTracing {
		otelCfg.TraceExporter = "none"
	}

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())

	pipeline, err := app.NewPipeline(cfg, paths, logger, providers)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build pipeline", "error", err)
		os.Exit(1)
	}

	result, err := pipeline.RunAndExport(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline run failed", "error", err)
		providers.Shutdown(ctx)
		os.Exit(1)
	}

	if err := providers.Shutdown(ctx); err != nil {
		logger.WarnContext(ctx, "telemetry shutdown failed", "error", err)
	}

	logger.InfoContext(ctx, "pipeline run completed",
		slog.Int("neighborhoods", len(result.Table.Rows)),
		slog.Int("categories", len(result.Table.Categories)),
		slog.String("workbook", paths.ReportWorkbookPath()))

	fmt.Printf("Processed %d neighborhoods across %d categories\n",
		len(result.Table.Rows), len(result.Table.Categories))
	fmt.Printf("Report written to %s\n", paths.ReportWorkbookPath())
}
