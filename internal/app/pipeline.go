package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"crimescope/internal/config"
	"crimescope/internal/dataprocessing"
	"crimescope/internal/exporter"
	"crimescope/internal/infrastructure"
	"crimescope/internal/report"
	"crimescope/pkg/contracts/domain"
)

// Pipeline runs the batch aggregation: parse, normalize, aggregate, rank,
// extract, then export. It holds no state between runs; every run loads
// the snapshot fresh and derives everything from it.
type Pipeline struct {
	cfg      *config.Config
	paths    *config.Paths
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
	csv      *exporter.CSVWriter
	json     *exporter.JSONWriter
	renderer *report.Renderer
}

// NewPipeline creates a pipeline. The OTel providers are optional; without
// them stages run untraced.
func NewPipeline(cfg *config.Config, paths *config.Paths, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		cfg:      cfg,
		paths:    paths,
		logger:   logger.With(slog.String("component", "pipeline")),
		csv:      exporter.NewCSVWriter(),
		json:     exporter.NewJSONWriter(),
		renderer: report.NewRenderer(logger),
	}

	if providers != nil {
		p.tracer = providers.Tracer
		if providers.Meter != nil {
			metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
			if err != nil {
				return nil, fmt.Errorf("create pipeline metrics: %w", err)
			}
			p.metrics = metrics
		}
	}

	return p, nil
}

// Result holds every derived table of one pipeline run.
type Result struct {
	Snapshot *domain.Snapshot
	Table    *domain.AggregatedTable
	Rankings map[domain.Category][]domain.RankedEntry
	Trend    *report.TrendExhibit
	Manifest *RunManifest
}

// Run executes the transformation stages and returns the derived tables.
// Nothing is written to disk; Export does that once every stage has
// succeeded, so a failed run emits no partial output.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	categories := p.cfg.PipelineCategories()
	manifest := newRunManifest(infrastructure.GetTraceID(ctx), p.cfg.Pipeline.InputPath, categories)

	var raw *domain.RawSnapshot
	err := p.stage(ctx, manifest, "parse", func(ctx context.Context) error {
		var err error
		raw, err = dataprocessing.ParseSnapshot(ctx, p.cfg.Pipeline.InputPath)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.countRows(ctx, len(raw.Rows))

	var snapshot *domain.Snapshot
	err = p.stage(ctx, manifest, "normalize", func(ctx context.Context) error {
		var err error
		snapshot, err = dataprocessing.Normalize(ctx, raw, categories)
		return err
	})
	if err != nil {
		return nil, err
	}

	var table *domain.AggregatedTable
	err = p.stage(ctx, manifest, "aggregate", func(ctx context.Context) error {
		var err error
		table, err = dataprocessing.Aggregate(snapshot, categories)
		return err
	})
	if err != nil {
		return nil, err
	}

	rankings := make(map[domain.Category][]domain.RankedEntry, len(categories))
	err = p.stage(ctx, manifest, "rank", func(ctx context.Context) error {
		for _, category := range categories {
			entries, err := dataprocessing.Rank(table, category, p.cfg.Pipeline.TopN)
			if err != nil {
				return err
			}
			rankings[category] = entries
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Snapshot: snapshot,
		Table:    table,
		Rankings: rankings,
		Manifest: manifest,
	}

	if p.cfg.Pipeline.TrendHoodID != 0 {
		err = p.stage(ctx, manifest, "timeseries", func(ctx context.Context) error {
			trend, err := p.extractTrend(snapshot)
			if err != nil {
				return err
			}
			result.Trend = trend
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// extractTrend builds the configured trend exhibit.
func (p *Pipeline) extractTrend(snapshot *domain.Snapshot) (*report.TrendExhibit, error) {
	category, ok := domain.ParseCategory(p.cfg.Pipeline.TrendCategory)
	if !ok {
		// Config validation rejects unknown names; an empty name falls
		// back to homicide, the headline category of the report.
		category = domain.CategoryHomicide
	}

	points, err := dataprocessing.ExtractTimeSeries(snapshot, p.cfg.Pipeline.TrendHoodID, category)
	if err != nil {
		return nil, err
	}

	record, _, _ := snapshot.FindRecord(p.cfg.Pipeline.TrendHoodID)
	return &report.TrendExhibit{
		HoodID:   p.cfg.Pipeline.TrendHoodID,
		AreaName: record.AreaName,
		Category: category,
		Points:   points,
	}, nil
}

// Export writes every artifact of a completed run: the processed snapshot
// cache, the overview JSON, per-category ranking tables, the trend CSV,
// and the report workbook.
func (p *Pipeline) Export(ctx context.Context, result *Result) error {
	manifest := result.Manifest

	record := func(path string) {
		if manifest != nil {
			manifest.addArtifact(path)
		}
	}

	err := p.stage(ctx, manifest, "export", func(ctx context.Context) error {
		if err := p.csv.WriteProcessedSnapshot(p.paths.ProcessedSnapshotPath(), result.Snapshot, result.Table); err != nil {
			return err
		}
		record(p.paths.ProcessedSnapshotPath())

		if err := p.json.WriteOverview(p.paths.GetReportPath(config.OverviewJSONFile), result.Table); err != nil {
			return err
		}
		record(p.paths.GetReportPath(config.OverviewJSONFile))

		for _, category := range result.Table.Categories {
			entries, ok := result.Rankings[category]
			if !ok {
				continue
			}
			name := fmt.Sprintf("top_%s", category.String())
			if err := p.csv.WriteRankings(p.paths.GetReportPath(name+".csv"), category, entries); err != nil {
				return err
			}
			record(p.paths.GetReportPath(name + ".csv"))
			if err := p.json.WriteRankings(p.paths.GetReportPath(name+".json"), category, entries); err != nil {
				return err
			}
			record(p.paths.GetReportPath(name + ".json"))
		}

		if result.Trend != nil {
			name := fmt.Sprintf("trend_%d_%s.csv", result.Trend.HoodID, result.Trend.Category.String())
			if err := p.csv.WriteTimeSeries(p.paths.GetReportPath(name), result.Trend.Points); err != nil {
				return err
			}
			record(p.paths.GetReportPath(name))
		}

		if err := p.renderer.RenderWorkbook(ctx, p.paths.ReportWorkbookPath(), result.Table, result.Rankings, result.Trend); err != nil {
			return err
		}
		record(p.paths.ReportWorkbookPath())
		return nil
	})
	if err != nil {
		return err
	}

	if manifest != nil {
		manifest.complete()
		return manifest.Write(p.paths.GetReportPath(config.RunManifestFile))
	}
	return nil
}

// RunAndExport is the full batch entry point used by the processor CLI.
func (p *Pipeline) RunAndExport(ctx context.Context) (*Result, error) {
	result, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.Export(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// stage runs one pipeline stage with logging, tracing and metrics.
func (p *Pipeline) stage(ctx context.Context, manifest *RunManifest, name string, fn func(context.Context) error) error {
	start := time.Now()

	var span trace.Span
	if p.tracer != nil {
		ctx, span = p.tracer.Start(ctx, "pipeline."+name)
		defer span.End()
	}

	p.logger.InfoContext(ctx, "pipeline stage started", slog.String("stage", name))

	err := fn(ctx)
	duration := time.Since(start)

	if manifest != nil {
		manifest.recordStage(name, start, duration, err)
	}

	if p.metrics != nil {
		attrs := metric.WithAttributes(
			attribute.String("stage", name),
			attribute.Bool("success", err == nil),
		)
		p.metrics.StageDuration.Record(ctx, duration.Seconds(), attrs)
		p.metrics.StageRunsTotal.Add(ctx, 1, attrs)
	}

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		p.logger.ErrorContext(ctx, "pipeline stage failed",
			slog.String("stage", name),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return err
	}

	p.logger.InfoContext(ctx, "pipeline stage completed",
		slog.String("stage", name),
		slog.Duration("duration", duration))
	return nil
}

// countRows records the input row count once per run.
func (p *Pipeline) countRows(ctx context.Context, rows int) {
	if p.metrics != nil {
		p.metrics.RowsProcessed.Add(ctx, int64(rows))
	}
}
