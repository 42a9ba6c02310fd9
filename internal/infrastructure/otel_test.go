package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestDefaultOTelConfig(t *testing.T) {
	cfg := DefaultOTelConfig()

	assert.Equal(t, "crimescope", cfg.ServiceName)
	assert.True(t, cfg.EnableTracing)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, 1.0, cfg.SampleRatio)
}

func TestInitializeOTel_Disabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableTracing = false
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, slog.Default())
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_UnsupportedExporters(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "jaeger"

	_, err := InitializeOTel(cfg, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")

	cfg = DefaultOTelConfig()
	cfg.EnableTracing = false
	cfg.MetricExporter = "statsd"

	_, err = InitializeOTel(cfg, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metric exporter")
}

func TestCreatePipelineMetrics(t *testing.T) {
	metrics, err := CreatePipelineMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	require.NotNil(t, metrics.StageDuration)
	require.NotNil(t, metrics.StageRunsTotal)
	require.NotNil(t, metrics.RowsProcessed)

	// Noop instruments accept records without error
	ctx := context.Background()
	metrics.StageDuration.Record(ctx, 0.5)
	metrics.StageRunsTotal.Add(ctx, 1)
	metrics.RowsProcessed.Add(ctx, 100)
}
