package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureHandler(t *testing.T) {
	logger, handler := NewLogger(t)

	logger.Info("first message", "key", "value")
	logger.Error("second message")

	records := handler.Records()
	require.Len(t, records, 2)
	assert.Equal(t, slog.LevelInfo, records[0].Level)
	assert.Equal(t, "value", records[0].Attrs["key"])

	record, ok := handler.Find("second")
	require.True(t, ok)
	assert.Equal(t, slog.LevelError, record.Level)

	assert.True(t, handler.ContainsMessage("first message"))
	assert.False(t, handler.ContainsMessage("third"))
}

func TestCaptureHandler_WithAttrs(t *testing.T) {
	logger, handler := NewLogger(t)

	logger.With("component", "pipeline").Info("stage started")

	record, ok := handler.Find("stage started")
	require.True(t, ok, "derived loggers share the capture buffer")
	assert.Equal(t, "pipeline", record.Attrs["component"])
}

func TestAssertLogged(t *testing.T) {
	logger, handler := NewLogger(t)
	logger.Warn("rate limit exceeded")

	AssertLogged(t, handler, slog.LevelWarn, "rate limit")
}
