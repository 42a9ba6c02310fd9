// Package testutil provides shared test helpers. The slog capture handler
// lets tests assert on structured log output without parsing JSON.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// captureBuffer is the shared record store behind a handler tree, so
// handlers derived via WithAttrs append to the same buffer.
type captureBuffer struct {
	mu      sync.Mutex
	records []LogRecord
}

// CaptureHandler is a slog.Handler that buffers records in memory.
type CaptureHandler struct {
	buf   *captureBuffer
	attrs []slog.Attr
}

// NewLogger returns a logger backed by a capture handler.
func NewLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	t.Helper()
	handler := &CaptureHandler{buf: &captureBuffer{}}
	return slog.New(handler), handler
}

// Enabled captures every level.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle buffers the record.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.records = append(h.buf.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs carries preset attributes into captured records.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CaptureHandler{
		buf:   h.buf,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

// WithGroup is a no-op for test capture.
func (h *CaptureHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of the captured records.
func (h *CaptureHandler) Records() []LogRecord {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	records := make([]LogRecord, len(h.buf.records))
	copy(records, h.buf.records)
	return records
}

// Find returns the first record whose message contains msg.
func (h *CaptureHandler) Find(msg string) (LogRecord, bool) {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, msg) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// ContainsMessage reports whether any record's message contains msg.
func (h *CaptureHandler) ContainsMessage(msg string) bool {
	_, ok := h.Find(msg)
	return ok
}

// AssertLogged fails the test when no record at the level contains msg.
func AssertLogged(t *testing.T, handler *CaptureHandler, level slog.Level, msg string) {
	t.Helper()
	for _, r := range handler.Records() {
		if r.Level == level && strings.Contains(r.Message, msg) {
			return
		}
	}
	t.Errorf("no %s log containing %q; captured: %v", level, msg, handler.Records())
}
