package exporter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// JSONWriter writes JSON envelopes around the pipeline's derived tables.
type JSONWriter struct{}

// NewJSONWriter creates a new JSON writer instance.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// OverviewEnvelope is the JSON document around the full aggregated table.
type OverviewEnvelope struct {
	Rows        []domain.AggregatedRow `json:"rows"`
	Categories  []domain.Category      `json:"categories"`
	Count       int                    `json:"count"`
	GeneratedAt string                 `json:"generated_at"`
	Format      string                 `json:"format"`
}

// RankingEnvelope is the JSON document around one top-N ranking.
type RankingEnvelope struct {
	Category    domain.Category       `json:"category"`
	Entries     []domain.RankedEntry  `json:"entries"`
	Count       int                   `json:"count"`
	GeneratedAt string                `json:"generated_at"`
	Format      string                `json:"format"`
}

// WriteOverview writes the aggregated table with metadata.
func (w *JSONWriter) WriteOverview(path string, table *domain.AggregatedTable) error {
	return w.writeJSON(path, OverviewEnvelope{
		Rows:        table.Rows,
		Categories:  table.Categories,
		Count:       len(table.Rows),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Format:      "crime_overview_v1",
	})
}

// WriteRankings writes one ranking table with metadata.
func (w *JSONWriter) WriteRankings(path string, category domain.Category, entries []domain.RankedEntry) error {
	return w.writeJSON(path, RankingEnvelope{
		Category:    category,
		Entries:     entries,
		Count:       len(entries),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Format:      "crime_ranking_v1",
	})
}

// writeJSON writes an indented JSON document, creating the directory if
// needed.
func (w *JSONWriter) writeJSON(path string, payload interface{}) error {
	slog.Info("writing JSON file", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for JSON output", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create JSON file", err).
			WithContext("path", path)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return apperrors.NewStorageError("failed to encode JSON payload", err).
			WithContext("path", path)
	}

	return nil
}
