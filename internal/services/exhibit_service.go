// Package services holds the read-only services behind the exhibits HTTP
// surface. They serve the tables of one completed pipeline run held
// immutably in memory; nothing here recomputes or mutates pipeline state.
package services

import (
	"context"
	"log/slog"

	"crimescope/internal/dataprocessing"
	"crimescope/pkg/contracts/domain"
)

// ExhibitService exposes the three fixed exhibits of a pipeline run: the
// aggregated overview, per-category top-N rankings, and single
// neighborhood time series.
type ExhibitService struct {
	snapshot *domain.Snapshot
	table    *domain.AggregatedTable
	logger   *slog.Logger
}

// NewExhibitService creates an exhibit service over a completed run.
func NewExhibitService(snapshot *domain.Snapshot, table *domain.AggregatedTable, logger *slog.Logger) *ExhibitService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExhibitService{
		snapshot: snapshot,
		table:    table,
		logger:   logger.With(slog.String("component", "exhibit_service")),
	}
}

// Overview returns the full aggregated table.
func (s *ExhibitService) Overview(ctx context.Context) *domain.AggregatedTable {
	return s.table
}

// Rankings returns the top-N ranking for a category. Ranking is a pure
// stable transformation, so serving it on demand stays deterministic.
func (s *ExhibitService) Rankings(ctx context.Context, category domain.Category, topN int) ([]domain.RankedEntry, error) {
	s.logger.DebugContext(ctx, "ranking exhibit requested",
		slog.String("category", category.String()),
		slog.Int("top_n", topN))
	return dataprocessing.Rank(s.table, category, topN)
}

// TimeSeries returns the decade series for one neighborhood and category.
func (s *ExhibitService) TimeSeries(ctx context.Context, hoodID int, category domain.Category) ([]domain.TimeSeriesPoint, error) {
	s.logger.DebugContext(ctx, "time series exhibit requested",
		slog.Int("hood_id", hoodID),
		slog.String("category", category.String()))
	return dataprocessing.ExtractTimeSeries(s.snapshot, hoodID, category)
}
