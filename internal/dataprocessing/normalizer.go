package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// missingMarkers are the cell values the source snapshots use for an
// absent observation, compared case-insensitively. An absent cell (no
// value at all) means the same thing.
var missingMarkers = map[string]bool{
	"na":   true,
	"n/a":  true,
	"null": true,
}

// Normalize fills absent yearly counts with zero and types every cell as
// a nonnegative integer, producing the normalized snapshot the aggregation
// stages run on. The zero-fill policy is intentionally the simplest
// possible: no interpolation, no carry-forward.
//
// It fails with a schema error when a yearly-count column for a requested
// category is absent from the header entirely, or when a present cell is
// non-numeric or negative. The input is never mutated.
func Normalize(ctx context.Context, raw *domain.RawSnapshot, categories []domain.Category) (*domain.Snapshot, error) {
	logger := slog.Default()

	logger.InfoContext(ctx, "normalizing snapshot",
		slog.Int("rows", len(raw.Rows)),
		slog.Int("categories", len(categories)))

	// The full year range must be present per category before any cell is
	// looked at; individual missing cells are fine, missing columns are not.
	for _, category := range categories {
		for _, year := range domain.Years() {
			column := category.YearColumn(year)
			if !raw.HasColumn(column) {
				return nil, apperrors.NewSchemaError(
					fmt.Sprintf("yearly count column %s is absent from the snapshot", column), nil).
					WithStage("normalize").
					WithContext("category", category.String()).
					WithContext("column", column)
			}
		}
	}

	normalized := &domain.Snapshot{
		Categories: append([]domain.Category(nil), categories...),
		Records:    make([]domain.NeighborhoodRecord, 0, len(raw.Rows)),
	}

	filled := 0
	for _, row := range raw.Rows {
		record := domain.NeighborhoodRecord{
			HoodID:   row.HoodID,
			AreaName: row.AreaName,
			Counts:   make(map[domain.Category][]int, len(categories)),
		}

		for _, category := range categories {
			counts := make([]int, domain.NumYears)
			for _, year := range domain.Years() {
				column := category.YearColumn(year)
				text, present := row.Cells[column]
				if !present || isMissing(text) {
					filled++
					continue // zero-fill
				}

				value, err := strconv.Atoi(strings.TrimSpace(text))
				if err != nil {
					return nil, apperrors.NewSchemaError(
						fmt.Sprintf("non-numeric count %q in column %s for hood_id %d", text, column, row.HoodID), err).
						WithStage("normalize").
						WithContext("hood_id", row.HoodID).
						WithContext("column", column)
				}
				if value < 0 {
					return nil, apperrors.NewSchemaError(
						fmt.Sprintf("negative count %d in column %s for hood_id %d", value, column, row.HoodID), nil).
						WithStage("normalize").
						WithContext("hood_id", row.HoodID).
						WithContext("column", column)
				}

				idx, _ := domain.YearIndex(year)
				counts[idx] = value
			}
			record.Counts[category] = counts
		}

		normalized.Records = append(normalized.Records, record)
	}

	logger.InfoContext(ctx, "snapshot normalized",
		slog.Int("records", len(normalized.Records)),
		slog.Int("zero_filled_cells", filled))

	return normalized, nil
}

// isMissing reports whether the cell text is one of the missing markers.
func isMissing(text string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(text))]
}
