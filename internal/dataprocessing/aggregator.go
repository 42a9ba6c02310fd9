package dataprocessing

import (
	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// Aggregate folds the ten yearly columns of each requested category into a
// decade total per neighborhood, preserving hood_id, area_name and row
// order. Each category fold is independent, so the function can be re-run
// for any subset of categories without recomputing others.
//
// It fails with an unknown-category error when a requested category was
// not part of the snapshot's normalized set.
func Aggregate(snapshot *domain.Snapshot, categories []domain.Category) (*domain.AggregatedTable, error) {
	for _, category := range categories {
		if !snapshot.HasCategory(category) {
			return nil, apperrors.NewUnknownCategoryError(category.String()).WithStage("aggregate")
		}
	}

	table := &domain.AggregatedTable{
		Categories: append([]domain.Category(nil), categories...),
		Rows:       make([]domain.AggregatedRow, 0, len(snapshot.Records)),
	}

	for _, record := range snapshot.Records {
		row := domain.AggregatedRow{
			HoodID:   record.HoodID,
			AreaName: record.AreaName,
			Totals:   make(map[domain.Category]int, len(categories)),
		}
		for _, category := range categories {
			row.Totals[category] = sumCounts(record.Counts[category])
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// sumCounts sums a yearly count vector.
func sumCounts(counts []int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}
