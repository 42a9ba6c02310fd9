package dataprocessing

import (
	"fmt"
	"sort"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// Rank returns the topN neighborhoods with the largest decade total for
// the given category, ordered descending by total. Ties are broken by
// ascending original row index: the first-encountered neighborhood wins,
// so two invocations on the same input produce identical output. A topN
// larger than the row count returns all rows.
//
// It fails with an invalid-argument error when topN is not positive, and
// with an unknown-category error when the table carries no totals for the
// category.
func Rank(table *domain.AggregatedTable, category domain.Category, topN int) ([]domain.RankedEntry, error) {
	if topN <= 0 {
		return nil, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("ranking depth must be at least 1, got %d", topN)).
			WithStage("rank").WithContext("top_n", topN)
	}
	if !table.HasCategory(category) {
		return nil, apperrors.NewUnknownCategoryError(category.String()).WithStage("rank")
	}

	entries := make([]domain.RankedEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, domain.RankedEntry{
			HoodID:   row.HoodID,
			AreaName: row.AreaName,
			Total:    row.Totals[category],
		})
	}

	// Stable sort keeps equal totals in source order, which is the
	// tie-break rule.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	if topN < len(entries) {
		entries = entries[:topN]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}
