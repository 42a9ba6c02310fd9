package domain

// AggregatedRow is one neighborhood with its decade totals for the
// categories the table was aggregated over. Rows keep source order.
type AggregatedRow struct {
	HoodID   int              `json:"hood_id"`
	AreaName string           `json:"area_name"`
	Totals   map[Category]int `json:"totals"`
}

// AggregatedTable holds the per-neighborhood decade totals for a set of
// categories. Categories records which folds were run so lookups against
// an absent category can be distinguished from a zero total.
type AggregatedTable struct {
	Categories []Category      `json:"categories"`
	Rows       []AggregatedRow `json:"rows"`
}

// HasCategory reports whether the table carries totals for the category.
func (t *AggregatedTable) HasCategory(category Category) bool {
	for _, c := range t.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// RankedEntry is one neighborhood in a top-N ranking. Rank is 1-based;
// entries with equal totals keep their source-order relation.
type RankedEntry struct {
	HoodID   int    `json:"hood_id"`
	AreaName string `json:"area_name"`
	Total    int    `json:"total"`
	Rank     int    `json:"rank"`
}

// TimeSeriesPoint is one (year, count) observation for a single
// neighborhood and category.
type TimeSeriesPoint struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}
