package domain

// Year bounds of the decade covered by the snapshot. Every category column
// set spans exactly these years.
const (
	YearStart = 2014
	YearEnd   = 2023
	NumYears  = YearEnd - YearStart + 1
)

// Years returns every year of the covered decade in ascending order.
func Years() []int {
	years := make([]int, 0, NumYears)
	for y := YearStart; y <= YearEnd; y++ {
		years = append(years, y)
	}
	return years
}

// YearIndex returns the slice offset of the given year within a yearly
// count vector, and whether the year falls inside the covered decade.
func YearIndex(year int) (int, bool) {
	if year < YearStart || year > YearEnd {
		return 0, false
	}
	return year - YearStart, true
}

// RawRow is one neighborhood row as read from the snapshot file. Cells
// holds the raw text of every yearly-count cell keyed by column name; a
// missing cell is simply an absent key. Value validation happens during
// normalization, not at parse time.
type RawRow struct {
	HoodID   int               `json:"hood_id"`
	AreaName string            `json:"area_name"`
	Cells    map[string]string `json:"cells"`
}

// RawSnapshot is the parse output: the original header plus one raw row
// per neighborhood in source order. It is immutable once loaded; every
// downstream stage derives a new value from it.
type RawSnapshot struct {
	SourcePath string   `json:"source_path"`
	Header     []string `json:"header"`
	Rows       []RawRow `json:"rows"`
}

// HasColumn reports whether the snapshot header contains the named column.
func (s *RawSnapshot) HasColumn(name string) bool {
	for _, h := range s.Header {
		if h == name {
			return true
		}
	}
	return false
}

// NeighborhoodRecord is one fully normalized neighborhood row. Counts maps
// each category to a vector of NumYears nonnegative counts indexed by year
// offset (see YearIndex).
type NeighborhoodRecord struct {
	HoodID   int                `json:"hood_id"`
	AreaName string             `json:"area_name"`
	Counts   map[Category][]int `json:"counts"`
}

// Count returns the normalized count for the given category and year.
func (r NeighborhoodRecord) Count(category Category, year int) int {
	idx, ok := YearIndex(year)
	if !ok {
		return 0
	}
	counts, ok := r.Counts[category]
	if !ok || idx >= len(counts) {
		return 0
	}
	return counts[idx]
}

// Snapshot is the normalized table: every yearly count present and
// nonnegative for every category it was normalized with. Records keep the
// source row order, which is the tie-break key for ranking.
type Snapshot struct {
	Categories []Category           `json:"categories"`
	Records    []NeighborhoodRecord `json:"records"`
}

// HasCategory reports whether the snapshot was normalized with the given
// category.
func (s *Snapshot) HasCategory(category Category) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// FindRecord returns the record with the given hood id and its source row
// index, or ok=false when the neighborhood is not in the snapshot.
func (s *Snapshot) FindRecord(hoodID int) (NeighborhoodRecord, int, bool) {
	for i, rec := range s.Records {
		if rec.HoodID == hoodID {
			return rec, i, true
		}
	}
	return NeighborhoodRecord{}, 0, false
}
