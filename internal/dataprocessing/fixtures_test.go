package dataprocessing

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"crimescope/pkg/contracts/domain"
)

// fixtureHeader builds a snapshot header with the key columns plus the
// full yearly column set for the given categories.
func fixtureHeader(categories ...domain.Category) []string {
	header := []string{"hood_id", "area_name"}
	for _, category := range categories {
		for _, year := range domain.Years() {
			header = append(header, category.YearColumn(year))
		}
	}
	return header
}

// fixtureRow builds one data row matching fixtureHeader: hood id, area
// name, then one cell per category and year in order. Pass empty strings
// for absent observations.
func fixtureRow(hoodID int, areaName string, cells ...string) []string {
	row := []string{strconv.Itoa(hoodID), areaName}
	return append(row, cells...)
}

// yearCells builds a full decade of cells from integer counts.
func yearCells(counts ...int) []string {
	cells := make([]string, 0, len(counts))
	for _, c := range counts {
		cells = append(cells, strconv.Itoa(c))
	}
	return cells
}

// writeCSVFixture writes rows to a temp CSV file and returns its path.
func writeCSVFixture(t *testing.T, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	writer := csv.NewWriter(file)
	require.NoError(t, writer.WriteAll(rows))
	writer.Flush()
	require.NoError(t, writer.Error())

	return path
}

// rawFixture builds a RawSnapshot directly, bypassing file parsing, for
// normalizer tests. Cells map column name to raw text.
func rawFixture(header []string, rows ...domain.RawRow) *domain.RawSnapshot {
	return &domain.RawSnapshot{
		SourcePath: "fixture",
		Header:     header,
		Rows:       rows,
	}
}

// fullCells maps every yearly column of the category to the given counts.
func fullCells(category domain.Category, counts [domain.NumYears]int) map[string]string {
	cells := make(map[string]string, domain.NumYears)
	for i, year := range domain.Years() {
		cells[category.YearColumn(year)] = strconv.Itoa(counts[i])
	}
	return cells
}

// mergeCells combines several cell maps into one.
func mergeCells(maps ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
