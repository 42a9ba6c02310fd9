package exporter

import (
	"strconv"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// WriteProcessedSnapshot writes the processed-data cache: the normalized
// table in the input row shape (hood_id, area_name, one column per
// category and year) plus one Total_<Category> column per aggregated
// category. The cache re-parses and re-normalizes to an identical
// snapshot, which keeps it usable as a stable on-disk intermediate.
func (w *CSVWriter) WriteProcessedSnapshot(path string, snapshot *domain.Snapshot, table *domain.AggregatedTable) error {
	if len(snapshot.Records) != len(table.Rows) {
		return apperrors.NewStorageError("snapshot and aggregated table row counts differ", nil).
			WithContext("snapshot_rows", len(snapshot.Records)).
			WithContext("table_rows", len(table.Rows))
	}

	headers := []string{"hood_id", "area_name"}
	for _, category := range snapshot.Categories {
		for _, year := range domain.Years() {
			headers = append(headers, category.YearColumn(year))
		}
	}
	for _, category := range table.Categories {
		headers = append(headers, category.TotalColumn())
	}

	records := make([][]string, 0, len(snapshot.Records))
	for i, record := range snapshot.Records {
		row := []string{
			strconv.Itoa(record.HoodID),
			record.AreaName,
		}
		for _, category := range snapshot.Categories {
			for _, year := range domain.Years() {
				row = append(row, strconv.Itoa(record.Count(category, year)))
			}
		}
		for _, category := range table.Categories {
			row = append(row, strconv.Itoa(table.Rows[i].Totals[category]))
		}
		records = append(records, row)
	}

	return w.WriteSimpleCSV(path, headers, records)
}

// WriteRankings writes one ranking table as CSV.
func (w *CSVWriter) WriteRankings(path string, category domain.Category, entries []domain.RankedEntry) error {
	headers := []string{"rank", "hood_id", "area_name", category.TotalColumn()}

	records := make([][]string, 0, len(entries))
	for _, entry := range entries {
		records = append(records, []string{
			strconv.Itoa(entry.Rank),
			strconv.Itoa(entry.HoodID),
			entry.AreaName,
			strconv.Itoa(entry.Total),
		})
	}

	return w.WriteSimpleCSV(path, headers, records)
}

// WriteTimeSeries writes one neighborhood/category time series as CSV.
func (w *CSVWriter) WriteTimeSeries(path string, points []domain.TimeSeriesPoint) error {
	headers := []string{"year", "count"}

	records := make([][]string, 0, len(points))
	for _, point := range points {
		records = append(records, []string{
			strconv.Itoa(point.Year),
			strconv.Itoa(point.Count),
		})
	}

	return w.WriteSimpleCSV(path, headers, records)
}
