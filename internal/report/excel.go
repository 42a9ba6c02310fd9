package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

const (
	overviewSheet = "Overview"
	trendSheet    = "Trend"
)

// TrendExhibit is the time-series input for the trend sheet.
type TrendExhibit struct {
	HoodID   int
	AreaName string
	Category domain.Category
	Points   []domain.TimeSeriesPoint
}

// Renderer writes the Excel report workbook.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a report renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger.With(slog.String("component", "report_renderer"))}
}

// RenderWorkbook writes the report workbook to path: the overview table,
// one ranking sheet per category in rankings, and a trend sheet with an
// embedded line chart when a trend exhibit is provided.
func (r *Renderer) RenderWorkbook(ctx context.Context, path string, table *domain.AggregatedTable, rankings map[domain.Category][]domain.RankedEntry, trend *TrendExhibit) error {
	r.logger.InfoContext(ctx, "rendering report workbook",
		slog.String("path", path),
		slog.Int("overview_rows", len(table.Rows)),
		slog.Int("ranking_sheets", len(rankings)))

	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeOverviewSheet(f, table); err != nil {
		return err
	}

	// Ranking sheets follow the table's category order so reruns produce
	// an identically laid out workbook.
	for _, category := range table.Categories {
		entries, ok := rankings[category]
		if !ok {
			continue
		}
		if err := r.writeRankingSheet(f, category, entries); err != nil {
			return err
		}
	}

	if trend != nil {
		if err := r.writeTrendSheet(f, trend); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create report directory", err).
			WithContext("path", path)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save report workbook", err).
			WithContext("path", path)
	}

	r.logger.InfoContext(ctx, "report workbook written", slog.String("path", path))
	return nil
}

// writeOverviewSheet fills the default sheet with the aggregated table.
func (r *Renderer) writeOverviewSheet(f *excelize.File, table *domain.AggregatedTable) error {
	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return apperrors.NewStorageError("failed to name overview sheet", err)
	}

	headers := []string{"Hood ID", "Area Name"}
	for _, category := range table.Categories {
		headers = append(headers, category.TotalColumn())
	}
	if err := r.writeHeaderRow(f, overviewSheet, headers); err != nil {
		return err
	}

	for i, row := range table.Rows {
		values := []interface{}{row.HoodID, row.AreaName}
		for _, category := range table.Categories {
			values = append(values, row.Totals[category])
		}
		if err := r.writeRow(f, overviewSheet, i+2, values); err != nil {
			return err
		}
	}

	return nil
}

// writeRankingSheet adds one top-N sheet for a category.
func (r *Renderer) writeRankingSheet(f *excelize.File, category domain.Category, entries []domain.RankedEntry) error {
	sheet := fmt.Sprintf("Top %s", category.Label())
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewStorageError("failed to create ranking sheet", err).
			WithContext("sheet", sheet)
	}

	if err := r.writeHeaderRow(f, sheet, []string{"Rank", "Hood ID", "Area Name", category.TotalColumn()}); err != nil {
		return err
	}

	for i, entry := range entries {
		values := []interface{}{entry.Rank, entry.HoodID, entry.AreaName, entry.Total}
		if err := r.writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	return nil
}

// writeTrendSheet adds the time-series table and its line chart.
func (r *Renderer) writeTrendSheet(f *excelize.File, trend *TrendExhibit) error {
	if _, err := f.NewSheet(trendSheet); err != nil {
		return apperrors.NewStorageError("failed to create trend sheet", err)
	}

	if err := r.writeHeaderRow(f, trendSheet, []string{"Year", "Count"}); err != nil {
		return err
	}
	for i, point := range trend.Points {
		if err := r.writeRow(f, trendSheet, i+2, []interface{}{point.Year, point.Count}); err != nil {
			return err
		}
	}

	lastRow := len(trend.Points) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s in %s", trend.Category.Label(), trend.AreaName),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", trendSheet, lastRow),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", trendSheet, lastRow),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: fmt.Sprintf("%s trend, %d-%d", trend.Category.Label(), domain.YearStart, domain.YearEnd)},
		},
	}
	if err := f.AddChart(trendSheet, "D2", chart); err != nil {
		return apperrors.NewStorageError("failed to add trend chart", err)
	}

	return nil
}

// writeHeaderRow writes a bold header row on row 1.
func (r *Renderer) writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return apperrors.NewStorageError("failed to compute header cell", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return apperrors.NewStorageError("failed to write header cell", err).
				WithContext("sheet", sheet).WithContext("cell", cell)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return apperrors.NewStorageError("failed to style header cell", err).
				WithContext("sheet", sheet).WithContext("cell", cell)
		}
	}

	return nil
}

// writeRow writes one data row at the given 1-based row number.
func (r *Renderer) writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return apperrors.NewStorageError("failed to compute cell name", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return apperrors.NewStorageError("failed to write cell", err).
				WithContext("sheet", sheet).WithContext("cell", cell)
		}
	}
	return nil
}
