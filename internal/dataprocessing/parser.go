package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// Column names for the two key columns of the snapshot. Matching is
// case-insensitive; column order is irrelevant.
const (
	ColumnHoodID   = "hood_id"
	ColumnAreaName = "area_name"
)

// ParseSnapshot reads the snapshot file into a RawSnapshot, dispatching on
// the file extension (.csv or .xlsx). Cell values are carried as raw text;
// value validation happens during normalization. Structural problems are
// reported immediately: missing key columns, non-integer or duplicate hood
// ids, duplicate area names.
func ParseSnapshot(ctx context.Context, path string) (*domain.RawSnapshot, error) {
	logger := slog.Default()

	logger.InfoContext(ctx, "parsing snapshot file", slog.String("path", path))

	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("unsupported snapshot format %q", filepath.Ext(path)), nil).
			WithStage("parse").WithContext("path", path)
	}
	if err != nil {
		return nil, err
	}

	snapshot, err := buildSnapshot(path, rows)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "snapshot parsed",
		slog.String("path", path),
		slog.Int("columns", len(snapshot.Header)),
		slog.Int("rows", len(snapshot.Rows)))

	return snapshot, nil
}

// readCSV reads all rows of a CSV file. Short rows are allowed; the import
// treats absent trailing cells as missing observations.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open snapshot file", err).
			WithStage("parse").WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read snapshot CSV", err).
			WithStage("parse").WithContext("path", path)
	}
	return rows, nil
}

// readXLSX reads the first sheet of an Excel workbook.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open snapshot workbook", err).
			WithStage("parse").WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("snapshot workbook has no sheets", nil).
			WithStage("parse").WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read snapshot sheet", err).
			WithStage("parse").WithContext("path", path).WithContext("sheet", sheets[0])
	}
	return rows, nil
}

// buildSnapshot turns raw sheet rows into a RawSnapshot, validating the
// key columns and their uniqueness.
func buildSnapshot(path string, rows [][]string) (*domain.RawSnapshot, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewSchemaError("snapshot is empty", nil).
			WithStage("parse").WithContext("path", path)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	hoodIdx, areaIdx := -1, -1
	for i, h := range header {
		switch {
		case strings.EqualFold(h, ColumnHoodID):
			hoodIdx = i
		case strings.EqualFold(h, ColumnAreaName):
			areaIdx = i
		}
	}
	if hoodIdx < 0 {
		return nil, apperrors.NewSchemaError("snapshot is missing the hood_id column", nil).
			WithStage("parse").WithContext("column", ColumnHoodID)
	}
	if areaIdx < 0 {
		return nil, apperrors.NewSchemaError("snapshot is missing the area_name column", nil).
			WithStage("parse").WithContext("column", ColumnAreaName)
	}

	seenIDs := make(map[int]bool)
	seenNames := make(map[string]bool)

	snapshot := &domain.RawSnapshot{
		SourcePath: path,
		Header:     header,
		Rows:       make([]domain.RawRow, 0, len(rows)-1),
	}

	for rowNum, row := range rows[1:] {
		// Skip fully blank rows, common at the bottom of exported sheets
		if isBlankRow(row) {
			continue
		}

		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		hoodID, err := strconv.Atoi(cell(hoodIdx))
		if err != nil {
			return nil, apperrors.NewSchemaError(
				fmt.Sprintf("row %d has a non-integer hood_id %q", rowNum+2, cell(hoodIdx)), err).
				WithStage("parse").WithContext("row", rowNum+2)
		}
		if seenIDs[hoodID] {
			return nil, apperrors.NewSchemaError(
				fmt.Sprintf("duplicate hood_id %d", hoodID), nil).
				WithStage("parse").WithContext("hood_id", hoodID)
		}
		seenIDs[hoodID] = true

		areaName := cell(areaIdx)
		if areaName == "" {
			return nil, apperrors.NewSchemaError(
				fmt.Sprintf("row %d has an empty area_name", rowNum+2), nil).
				WithStage("parse").WithContext("row", rowNum+2)
		}
		if seenNames[areaName] {
			return nil, apperrors.NewSchemaError(
				fmt.Sprintf("duplicate area_name %q", areaName), nil).
				WithStage("parse").WithContext("area_name", areaName)
		}
		seenNames[areaName] = true

		cells := make(map[string]string)
		for i, name := range header {
			if i == hoodIdx || i == areaIdx || name == "" {
				continue
			}
			if value := cell(i); value != "" {
				cells[name] = value
			}
		}

		snapshot.Rows = append(snapshot.Rows, domain.RawRow{
			HoodID:   hoodID,
			AreaName: areaName,
			Cells:    cells,
		})
	}

	return snapshot, nil
}

// isBlankRow reports whether every cell of the row is empty.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
