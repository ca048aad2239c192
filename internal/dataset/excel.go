package dataset

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// LoadExcel reads the first sheet with a usable header from an .xlsx file
// into a Table, going through the same type-inference path as LoadCSV.
func LoadExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil || len(sheetRows) == 0 {
			continue
		}
		if hasHeader(sheetRows[0]) {
			rows = trimEmptyRows(sheetRows)
			sheetName = name
			break
		}
	}
	if sheetName == "" {
		return nil, fmt.Errorf("read %s: no sheet with a header row", path)
	}

	table, err := buildTable(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	slog.Info("Loaded Excel file",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	return table, nil
}

// hasHeader reports whether a row looks like a column header: at least one
// non-empty cell.
func hasHeader(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return true
		}
	}
	return false
}

// trimEmptyRows trims trailing fully-empty rows from a sheet.
func trimEmptyRows(rows [][]string) [][]string {
	last := len(rows)
	for last > 0 && !hasHeader(rows[last-1]) {
		last--
	}
	return rows[:last]
}
