package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// missing reports whether a raw cell should be treated as a missing value.
func missing(cell string) bool {
	v := strings.TrimSpace(cell)
	return v == "" || strings.EqualFold(v, "NA") || strings.EqualFold(v, "NaN")
}

// Load reads a tabular file into a Table, dispatching on the file
// extension: .csv goes through LoadCSV, .xlsx through LoadExcel.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadExcel(path)
	default:
		return nil, fmt.Errorf("load %s: unsupported file extension", path)
	}
}

// LoadCSV reads a CSV file with a header row into a Table. Column kinds are
// inferred from the data: a column is numeric iff every non-missing cell
// parses as a float64.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: %w", path, ErrEmptyTable)
	}

	header := records[0]
	// Strip a UTF-8 BOM if the file carries one.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table, err := buildTable(header, records[1:])
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	slog.Info("Loaded CSV file",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	return table, nil
}

// buildTable converts a header plus raw string rows into a typed Table.
// Short rows are padded with missing cells so ragged input still loads.
func buildTable(header []string, rows [][]string) (*Table, error) {
	table := NewTable()

	for c, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Column%d", c+1)
		}

		cells := make([]string, len(rows))
		valid := make([]bool, len(rows))
		numeric := true
		for r, row := range rows {
			if c >= len(row) || missing(row[c]) {
				continue
			}
			cells[r] = strings.TrimSpace(row[c])
			valid[r] = true
			if numeric {
				if _, err := strconv.ParseFloat(cells[r], 64); err != nil {
					numeric = false
				}
			}
		}

		var series *Series
		if numeric {
			floats := make([]float64, len(rows))
			for r := range rows {
				if valid[r] {
					floats[r], _ = strconv.ParseFloat(cells[r], 64)
				}
			}
			series = &Series{Kind: Numeric, Floats: floats, Valid: valid}
		} else {
			series = &Series{Kind: Categorical, Strings: cells, Valid: valid}
		}

		if err := table.AddColumn(name, series); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// SaveCSV writes the table to a CSV file, creating parent directories as
// needed. The output carries a UTF-8 BOM so Excel recognizes the encoding.
func SaveCSV(table *Table, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	columns := table.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(columns))
	for r := 0; r < table.NumRows(); r++ {
		for c, col := range columns {
			s, _ := table.Column(col)
			record[c] = s.CellString(r)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	slog.Info("Saved CSV file",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", table.NumCols()))

	return nil
}
