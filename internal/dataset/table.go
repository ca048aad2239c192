package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors returned by table operations.
var (
	// ErrColumnNotFound indicates a caller asked for a column the table
	// does not contain. The encoding stage treats this as a contract
	// violation when the target column is missing.
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyTable indicates an operation that requires at least one row.
	ErrEmptyTable = errors.New("table has no rows")
)

// Kind identifies the semantic type of a column.
type Kind int

const (
	// Numeric columns hold float64 values.
	Numeric Kind = iota
	// Categorical columns hold string values.
	Categorical
)

// String returns a human-readable kind name for logging.
func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Series is a single column of a Table. Exactly one of Floats or Strings is
// populated depending on Kind; Valid marks which cells are present. All
// three slices share the same length for a populated kind.
type Series struct {
	Kind    Kind
	Floats  []float64
	Strings []string
	Valid   []bool
}

// NewNumericSeries creates a fully-valid numeric series from values.
func NewNumericSeries(values []float64) *Series {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return &Series{Kind: Numeric, Floats: values, Valid: valid}
}

// NewCategoricalSeries creates a fully-valid categorical series from values.
func NewCategoricalSeries(values []string) *Series {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return &Series{Kind: Categorical, Strings: values, Valid: valid}
}

// Len returns the number of cells in the series.
func (s *Series) Len() int {
	if s.Kind == Numeric {
		return len(s.Floats)
	}
	return len(s.Strings)
}

// MissingCount returns the number of missing cells.
func (s *Series) MissingCount() int {
	n := 0
	for _, ok := range s.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// ValidFloats returns the non-missing numeric values in row order.
func (s *Series) ValidFloats() []float64 {
	out := make([]float64, 0, len(s.Floats))
	for i, v := range s.Floats {
		if s.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// ValidStrings returns the non-missing categorical values in row order.
func (s *Series) ValidStrings() []string {
	out := make([]string, 0, len(s.Strings))
	for i, v := range s.Strings {
		if s.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// UniqueCount returns the number of distinct non-missing values.
func (s *Series) UniqueCount() int {
	seen := make(map[string]struct{})
	for i := 0; i < s.Len(); i++ {
		if !s.Valid[i] {
			continue
		}
		seen[s.cellKey(i)] = struct{}{}
	}
	return len(seen)
}

// Clone returns a deep copy of the series.
func (s *Series) Clone() *Series {
	out := &Series{Kind: s.Kind}
	if s.Floats != nil {
		out.Floats = append([]float64(nil), s.Floats...)
	}
	if s.Strings != nil {
		out.Strings = append([]string(nil), s.Strings...)
	}
	out.Valid = append([]bool(nil), s.Valid...)
	return out
}

// cellKey returns a canonical string for a cell, used for duplicate and
// uniqueness detection.
func (s *Series) cellKey(row int) string {
	if !s.Valid[row] {
		return "\x00missing"
	}
	if s.Kind == Numeric {
		return strconv.FormatFloat(s.Floats[row], 'g', -1, 64)
	}
	return s.Strings[row]
}

// CellString formats a cell for CSV output. Missing cells render empty.
func (s *Series) CellString(row int) string {
	if !s.Valid[row] {
		return ""
	}
	if s.Kind == Numeric {
		return strconv.FormatFloat(s.Floats[row], 'f', -1, 64)
	}
	return s.Strings[row]
}

// Table is an ordered collection of named columns with equal row counts.
type Table struct {
	columns []string
	series  map[string]*Series
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{series: make(map[string]*Series)}
}

// AddColumn appends a column to the table. Adding a column whose length
// disagrees with the existing row count, or whose name already exists,
// is an error.
func (t *Table) AddColumn(name string, s *Series) error {
	if _, exists := t.series[name]; exists {
		return fmt.Errorf("add column %q: already present", name)
	}
	if len(t.columns) > 0 && s.Len() != t.NumRows() {
		return fmt.Errorf("add column %q: length %d does not match row count %d",
			name, s.Len(), t.NumRows())
	}
	t.columns = append(t.columns, name)
	t.series[name] = s
	return nil
}

// Columns returns the column names in order. The returned slice is a copy.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.series[name]
	return ok
}

// Column returns the named series and whether it exists.
func (t *Table) Column(name string) (*Series, bool) {
	s, ok := t.series[name]
	return s, ok
}

// DropColumn removes the named column. Dropping an absent column is a no-op.
func (t *Table) DropColumn(name string) {
	if _, ok := t.series[name]; !ok {
		return
	}
	delete(t.series, name)
	for i, col := range t.columns {
		if col == name {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			break
		}
	}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.series[t.columns[0]].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, col := range t.columns {
		out.columns = append(out.columns, col)
		out.series[col] = t.series[col].Clone()
	}
	return out
}

// RowKey returns a canonical fingerprint of a row across all columns,
// used for exact-duplicate detection.
func (t *Table) RowKey(row int) string {
	var b strings.Builder
	for _, col := range t.columns {
		b.WriteString(t.series[col].cellKey(row))
		b.WriteByte('\x1f')
	}
	return b.String()
}

// Select returns a new table containing the given rows, in the given order.
func (t *Table) Select(rows []int) *Table {
	out := NewTable()
	for _, col := range t.columns {
		src := t.series[col]
		dst := &Series{Kind: src.Kind, Valid: make([]bool, len(rows))}
		if src.Kind == Numeric {
			dst.Floats = make([]float64, len(rows))
		} else {
			dst.Strings = make([]string, len(rows))
		}
		for i, r := range rows {
			dst.Valid[i] = src.Valid[r]
			if src.Kind == Numeric {
				dst.Floats[i] = src.Floats[r]
			} else {
				dst.Strings[i] = src.Strings[r]
			}
		}
		out.columns = append(out.columns, col)
		out.series[col] = dst
	}
	return out
}

// Filter returns a new table containing only the rows where keep is true.
func (t *Table) Filter(keep []bool) *Table {
	rows := make([]int, 0, len(keep))
	for i, k := range keep {
		if k {
			rows = append(rows, i)
		}
	}
	return t.Select(rows)
}

// NumericColumns returns the names of numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, col := range t.columns {
		if t.series[col].Kind == Numeric {
			out = append(out, col)
		}
	}
	return out
}

// CategoricalColumns returns the names of categorical columns in table order.
func (t *Table) CategoricalColumns() []string {
	var out []string
	for _, col := range t.columns {
		if t.series[col].Kind == Categorical {
			out = append(out, col)
		}
	}
	return out
}
