// Package cleaning implements the first pipeline stage: duplicate and
// degenerate-column removal, missing-value imputation, IQR outlier capping,
// and redundant-column pruning.
package cleaning

import (
	"context"
	"log/slog"
	"math"

	"housingprep/internal/dataset"
	"housingprep/internal/report"
)

// idColumn is a non-feature row identifier dropped before modeling.
const idColumn = "Id"

// outlierColumns are the columns subject to IQR capping when present.
var outlierColumns = []string{"Price", "Price M2", "AreaNet", "AreaGross"}

// correlationFloor is the minimum |Pearson r| between Price M2 and Price
// below which Price M2 is considered a low-value duplicate of the target
// signal and dropped.
const correlationFloor = 0.3

// Stats summarizes the actions a cleaning run took.
type Stats struct {
	DuplicatesRemoved int
	ColumnsDropped    []string
	ValuesImputed     int
	OutliersCapped    map[string]int
}

// Cleaner removes duplicate and degenerate data, imputes missing values,
// and caps outliers. All steps guard on column presence and skip silently
// when their preconditions do not hold; Clean never fails.
type Cleaner struct {
	logger   *slog.Logger
	reporter report.Reporter
}

// New creates a Cleaner. A nil logger falls back to slog.Default(); a nil
// reporter disables diagnostics.
func New(logger *slog.Logger, reporter report.Reporter) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = report.NopReporter{}
	}
	return &Cleaner{logger: logger, reporter: reporter}
}

// Clean returns a cleaned copy of the table together with a summary of the
// actions taken. The input table is never mutated.
func (c *Cleaner) Clean(ctx context.Context, t *dataset.Table) (*dataset.Table, Stats) {
	cleaned := t.Clone()
	stats := Stats{OutliersCapped: make(map[string]int)}

	cleaned = c.dropDuplicates(ctx, cleaned, &stats)
	c.dropConstantColumns(ctx, cleaned, &stats)
	c.dropIDColumn(ctx, cleaned, &stats)

	c.reporter.MissingValues(ctx, cleaned)
	c.impute(ctx, cleaned, &stats)

	for _, col := range outlierColumns {
		c.capOutliers(ctx, cleaned, col, &stats)
	}

	c.pruneRedundantPrice(ctx, cleaned, &stats)

	return cleaned, stats
}

// dropDuplicates removes exact-duplicate rows, keeping first occurrences.
func (c *Cleaner) dropDuplicates(ctx context.Context, t *dataset.Table, stats *Stats) *dataset.Table {
	seen := make(map[string]struct{}, t.NumRows())
	keep := make([]bool, t.NumRows())
	removed := 0
	for r := 0; r < t.NumRows(); r++ {
		key := t.RowKey(r)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		keep[r] = true
	}
	if removed == 0 {
		return t
	}
	stats.DuplicatesRemoved = removed
	c.logger.InfoContext(ctx, "removed duplicate rows",
		slog.Int("count", removed))
	return t.Filter(keep)
}

// dropConstantColumns removes columns whose non-missing values all agree.
func (c *Cleaner) dropConstantColumns(ctx context.Context, t *dataset.Table, stats *Stats) {
	for _, col := range t.Columns() {
		s, _ := t.Column(col)
		if s.UniqueCount() != 1 {
			continue
		}
		t.DropColumn(col)
		stats.ColumnsDropped = append(stats.ColumnsDropped, col)
		c.logger.InfoContext(ctx, "removed single-value column",
			slog.String("column", col))
	}
}

// dropIDColumn removes the row-identifier column if present.
func (c *Cleaner) dropIDColumn(ctx context.Context, t *dataset.Table, stats *Stats) {
	if !t.HasColumn(idColumn) {
		return
	}
	t.DropColumn(idColumn)
	stats.ColumnsDropped = append(stats.ColumnsDropped, idColumn)
	c.logger.InfoContext(ctx, "removed redundant Id column")
}

// impute fills missing numeric cells with the column median and missing
// categorical cells with the column mode (deterministic tie-break, see
// dataset.Mode).
func (c *Cleaner) impute(ctx context.Context, t *dataset.Table, stats *Stats) {
	for _, col := range t.Columns() {
		s, _ := t.Column(col)
		n := s.MissingCount()
		if n == 0 {
			continue
		}

		if s.Kind == dataset.Numeric {
			median := dataset.Median(s.ValidFloats())
			for i := range s.Floats {
				if !s.Valid[i] {
					s.Floats[i] = median
					s.Valid[i] = true
				}
			}
			c.logger.InfoContext(ctx, "imputed numeric column with median",
				slog.String("column", col),
				slog.Int("count", n),
				slog.Float64("median", median))
		} else {
			mode := dataset.Mode(s.ValidStrings())
			for i := range s.Strings {
				if !s.Valid[i] {
					s.Strings[i] = mode
					s.Valid[i] = true
				}
			}
			c.logger.InfoContext(ctx, "imputed categorical column with mode",
				slog.String("column", col),
				slog.Int("count", n),
				slog.String("mode", mode))
		}
		stats.ValuesImputed += n
	}
}

// capOutliers clamps values of col outside [Q1-1.5*IQR, Q3+1.5*IQR] to the
// nearest bound. Bounds are computed once from the column's current values.
func (c *Cleaner) capOutliers(ctx context.Context, t *dataset.Table, col string, stats *Stats) {
	s, ok := t.Column(col)
	if !ok || s.Kind != dataset.Numeric {
		return
	}

	values := s.ValidFloats()
	if len(values) == 0 {
		return
	}
	q1 := dataset.Quantile(values, 0.25)
	q3 := dataset.Quantile(values, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	capped := 0
	for i, v := range s.Floats {
		if !s.Valid[i] {
			continue
		}
		switch {
		case v < lower:
			s.Floats[i] = lower
			capped++
		case v > upper:
			s.Floats[i] = upper
			capped++
		}
	}
	if capped == 0 {
		return
	}
	stats.OutliersCapped[col] = capped
	c.logger.InfoContext(ctx, "capped outliers",
		slog.String("column", col),
		slog.Int("count", capped),
		slog.Float64("lower_bound", lower),
		slog.Float64("upper_bound", upper))
}

// pruneRedundantPrice drops Price M2 when its correlation with Price is too
// weak for the column to carry signal of its own.
func (c *Cleaner) pruneRedundantPrice(ctx context.Context, t *dataset.Table, stats *Stats) {
	priceM2, ok := t.Column("Price M2")
	if !ok || priceM2.Kind != dataset.Numeric {
		return
	}
	price, ok := t.Column("Price")
	if !ok || price.Kind != dataset.Numeric {
		return
	}

	corr := dataset.Correlation(priceM2.Floats, price.Floats)
	c.logger.InfoContext(ctx, "correlation between Price M2 and Price",
		slog.Float64("correlation", corr))

	if math.IsNaN(corr) || math.Abs(corr) >= correlationFloor {
		return
	}
	t.DropColumn("Price M2")
	stats.ColumnsDropped = append(stats.ColumnsDropped, "Price M2")
	c.logger.InfoContext(ctx, "removed Price M2 due to low correlation with target",
		slog.Float64("correlation", corr))
}
