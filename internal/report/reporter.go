// Package report provides the diagnostic collaborators invoked by the
// preprocessing stages: missing-value summaries and numeric feature
// exploration. Reporters only read the table; they never alter data, and
// their output format is not part of the pipeline contract.
package report

import (
	"context"
	"log/slog"

	"housingprep/internal/dataset"
)

// Reporter consumes the current table and emits a diagnostic report.
type Reporter interface {
	// MissingValues reports per-column missing-value counts.
	MissingValues(ctx context.Context, t *dataset.Table)

	// NumericFeatures reports summary statistics for every numeric column
	// and its correlation with the target column when the target exists.
	NumericFeatures(ctx context.Context, t *dataset.Table, target string)
}

// LogReporter implements Reporter on top of slog.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter writing to the given logger.
// A nil logger falls back to slog.Default().
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// MissingValues logs the missing-value count for each column that has any.
func (r *LogReporter) MissingValues(ctx context.Context, t *dataset.Table) {
	total := 0
	for _, col := range t.Columns() {
		s, _ := t.Column(col)
		if n := s.MissingCount(); n > 0 {
			total += n
			r.logger.InfoContext(ctx, "column has missing values",
				slog.String("column", col),
				slog.Int("missing", n),
				slog.Int("rows", s.Len()))
		}
	}
	if total == 0 {
		r.logger.InfoContext(ctx, "no missing values found")
		return
	}
	r.logger.InfoContext(ctx, "missing value summary",
		slog.Int("total_missing", total))
}

// NumericFeatures logs min/max/mean/std for each numeric column, plus its
// Pearson correlation with the target column when both are numeric.
func (r *LogReporter) NumericFeatures(ctx context.Context, t *dataset.Table, target string) {
	targetSeries, hasTarget := t.Column(target)
	if hasTarget && targetSeries.Kind != dataset.Numeric {
		hasTarget = false
	}

	for _, col := range t.NumericColumns() {
		s, _ := t.Column(col)
		values := s.ValidFloats()
		if len(values) == 0 {
			continue
		}
		min, max := dataset.MinMax(values)
		mean, std := dataset.MeanStd(values)

		attrs := []any{
			slog.String("column", col),
			slog.Float64("min", min),
			slog.Float64("max", max),
			slog.Float64("mean", mean),
			slog.Float64("std", std),
		}
		if hasTarget && col != target && s.MissingCount() == 0 && targetSeries.MissingCount() == 0 {
			corr := dataset.Correlation(s.Floats, targetSeries.Floats)
			attrs = append(attrs, slog.Float64("target_correlation", corr))
		}
		r.logger.InfoContext(ctx, "numeric feature", attrs...)
	}
}

// NopReporter is a Reporter that discards everything. Useful in tests.
type NopReporter struct{}

// MissingValues implements Reporter.
func (NopReporter) MissingValues(context.Context, *dataset.Table) {}

// NumericFeatures implements Reporter.
func (NopReporter) NumericFeatures(context.Context, *dataset.Table, string) {}
