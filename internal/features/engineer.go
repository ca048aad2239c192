// Package features implements the second pipeline stage: derived ratio and
// composite columns computed row-wise from existing columns.
package features

import (
	"context"
	"log/slog"

	"housingprep/internal/dataset"
	"housingprep/internal/report"
)

// Engineer derives new feature columns from a cleaned table. Each feature
// is computed independently; a feature whose source columns are absent is
// skipped without error.
type Engineer struct {
	logger   *slog.Logger
	reporter report.Reporter
	target   string
}

// New creates an Engineer. A nil logger falls back to slog.Default(); a nil
// reporter disables the post-derivation exploration report.
func New(logger *slog.Logger, reporter report.Reporter) *Engineer {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = report.NopReporter{}
	}
	return &Engineer{logger: logger, reporter: reporter, target: "Price"}
}

// Engineer returns a copy of the table with the derived features appended.
// The input table is never mutated.
func (e *Engineer) Engineer(ctx context.Context, t *dataset.Table) *dataset.Table {
	out := t.Clone()

	e.derivePricePerBedroom(out)
	e.deriveBathroomToBedroom(out)
	e.deriveAreaUtilization(out)
	e.derivePropertyCategory(out)

	e.logger.InfoContext(ctx, "created engineered features",
		slog.Int("columns", out.NumCols()))

	// Diagnostic visibility only; does not alter the table.
	e.reporter.NumericFeatures(ctx, out, e.target)

	return out
}

// derivePricePerBedroom adds Price / Bedrooms. A row with zero bedrooms
// falls back to the price itself, not to a sentinel.
func (e *Engineer) derivePricePerBedroom(t *dataset.Table) {
	price, bedrooms, ok := numericPair(t, "Price", "Bedrooms")
	if !ok {
		return
	}
	values := make([]float64, len(price.Floats))
	for i := range values {
		if bedrooms.Floats[i] > 0 {
			values[i] = price.Floats[i] / bedrooms.Floats[i]
		} else {
			values[i] = price.Floats[i]
		}
	}
	_ = t.AddColumn("PricePerBedroom", dataset.NewNumericSeries(values))
}

// deriveBathroomToBedroom adds Bathrooms / Bedrooms. A row with zero
// bedrooms falls back to the bathroom count.
func (e *Engineer) deriveBathroomToBedroom(t *dataset.Table) {
	bathrooms, bedrooms, ok := numericPair(t, "Bathrooms", "Bedrooms")
	if !ok {
		return
	}
	values := make([]float64, len(bathrooms.Floats))
	for i := range values {
		if bedrooms.Floats[i] > 0 {
			values[i] = bathrooms.Floats[i] / bedrooms.Floats[i]
		} else {
			values[i] = bathrooms.Floats[i]
		}
	}
	_ = t.AddColumn("BathroomToBedroom", dataset.NewNumericSeries(values))
}

// deriveAreaUtilization adds AreaNet / AreaGross. A row with zero gross
// area falls back to zero.
func (e *Engineer) deriveAreaUtilization(t *dataset.Table) {
	net, gross, ok := numericPair(t, "AreaNet", "AreaGross")
	if !ok {
		return
	}
	values := make([]float64, len(net.Floats))
	for i := range values {
		if gross.Floats[i] > 0 {
			values[i] = net.Floats[i] / gross.Floats[i]
		} else {
			values[i] = 0
		}
	}
	_ = t.AddColumn("AreaUtilizationRatio", dataset.NewNumericSeries(values))
}

// derivePropertyCategory adds PropertyType joined to PropertySubType with
// an underscore.
func (e *Engineer) derivePropertyCategory(t *dataset.Table) {
	ptype, ok := t.Column("PropertyType")
	if !ok || ptype.Kind != dataset.Categorical {
		return
	}
	subtype, ok := t.Column("PropertySubType")
	if !ok || subtype.Kind != dataset.Categorical {
		return
	}
	values := make([]string, len(ptype.Strings))
	for i := range values {
		values[i] = ptype.Strings[i] + "_" + subtype.Strings[i]
	}
	_ = t.AddColumn("PropertyCategory", dataset.NewCategoricalSeries(values))
}

// numericPair fetches two numeric columns, reporting whether both exist.
func numericPair(t *dataset.Table, a, b string) (*dataset.Series, *dataset.Series, bool) {
	sa, ok := t.Column(a)
	if !ok || sa.Kind != dataset.Numeric {
		return nil, nil, false
	}
	sb, ok := t.Column(b)
	if !ok || sb.Kind != dataset.Numeric {
		return nil, nil, false
	}
	return sa, sb, true
}
