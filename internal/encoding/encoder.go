// Package encoding implements the final pipeline stage: a randomized
// train/test split and a fitted numeric+categorical column transform that
// produces model-ready matrices.
package encoding

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"housingprep/internal/dataset"
)

// ErrNotFitted is returned by Transform when Fit has not run yet.
var ErrNotFitted = errors.New("encoder is not fitted")

// ColumnEncoder is a combined column transform. Numeric columns receive
// median imputation followed by standardization; categorical columns
// receive most-frequent imputation followed by one-hot expansion over the
// categories observed at fit time. Unseen categories at transform time map
// to an all-zero indicator block.
//
// Fit statistics come exclusively from the table passed to Fit, so fitting
// on the training split and transforming both splits keeps test data out of
// the statistics. The fitted encoder can be reused on new data at
// inference time.
type ColumnEncoder struct {
	numericCols     []string
	categoricalCols []string

	medians map[string]float64
	means   map[string]float64
	stds    map[string]float64

	modes      map[string]string
	categories map[string][]string // sorted, per categorical column

	fitted bool
}

// NewColumnEncoder creates an unfitted encoder.
func NewColumnEncoder() *ColumnEncoder {
	return &ColumnEncoder{
		medians:    make(map[string]float64),
		means:      make(map[string]float64),
		stds:       make(map[string]float64),
		modes:      make(map[string]string),
		categories: make(map[string][]string),
	}
}

// Fit learns imputation, standardization, and one-hot statistics from the
// table. Column kinds are taken from the table's dtypes.
func (e *ColumnEncoder) Fit(t *dataset.Table) error {
	if t.NumRows() == 0 {
		return dataset.ErrEmptyTable
	}

	e.numericCols = t.NumericColumns()
	e.categoricalCols = t.CategoricalColumns()

	for _, col := range e.numericCols {
		s, _ := t.Column(col)
		values := s.ValidFloats()
		if len(values) == 0 {
			return fmt.Errorf("fit column %q: no non-missing values", col)
		}
		median := dataset.Median(values)
		e.medians[col] = median

		// Standardization statistics are computed after imputation, the
		// same way a fitted imputer+scaler pipeline would see the data.
		imputed := make([]float64, s.Len())
		for i := range imputed {
			if s.Valid[i] {
				imputed[i] = s.Floats[i]
			} else {
				imputed[i] = median
			}
		}
		mean, std := dataset.MeanStd(imputed)
		e.means[col] = mean
		e.stds[col] = std
	}

	for _, col := range e.categoricalCols {
		s, _ := t.Column(col)
		values := s.ValidStrings()
		mode := dataset.Mode(values)
		e.modes[col] = mode

		seen := make(map[string]struct{})
		for i, v := range s.Strings {
			if !s.Valid[i] {
				v = mode
			}
			seen[v] = struct{}{}
		}
		cats := make([]string, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.categories[col] = cats
	}

	e.fitted = true
	return nil
}

// Transform encodes the table into a dense matrix using the fitted
// statistics. Numeric features come first in fit-time column order,
// followed by the one-hot blocks of the categorical features.
func (e *ColumnEncoder) Transform(t *dataset.Table) (*mat.Dense, error) {
	if !e.fitted {
		return nil, ErrNotFitted
	}

	rows := t.NumRows()
	cols := e.NumFeatures()
	if rows == 0 || cols == 0 {
		// mat.NewDense rejects zero dimensions; an empty Dense keeps the
		// no-rows split usable (Dims reports 0, 0).
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(rows, cols, nil)

	c := 0
	for _, col := range e.numericCols {
		s, ok := t.Column(col)
		if !ok || s.Kind != dataset.Numeric {
			return nil, fmt.Errorf("transform: numeric column %q: %w", col, dataset.ErrColumnNotFound)
		}
		std := e.stds[col]
		for r := 0; r < rows; r++ {
			v := e.medians[col]
			if s.Valid[r] {
				v = s.Floats[r]
			}
			v -= e.means[col]
			if std > 0 {
				v /= std
			}
			out.Set(r, c, v)
		}
		c++
	}

	for _, col := range e.categoricalCols {
		s, ok := t.Column(col)
		if !ok || s.Kind != dataset.Categorical {
			return nil, fmt.Errorf("transform: categorical column %q: %w", col, dataset.ErrColumnNotFound)
		}
		cats := e.categories[col]
		index := make(map[string]int, len(cats))
		for i, v := range cats {
			index[v] = i
		}
		for r := 0; r < rows; r++ {
			v := e.modes[col]
			if s.Valid[r] {
				v = s.Strings[r]
			}
			// Unseen categories leave the whole block at zero.
			if i, known := index[v]; known {
				out.Set(r, c+i, 1)
			}
		}
		c += len(cats)
	}

	return out, nil
}

// FitTransform fits the encoder and transforms the same table.
func (e *ColumnEncoder) FitTransform(t *dataset.Table) (*mat.Dense, error) {
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e.Transform(t)
}

// NumFeatures returns the width of the encoded matrix.
func (e *ColumnEncoder) NumFeatures() int {
	n := len(e.numericCols)
	for _, col := range e.categoricalCols {
		n += len(e.categories[col])
	}
	return n
}

// FeatureNames returns the expanded output column names: numeric columns
// keep their name, one-hot columns are named column=category.
func (e *ColumnEncoder) FeatureNames() []string {
	names := make([]string, 0, e.NumFeatures())
	names = append(names, e.numericCols...)
	for _, col := range e.categoricalCols {
		for _, cat := range e.categories[col] {
			names = append(names, col+"="+cat)
		}
	}
	return names
}
