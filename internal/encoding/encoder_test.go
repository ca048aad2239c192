package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housingprep/internal/dataset"
)

func trainTable(t *testing.T) *dataset.Table {
	t.Helper()
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("Area", dataset.NewNumericSeries([]float64{50, 70, 90, 110})))
	require.NoError(t, table.AddColumn("PropertyType", dataset.NewCategoricalSeries(
		[]string{"flat", "house", "flat", "loft"})))
	return table
}

func TestColumnEncoder_TransformBeforeFit(t *testing.T) {
	enc := NewColumnEncoder()
	_, err := enc.Transform(trainTable(t))
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestColumnEncoder_StandardizesNumericColumns(t *testing.T) {
	enc := NewColumnEncoder()
	encoded, err := enc.FitTransform(trainTable(t))
	require.NoError(t, err)

	rows, _ := encoded.Dims()
	values := make([]float64, rows)
	for r := 0; r < rows; r++ {
		values[r] = encoded.At(r, 0)
	}
	mean, std := dataset.MeanStd(values)
	assert.InDelta(t, 0, mean, 1e-9)
	assert.InDelta(t, 1, std, 1e-9)
}

func TestColumnEncoder_OneHotLayout(t *testing.T) {
	enc := NewColumnEncoder()
	encoded, err := enc.FitTransform(trainTable(t))
	require.NoError(t, err)

	_, cols := encoded.Dims()
	assert.Equal(t, 4, cols) // Area + {flat, house, loft}
	assert.Equal(t, []string{"Area", "PropertyType=flat", "PropertyType=house", "PropertyType=loft"},
		enc.FeatureNames())

	// Row 0 is a flat: indicator block is (1, 0, 0).
	assert.Equal(t, 1.0, encoded.At(0, 1))
	assert.Equal(t, 0.0, encoded.At(0, 2))
	assert.Equal(t, 0.0, encoded.At(0, 3))

	// Each row has exactly one indicator set.
	rows, _ := encoded.Dims()
	for r := 0; r < rows; r++ {
		sum := encoded.At(r, 1) + encoded.At(r, 2) + encoded.At(r, 3)
		assert.Equal(t, 1.0, sum, "row %d", r)
	}
}

func TestColumnEncoder_UnseenCategoryIsAllZero(t *testing.T) {
	enc := NewColumnEncoder()
	_, err := enc.FitTransform(trainTable(t))
	require.NoError(t, err)

	test := dataset.NewTable()
	require.NoError(t, test.AddColumn("Area", dataset.NewNumericSeries([]float64{80})))
	require.NoError(t, test.AddColumn("PropertyType", dataset.NewCategoricalSeries([]string{"castle"})))

	encoded, err := enc.Transform(test)
	require.NoError(t, err)

	for c := 1; c < 4; c++ {
		assert.Equal(t, 0.0, encoded.At(0, c), "indicator column %d", c)
	}
}

func TestColumnEncoder_ImputesAtTransformTime(t *testing.T) {
	enc := NewColumnEncoder()
	_, err := enc.FitTransform(trainTable(t))
	require.NoError(t, err)

	test := dataset.NewTable()
	require.NoError(t, test.AddColumn("Area", &dataset.Series{
		Kind:   dataset.Numeric,
		Floats: []float64{0},
		Valid:  []bool{false},
	}))
	require.NoError(t, test.AddColumn("PropertyType", &dataset.Series{
		Kind:    dataset.Categorical,
		Strings: []string{""},
		Valid:   []bool{false},
	}))

	encoded, err := enc.Transform(test)
	require.NoError(t, err)

	// Missing Area imputes to the train median (80), standardized with the
	// train mean (80) and std, so the encoded value is exactly zero.
	assert.InDelta(t, 0, encoded.At(0, 0), 1e-12)

	// Missing category imputes to the train mode; the tie between the
	// singletons resolves to "flat" which appears twice.
	assert.Equal(t, 1.0, encoded.At(0, 1))
}

func TestColumnEncoder_TransformMissingColumn(t *testing.T) {
	enc := NewColumnEncoder()
	_, err := enc.FitTransform(trainTable(t))
	require.NoError(t, err)

	test := dataset.NewTable()
	require.NoError(t, test.AddColumn("Area", dataset.NewNumericSeries([]float64{80})))

	_, err = enc.Transform(test)
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
}

func TestColumnEncoder_FitEmptyTable(t *testing.T) {
	enc := NewColumnEncoder()
	err := enc.Fit(dataset.NewTable())
	assert.ErrorIs(t, err, dataset.ErrEmptyTable)
}
