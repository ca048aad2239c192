package features

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housingprep/internal/dataset"
)

func newEngineer() *Engineer {
	return New(nil, nil)
}

func floats(t *testing.T, tb *dataset.Table, name string) []float64 {
	t.Helper()
	s, ok := tb.Column(name)
	require.True(t, ok, "column %s", name)
	require.Equal(t, dataset.Numeric, s.Kind)
	return s.Floats
}

func TestEngineer_PricePerBedroom(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		bedrooms float64
		want     float64
	}{
		{name: "normal division", price: 200000, bedrooms: 2, want: 100000},
		{name: "zero bedrooms falls back to price", price: 150000, bedrooms: 0, want: 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := dataset.NewTable()
			require.NoError(t, table.AddColumn("Price", dataset.NewNumericSeries([]float64{tt.price})))
			require.NoError(t, table.AddColumn("Bedrooms", dataset.NewNumericSeries([]float64{tt.bedrooms})))

			out := newEngineer().Engineer(context.Background(), table)
			assert.Equal(t, []float64{tt.want}, floats(t, out, "PricePerBedroom"))
		})
	}
}

func TestEngineer_BathroomToBedroom(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("Bathrooms", dataset.NewNumericSeries([]float64{3, 2})))
	require.NoError(t, table.AddColumn("Bedrooms", dataset.NewNumericSeries([]float64{2, 0})))

	out := newEngineer().Engineer(context.Background(), table)

	// Zero bedrooms falls back to the bathroom count itself.
	assert.Equal(t, []float64{1.5, 2}, floats(t, out, "BathroomToBedroom"))
}

func TestEngineer_AreaUtilizationRatio(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("AreaNet", dataset.NewNumericSeries([]float64{60, 50})))
	require.NoError(t, table.AddColumn("AreaGross", dataset.NewNumericSeries([]float64{120, 0})))

	out := newEngineer().Engineer(context.Background(), table)

	// Zero gross area falls back to zero, not to the net area.
	assert.Equal(t, []float64{0.5, 0}, floats(t, out, "AreaUtilizationRatio"))
}

func TestEngineer_PropertyCategory(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("PropertyType", dataset.NewCategoricalSeries([]string{"Apartment", "House"})))
	require.NoError(t, table.AddColumn("PropertySubType", dataset.NewCategoricalSeries([]string{"Duplex", "Villa"})))

	out := newEngineer().Engineer(context.Background(), table)

	s, ok := out.Column("PropertyCategory")
	require.True(t, ok)
	assert.Equal(t, []string{"Apartment_Duplex", "House_Villa"}, s.Strings)
}

func TestEngineer_SkipsFeaturesWithMissingSources(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("Price", dataset.NewNumericSeries([]float64{100000})))

	out := newEngineer().Engineer(context.Background(), table)

	assert.False(t, out.HasColumn("PricePerBedroom"))
	assert.False(t, out.HasColumn("BathroomToBedroom"))
	assert.False(t, out.HasColumn("AreaUtilizationRatio"))
	assert.False(t, out.HasColumn("PropertyCategory"))
	assert.Equal(t, []string{"Price"}, out.Columns())
}

func TestEngineer_DoesNotMutateInput(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("Price", dataset.NewNumericSeries([]float64{200000})))
	require.NoError(t, table.AddColumn("Bedrooms", dataset.NewNumericSeries([]float64{2})))

	out := newEngineer().Engineer(context.Background(), table)

	assert.True(t, out.HasColumn("PricePerBedroom"))
	assert.False(t, table.HasColumn("PricePerBedroom"))
	assert.Equal(t, 2, table.NumCols())
}
