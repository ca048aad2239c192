package report

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housingprep/internal/dataset"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestLogReporter_MissingValues(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("Price", &dataset.Series{
		Kind:   dataset.Numeric,
		Floats: []float64{1, 0, 3},
		Valid:  []bool{true, false, true},
	}))
	require.NoError(t, table.AddColumn("Zone", dataset.NewCategoricalSeries([]string{"a", "b", "c"})))

	logger, buf := captureLogger()
	NewLogReporter(logger).MissingValues(context.Background(), table)

	out := buf.String()
	assert.Contains(t, out, "column has missing values")
	assert.Contains(t, out, `"column":"Price"`)
	assert.Contains(t, out, `"missing":1`)
	// Fully-valid columns are not reported individually.
	assert.NotContains(t, out, `"column":"Zone"`)
}

func TestLogReporter_MissingValues_CleanTable(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("Price", dataset.NewNumericSeries([]float64{1, 2})))

	logger, buf := captureLogger()
	NewLogReporter(logger).MissingValues(context.Background(), table)

	assert.Contains(t, buf.String(), "no missing values found")
}

func TestLogReporter_NumericFeatures(t *testing.T) {
	table := dataset.NewTable()
	require.NoError(t, table.AddColumn("Price", dataset.NewNumericSeries([]float64{100, 200, 300})))
	require.NoError(t, table.AddColumn("Area", dataset.NewNumericSeries([]float64{50, 60, 70})))
	require.NoError(t, table.AddColumn("Zone", dataset.NewCategoricalSeries([]string{"a", "b", "c"})))

	logger, buf := captureLogger()
	NewLogReporter(logger).NumericFeatures(context.Background(), table, "Price")

	out := buf.String()
	assert.Contains(t, out, `"column":"Area"`)
	assert.Contains(t, out, "target_correlation")
	assert.NotContains(t, out, `"column":"Zone"`)
}

func TestNopReporter(t *testing.T) {
	// Exists so a nil collaborator can be swapped in without guards.
	var r Reporter = NopReporter{}
	r.MissingValues(context.Background(), dataset.NewTable())
	r.NumericFeatures(context.Background(), dataset.NewTable(), "Price")
}
