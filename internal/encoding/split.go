package encoding

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"housingprep/internal/dataset"
)

// idColumn mirrors the cleaner's identifier column; it is excluded from the
// feature matrix if a caller encodes a table that still carries it.
const idColumn = "Id"

// SplitOptions configures SplitAndEncode.
type SplitOptions struct {
	// TargetColumn is the label column separated out as y.
	TargetColumn string

	// TestSize is the fraction of rows assigned to the test split.
	TestSize float64

	// Seed fixes the permutation used for the split, making repeated runs
	// produce identical row assignments.
	Seed int64
}

// DefaultSplitOptions returns the conventional Price / 0.2 / 42 settings.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		TargetColumn: "Price",
		TestSize:     0.2,
		Seed:         42,
	}
}

// SplitResult bundles the outputs of SplitAndEncode.
type SplitResult struct {
	XTrain  *mat.Dense
	XTest   *mat.Dense
	YTrain  []float64
	YTest   []float64
	Encoder *ColumnEncoder
}

// SplitAndEncode separates features from the target column, performs a
// seeded random row split, fits a ColumnEncoder on the training features
// only, and applies it to both splits. The returned encoder can be reused
// on new data at inference time.
//
// A missing target column is a caller contract violation and returns an
// error wrapping dataset.ErrColumnNotFound.
func SplitAndEncode(ctx context.Context, t *dataset.Table, opts SplitOptions) (*SplitResult, error) {
	target, ok := t.Column(opts.TargetColumn)
	if !ok {
		return nil, fmt.Errorf("target column %q: %w", opts.TargetColumn, dataset.ErrColumnNotFound)
	}
	if target.Kind != dataset.Numeric {
		return nil, fmt.Errorf("target column %q is not numeric", opts.TargetColumn)
	}

	features := t.Clone()
	features.DropColumn(opts.TargetColumn)
	features.DropColumn(idColumn)

	n := t.NumRows()
	trainIdx, testIdx := splitIndices(n, opts.TestSize, opts.Seed)

	slog.InfoContext(ctx, "split dataset",
		slog.Int("train_samples", len(trainIdx)),
		slog.Int("test_samples", len(testIdx)))

	xTrain := features.Select(trainIdx)
	xTest := features.Select(testIdx)

	encoder := NewColumnEncoder()
	xTrainEnc, err := encoder.FitTransform(xTrain)
	if err != nil {
		return nil, fmt.Errorf("fit encoder on training split: %w", err)
	}
	xTestEnc, err := encoder.Transform(xTest)
	if err != nil {
		return nil, fmt.Errorf("transform test split: %w", err)
	}

	return &SplitResult{
		XTrain:  xTrainEnc,
		XTest:   xTestEnc,
		YTrain:  selectFloats(target, trainIdx),
		YTest:   selectFloats(target, testIdx),
		Encoder: encoder,
	}, nil
}

// splitIndices partitions [0, n) into train and test index sets using a
// seeded permutation. The test split takes round(testSize * n) rows.
func splitIndices(n int, testSize float64, seed int64) (train, test []int) {
	r := rand.New(rand.NewSource(seed))
	perm := r.Perm(n)

	nTest := int(math.Round(testSize * float64(n)))
	if nTest > n {
		nTest = n
	}
	return perm[nTest:], perm[:nTest]
}

// selectFloats extracts target values for the given rows.
func selectFloats(s *dataset.Series, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = s.Floats[r]
	}
	return out
}
