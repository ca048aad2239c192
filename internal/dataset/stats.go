package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the median of values using linear interpolation between
// the two middle order statistics, matching the convention of the upstream
// dataset tooling. Returns NaN for an empty input.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile returns the p-quantile (0 <= p <= 1) of values using linear
// interpolation between the two closest order statistics, the convention
// the upstream dataset tooling uses. Returns NaN for an empty input.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// Mode returns the most frequent value among values. Ties are broken
// deterministically: highest count first, then the lexicographically
// smallest value. Returns the zero string for an empty input.
func Mode(values []string) string {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	best := ""
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best
}

// Correlation returns the Pearson correlation coefficient of x and y.
// Returns NaN when either side has zero variance or the lengths disagree.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// MeanStd returns the mean and population standard deviation of values.
// The population form (divide by n) matches the standardization statistics
// used by the fitted encoder.
func MeanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	mean = stat.Mean(values, nil)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	std = math.Sqrt(ss / float64(len(values)))
	return mean, std
}

// MinMax returns the smallest and largest of values.
func MinMax(values []float64) (min, max float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
