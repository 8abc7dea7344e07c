package metrics

import (
	"math"
	"sort"

	"github.com/nktomer45/planboard/internal/domain"
)

// outlierFactor is the IQR multiplier of the 1.5×IQR fence rule
const outlierFactor = 1.5

// ComputeColumnStats returns the mean, population standard deviation and the
// first and third quartiles of values. Every field is NaN when values is
// empty, so callers must check for empty columns first.
func ComputeColumnStats(values []float64) domain.ColumnStat {
	if len(values) == 0 {
		nan := math.NaN()
		return domain.ColumnStat{Avg: nan, StdDev: nan, Q1: nan, Q3: nan}
	}

	avg := mean(values)

	return domain.ColumnStat{
		Avg:    avg,
		StdDev: populationStdDev(values, avg),
		Q1:     Percentile(values, 25),
		Q3:     Percentile(values, 75),
	}
}

// Percentile returns the p-th percentile of values using linear interpolation
// between the closest order statistics. values is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	idx := (p / 100) * float64(len(sorted)-1)
	lower := math.Floor(idx)
	if lower == idx {
		return sorted[int(idx)]
	}

	upper := math.Ceil(idx)
	weight := idx - lower

	return sorted[int(lower)]*(1-weight) + sorted[int(upper)]*weight
}

// IsHighOutlier reports whether v lies strictly above Q3 + 1.5×IQR.
func IsHighOutlier(v float64, s domain.ColumnStat) bool {
	iqr := s.Q3 - s.Q1
	return v > s.Q3+outlierFactor*iqr
}

// IsLowOutlier reports whether v lies strictly below Q1 - 1.5×IQR.
func IsLowOutlier(v float64, s domain.ColumnStat) bool {
	iqr := s.Q3 - s.Q1
	return v < s.Q1-outlierFactor*iqr
}

// Summarize computes the min/max/avg/median/std-dev card for a column.
// ok is false for an empty column.
func Summarize(values []float64) (domain.Summary, bool) {
	if len(values) == 0 {
		return domain.Summary{}, false
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	avg := mean(values)

	return domain.Summary{
		Min:    minV,
		Max:    maxV,
		Avg:    avg,
		Median: median(values),
		StdDev: populationStdDev(values, avg),
	}, true
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64, avg float64) float64 {
	var sq float64
	for _, v := range values {
		d := v - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
