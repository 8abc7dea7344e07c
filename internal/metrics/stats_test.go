package metrics

import (
	"math"
	"testing"

	"github.com/nktomer45/planboard/internal/domain"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeColumnStatsQuartiles(t *testing.T) {
	s := ComputeColumnStats([]float64{1, 2, 3, 4})

	if !approxEqual(s.Q1, 1.75) {
		t.Errorf("Q1 = %v, want 1.75", s.Q1)
	}
	if !approxEqual(s.Q3, 3.25) {
		t.Errorf("Q3 = %v, want 3.25", s.Q3)
	}
	if !approxEqual(s.Avg, 2.5) {
		t.Errorf("Avg = %v, want 2.5", s.Avg)
	}
	// population std-dev: sqrt(5/4)
	if !approxEqual(s.StdDev, math.Sqrt(1.25)) {
		t.Errorf("StdDev = %v, want %v", s.StdDev, math.Sqrt(1.25))
	}
}

func TestComputeColumnStatsUnsortedInput(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	s := ComputeColumnStats(values)

	if !approxEqual(s.Q1, 1.75) || !approxEqual(s.Q3, 3.25) {
		t.Errorf("quartiles = (%v, %v), want (1.75, 3.25)", s.Q1, s.Q3)
	}
	if values[0] != 4 || values[1] != 1 {
		t.Errorf("input was reordered: %v", values)
	}
}

func TestComputeColumnStatsEmpty(t *testing.T) {
	s := ComputeColumnStats(nil)
	for name, v := range map[string]float64{"avg": s.Avg, "std_dev": s.StdDev, "q1": s.Q1, "q3": s.Q3} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"single value", []float64{7}, 25, 7},
		{"exact index", []float64{1, 2, 3, 4, 5}, 25, 2},
		{"interpolated", []float64{10, 20}, 75, 17.5},
		{"median of even", []float64{1, 2, 3, 4}, 50, 2.5},
		{"max", []float64{3, 9, 1}, 100, 9},
		{"min", []float64{3, 9, 1}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.values, tt.p); !approxEqual(got, tt.want) {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestOutlierBoundsAreStrict(t *testing.T) {
	s := ComputeColumnStats([]float64{1, 2, 3, 4})
	// IQR = 1.5, upper fence = 5.5, lower fence = -0.5

	tests := []struct {
		value    float64
		wantHigh bool
		wantLow  bool
	}{
		{5.5, false, false},
		{5.51, true, false},
		{-0.5, false, false},
		{-0.51, false, true},
		{2.5, false, false},
	}

	for _, tt := range tests {
		if got := IsHighOutlier(tt.value, s); got != tt.wantHigh {
			t.Errorf("IsHighOutlier(%v) = %v, want %v", tt.value, got, tt.wantHigh)
		}
		if got := IsLowOutlier(tt.value, s); got != tt.wantLow {
			t.Errorf("IsLowOutlier(%v) = %v, want %v", tt.value, got, tt.wantLow)
		}
	}
}

func TestOutliersMutuallyExclusive(t *testing.T) {
	statsSets := []domain.ColumnStat{
		{Q1: 0, Q3: 0},
		{Q1: 1, Q3: 2},
		{Q1: -10, Q3: 10},
		{Q1: 3.25, Q3: 3.25},
	}

	for _, s := range statsSets {
		for v := -50.0; v <= 50; v += 0.25 {
			if IsHighOutlier(v, s) && IsLowOutlier(v, s) {
				t.Fatalf("value %v is both high and low outlier for %+v", v, s)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	s, ok := Summarize([]float64{3, 1, 2, 4})
	if !ok {
		t.Fatal("Summarize returned ok=false for non-empty input")
	}

	if s.Min != 1 || s.Max != 4 {
		t.Errorf("min/max = %v/%v, want 1/4", s.Min, s.Max)
	}
	if !approxEqual(s.Avg, 2.5) || !approxEqual(s.Median, 2.5) {
		t.Errorf("avg/median = %v/%v, want 2.5/2.5", s.Avg, s.Median)
	}
	if !approxEqual(s.StdDev, math.Sqrt(1.25)) {
		t.Errorf("std dev = %v, want %v", s.StdDev, math.Sqrt(1.25))
	}

	odd, _ := Summarize([]float64{5, 1, 3})
	if odd.Median != 3 {
		t.Errorf("odd median = %v, want 3", odd.Median)
	}

	if _, ok := Summarize(nil); ok {
		t.Error("Summarize(nil) should report ok=false")
	}
}
