package metrics

import (
	"math"
	"testing"

	"github.com/nktomer45/planboard/internal/domain"
)

func rowsFromValues(v1, v2 []float64) []domain.DerivedRow {
	rows := make([]domain.DerivedRow, len(v1))
	for i := range v1 {
		rows[i] = Derive(domain.DerivedRow{Dim1: "d", Value1: v1[i], Value2: v2[i]})
	}
	return rows
}

func TestApplyConditionalFormattingHighOutlier(t *testing.T) {
	rows := rowsFromValues(
		[]float64{1, 2, 3, 4, 100},
		[]float64{1, 1, 1, 1, 1},
	)

	hints := ApplyConditionalFormatting(rows)
	if len(hints) != len(rows) {
		t.Fatalf("got %d hint rows, want %d", len(hints), len(rows))
	}

	want := domain.RowHints{
		domain.ColumnValue1:  domain.HintHighOutlier,
		domain.ColumnValue2:  domain.HintNone,
		domain.ColumnSum:     domain.HintHighlight,
		domain.ColumnProduct: domain.HintHighlight,
		domain.ColumnRatio:   domain.HintHighlight,
	}
	for col, h := range want {
		if hints[4][col] != h {
			t.Errorf("row 4 %s = %s, want %s", col, hints[4][col], h)
		}
	}

	for i := 0; i < 4; i++ {
		for _, col := range domain.DerivedColumns {
			if hints[i][col] != domain.HintNone {
				t.Errorf("row %d %s = %s, want none", i, col, hints[i][col])
			}
		}
	}
}

func TestApplyConditionalFormattingLowOutlier(t *testing.T) {
	rows := rowsFromValues(
		[]float64{-100, 10, 11, 12, 13},
		[]float64{2, 2, 2, 2, 2},
	)

	hints := ApplyConditionalFormatting(rows)
	if hints[0][domain.ColumnValue1] != domain.HintLowOutlier {
		t.Errorf("value1 hint = %s, want low-outlier", hints[0][domain.ColumnValue1])
	}
	// derived columns never carry a low tag
	for _, col := range []domain.Column{domain.ColumnSum, domain.ColumnProduct, domain.ColumnRatio} {
		if hints[0][col] != domain.HintNone {
			t.Errorf("%s hint = %s, want none", col, hints[0][col])
		}
	}
}

func TestApplyConditionalFormattingNilRatios(t *testing.T) {
	rows := rowsFromValues(
		[]float64{1, 2, 3},
		[]float64{0, 0, 0},
	)

	hints := ApplyConditionalFormatting(rows)
	for i := range rows {
		if hints[i][domain.ColumnRatio] != domain.HintNone {
			t.Errorf("row %d ratio hint = %s, want none", i, hints[i][domain.ColumnRatio])
		}
	}
}

func TestApplyConditionalFormattingDoesNotMutate(t *testing.T) {
	rows := rowsFromValues([]float64{1, 2, 3, 4, 100}, []float64{1, 1, 1, 1, 1})
	before := rows[4]

	ApplyConditionalFormatting(rows)

	if rows[4].Value1 != before.Value1 || rows[4].Sum != before.Sum {
		t.Errorf("row mutated: %+v -> %+v", before, rows[4])
	}
}

func TestApplyConditionalFormattingEmpty(t *testing.T) {
	if hints := ApplyConditionalFormatting(nil); len(hints) != 0 {
		t.Errorf("got %d hints for empty input", len(hints))
	}
}

func TestClassifyMargin(t *testing.T) {
	tests := []struct {
		gm   float64
		want domain.MarginTier
	}{
		{60, domain.TierTarget},
		{40, domain.TierTarget},
		{39.99, domain.TierAcceptable},
		{10, domain.TierAcceptable},
		{9.99, domain.TierLow},
		{5.01, domain.TierLow},
		{5, domain.TierCritical},
		{0, domain.TierCritical},
		{-25, domain.TierCritical},
	}

	for _, tt := range tests {
		if got := ClassifyMargin(tt.gm); got != tt.want {
			t.Errorf("ClassifyMargin(%v) = %s, want %s", tt.gm, got, tt.want)
		}
	}
}

func TestTierColorsAreDistinct(t *testing.T) {
	seen := map[string]domain.MarginTier{}
	for _, tier := range []domain.MarginTier{domain.TierTarget, domain.TierAcceptable, domain.TierLow, domain.TierCritical} {
		c := tier.Color()
		if other, dup := seen[c]; dup {
			t.Errorf("tiers %s and %s share colour %s", tier, other, c)
		}
		seen[c] = tier
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{FormatCurrency(1234.5), "$1,234.50"},
		{FormatCurrency(-3), "-$3.00"},
		{FormatCurrency(0), "$0.00"},
		{FormatCurrency(1234567.891), "$1,234,567.89"},
		{FormatPercent(60), "60.0%"},
		{FormatPercent(12.345), "12.3%"},
		{FormatPercent(-7.25), "-7.3%"},
		{FormatRatio(nil), "N/A"},
		{FormatRatio(ptr(2)), "2.00"},
		{FormatCurrency(math.NaN()), "N/A"},
		{FormatCurrency(math.Inf(-1)), "N/A"},
		{FormatPercent(math.Inf(1)), "N/A"},
		{FormatPercent(math.NaN()), "N/A"},
		{FormatRatio(ptr(math.Inf(1))), "N/A"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestGroupByDim1(t *testing.T) {
	rows := []domain.DerivedRow{
		{Dim1: "A", Value1: 1, Value2: 2},
		{Dim1: "B", Value1: 5, Value2: 6},
		{Dim1: "A", Value1: 3, Value2: 4},
	}

	groups := GroupByDim1(rows)
	if len(groups) != 2 || groups[0].Name != "A" || groups[1].Name != "B" {
		t.Fatalf("groups = %+v", groups)
	}

	a := groups[0]
	if a.Value1 != 4 || a.Value2 != 6 || a.Count != 2 {
		t.Errorf("A totals = %+v", a)
	}
	if a.Value1Avg != 2 || a.Value2Avg != 3 || a.Sum != 10 {
		t.Errorf("A averages = %+v", a)
	}
}

func TestCalculate(t *testing.T) {
	result := Calculate([]domain.RawRow{
		{Dim1: "A", Dim2: "X", Value1: "4", Value2: "2"},
		{Dim1: "A", Dim2: "Y", Value1: 8, Value2: 0},
	})

	if len(result.Rows) != 2 || len(result.Hints) != 2 {
		t.Fatalf("result sizes rows=%d hints=%d", len(result.Rows), len(result.Hints))
	}
	if result.Rows[1].Ratio != nil {
		t.Errorf("ratio for zero divisor = %v, want nil", *result.Rows[1].Ratio)
	}
	if s := result.Summaries[domain.ColumnValue1]; s.Max != 8 || s.Min != 4 {
		t.Errorf("value1 summary = %+v", s)
	}
}
