package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/nktomer45/planboard/internal/domain"
)

func TestDeriveRow(t *testing.T) {
	tests := []struct {
		name        string
		raw         domain.RawRow
		wantSum     float64
		wantProduct float64
		wantRatio   *float64
	}{
		{"numbers", domain.RawRow{Value1: 6.0, Value2: 3.0}, 9, 18, ptr(2)},
		{"zero divisor", domain.RawRow{Value1: 5.0, Value2: 0.0}, 5, 0, nil},
		{"strings", domain.RawRow{Value1: "1.5", Value2: "2"}, 3.5, 3, ptr(0.75)},
		{"missing values", domain.RawRow{}, 0, 0, nil},
		{"garbage", domain.RawRow{Value1: "abc", Value2: "4"}, 4, 0, ptr(0)},
		{"negative", domain.RawRow{Value1: -2, Value2: 4}, 2, -8, ptr(-0.5)},
		{"infinite input", domain.RawRow{Value1: "Infinity", Value2: 1}, 1, 0, ptr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveRow(tt.raw)

			if !approxEqual(got.Sum, tt.wantSum) {
				t.Errorf("Sum = %v, want %v", got.Sum, tt.wantSum)
			}
			if !approxEqual(got.Product, tt.wantProduct) {
				t.Errorf("Product = %v, want %v", got.Product, tt.wantProduct)
			}
			switch {
			case tt.wantRatio == nil && got.Ratio != nil:
				t.Errorf("Ratio = %v, want nil", *got.Ratio)
			case tt.wantRatio != nil && got.Ratio == nil:
				t.Errorf("Ratio = nil, want %v", *tt.wantRatio)
			case tt.wantRatio != nil && !approxEqual(*got.Ratio, *tt.wantRatio):
				t.Errorf("Ratio = %v, want %v", *got.Ratio, *tt.wantRatio)
			}
		})
	}
}

func TestDeriveSumAndProductInvariant(t *testing.T) {
	for v1 := -5.0; v1 <= 5; v1 += 0.5 {
		for v2 := -5.0; v2 <= 5; v2 += 0.5 {
			row := Derive(domain.DerivedRow{Value1: v1, Value2: v2})
			if row.Sum != v1+v2 || row.Product != v1*v2 {
				t.Fatalf("Derive(%v, %v) = sum %v product %v", v1, v2, row.Sum, row.Product)
			}
			if (v2 == 0) != (row.Ratio == nil) {
				t.Fatalf("Derive(%v, %v) ratio presence mismatch", v1, v2)
			}
		}
	}
}

func TestDeriveOverwritesStaleValues(t *testing.T) {
	stale := ptr(99)
	row := Derive(domain.DerivedRow{Value1: 1, Value2: 0, Sum: 42, Product: 42, Ratio: stale})

	if row.Sum != 1 || row.Product != 0 || row.Ratio != nil {
		t.Errorf("stale derived values survived: %+v", row)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{"", 0},
		{"12.5", 12.5},
		{"  7 ", 7},
		{"abc", 0},
		{"3px", 3},
		{".5", 0.5},
		{"-2e1x", -20},
		{true, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{"Infinity", 0},
		{"+Inf", 0},
		{"-inf", 0},
		{json.Number("1e400"), 0},
		{json.Number("4"), 4},
		{int64(9), 9},
		{float32(1.5), 1.5},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	if got := ParseInt("12.9"); got != 12 {
		t.Errorf("ParseInt(12.9) = %d, want 12", got)
	}
	if got := ParseInt("n/a"); got != 0 {
		t.Errorf("ParseInt(n/a) = %d, want 0", got)
	}
}

func ptr(v float64) *float64 {
	return &v
}
