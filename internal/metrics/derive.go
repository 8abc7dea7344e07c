package metrics

import "github.com/nktomer45/planboard/internal/domain"

// DeriveRow coerces the raw values of a row and computes sum, product and
// ratio. Ratio is nil when the second value is zero.
func DeriveRow(raw domain.RawRow) domain.DerivedRow {
	return Derive(domain.DerivedRow{
		Dim1:   raw.Dim1,
		Dim2:   raw.Dim2,
		Value1: ParseNumber(raw.Value1),
		Value2: ParseNumber(raw.Value2),
	})
}

// Derive recomputes the derived fields of row from Value1 and Value2,
// overwriting whatever was there before.
func Derive(row domain.DerivedRow) domain.DerivedRow {
	v1, v2 := row.Value1, row.Value2

	row.Sum = v1 + v2
	row.Product = v1 * v2
	row.Ratio = nil
	if v2 != 0 {
		ratio := v1 / v2
		row.Ratio = &ratio
	}

	return row
}

// DeriveRows derives every row independently.
func DeriveRows(raws []domain.RawRow) []domain.DerivedRow {
	out := make([]domain.DerivedRow, len(raws))
	for i, raw := range raws {
		out[i] = DeriveRow(raw)
	}
	return out
}

// ColumnValue reads a numeric column of a derived row. ok is false for a nil
// ratio.
func ColumnValue(row domain.DerivedRow, col domain.Column) (float64, bool) {
	switch col {
	case domain.ColumnValue1:
		return row.Value1, true
	case domain.ColumnValue2:
		return row.Value2, true
	case domain.ColumnSum:
		return row.Sum, true
	case domain.ColumnProduct:
		return row.Product, true
	case domain.ColumnRatio:
		if row.Ratio == nil {
			return 0, false
		}
		return *row.Ratio, true
	}
	return 0, false
}
