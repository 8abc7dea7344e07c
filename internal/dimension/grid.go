package dimension

import (
	"github.com/nktomer45/planboard/internal/domain"
)

// Values holds the two base measures of a dim1/dim2 cell.
type Values struct {
	Value1 any `json:"value1"`
	Value2 any `json:"value2"`
}

// CellKey builds the lookup key used by CrossJoin value tables.
func CellKey(dim1, dim2 string) string {
	return dim1 + "|" + dim2
}

// CrossJoin pairs every member name of dim1 with every member name of dim2
// (dim1-major order) and attaches the matching values. Missing cells get nil
// values, which the metrics engine reads as zero.
func (r *Registry) CrossJoin(dim1Kind, dim2Kind string, values map[string]Values) []domain.RawRow {
	names1 := r.Names(dim1Kind)
	names2 := r.Names(dim2Kind)

	rows := make([]domain.RawRow, 0, len(names1)*len(names2))
	for _, d1 := range names1 {
		for _, d2 := range names2 {
			v := values[CellKey(d1, d2)]
			rows = append(rows, domain.RawRow{
				Dim1:   d1,
				Dim2:   d2,
				Value1: v.Value1,
				Value2: v.Value2,
			})
		}
	}

	return rows
}
