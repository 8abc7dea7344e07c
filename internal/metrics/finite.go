package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/nktomer45/planboard/internal/domain"
)

// ErrNonFinite is returned when inputs are finite but a derived value or
// statistic overflows, e.g. 1e308 * 1e308.
var ErrNonFinite = errors.New("value out of range")

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckFinite reports the first derived value or summary statistic of result
// that is not a finite number. Such values cannot be encoded as JSON.
func CheckFinite(result domain.MetricsResult) error {
	for i, row := range result.Rows {
		for _, col := range domain.DerivedColumns {
			if v, ok := ColumnValue(row, col); ok && !finite(v) {
				return fmt.Errorf("%w: row %d %s", ErrNonFinite, i, col)
			}
		}
	}

	for col, s := range result.Summaries {
		for _, v := range []float64{s.Min, s.Max, s.Avg, s.Median, s.StdDev} {
			if !finite(v) {
				return fmt.Errorf("%w: %s summary", ErrNonFinite, col)
			}
		}
	}

	return nil
}

// CheckFiniteGroups is CheckFinite for chart groups.
func CheckFiniteGroups(groups []domain.GroupPoint) error {
	for _, g := range groups {
		for _, v := range []float64{g.Value1, g.Value2, g.Value1Avg, g.Value2Avg, g.Sum} {
			if !finite(v) {
				return fmt.Errorf("%w: group %q", ErrNonFinite, g.Name)
			}
		}
	}
	return nil
}
