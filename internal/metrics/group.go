package metrics

import "github.com/nktomer45/planboard/internal/domain"

// GroupByDim1 aggregates rows sharing the same Dim1 for the bar/pie charts.
// Groups come back in first-seen order.
func GroupByDim1(rows []domain.DerivedRow) []domain.GroupPoint {
	index := make(map[string]int)
	groups := make([]domain.GroupPoint, 0)

	for _, row := range rows {
		i, ok := index[row.Dim1]
		if !ok {
			i = len(groups)
			index[row.Dim1] = i
			groups = append(groups, domain.GroupPoint{Name: row.Dim1})
		}

		g := &groups[i]
		g.Value1 += row.Value1
		g.Value2 += row.Value2
		g.Count++
	}

	for i := range groups {
		g := &groups[i]
		g.Value1Avg = g.Value1 / float64(g.Count)
		g.Value2Avg = g.Value2 / float64(g.Count)
		g.Sum = g.Value1 + g.Value2
	}

	return groups
}

// SummarizeRows builds the statistics cards for the two base columns.
// Empty columns are omitted.
func SummarizeRows(rows []domain.DerivedRow) map[domain.Column]domain.Summary {
	out := make(map[domain.Column]domain.Summary, 2)
	for _, col := range []domain.Column{domain.ColumnValue1, domain.ColumnValue2} {
		if s, ok := Summarize(ColumnValues(rows, col)); ok {
			out[col] = s
		}
	}
	return out
}

// Calculate derives raw rows, tags them and summarizes the base columns.
func Calculate(raws []domain.RawRow) domain.MetricsResult {
	rows := DeriveRows(raws)

	return domain.MetricsResult{
		Rows:      rows,
		Hints:     ApplyConditionalFormatting(rows),
		Summaries: SummarizeRows(rows),
	}
}
