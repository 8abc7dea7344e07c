package metrics

import "github.com/nktomer45/planboard/internal/domain"

// ApplyConditionalFormatting tags every cell of rows with a presentation hint.
// Statistics are computed per column over the whole row set; nil ratios are
// left out of the ratio statistics and always tagged none. The base values
// get high/low outlier tags, derived columns are only highlighted when they
// are high outliers. Rows are not modified.
func ApplyConditionalFormatting(rows []domain.DerivedRow) []domain.RowHints {
	if len(rows) == 0 {
		return []domain.RowHints{}
	}

	stats := columnStats(rows)

	out := make([]domain.RowHints, len(rows))
	for i, row := range rows {
		hints := make(domain.RowHints, len(domain.DerivedColumns))
		for _, col := range domain.DerivedColumns {
			hints[col] = classifyCell(row, col, stats)
		}
		out[i] = hints
	}
	return out
}

// columnStats computes stats for every column that has at least one value.
func columnStats(rows []domain.DerivedRow) map[domain.Column]domain.ColumnStat {
	stats := make(map[domain.Column]domain.ColumnStat, len(domain.DerivedColumns))
	for _, col := range domain.DerivedColumns {
		values := ColumnValues(rows, col)
		if len(values) == 0 {
			continue
		}
		stats[col] = ComputeColumnStats(values)
	}
	return stats
}

// ColumnValues collects the present values of col across rows.
func ColumnValues(rows []domain.DerivedRow, col domain.Column) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := ColumnValue(row, col); ok {
			values = append(values, v)
		}
	}
	return values
}

func classifyCell(row domain.DerivedRow, col domain.Column, stats map[domain.Column]domain.ColumnStat) domain.Hint {
	s, ok := stats[col]
	if !ok {
		return domain.HintNone
	}

	v, ok := ColumnValue(row, col)
	if !ok {
		return domain.HintNone
	}

	switch col {
	case domain.ColumnValue1, domain.ColumnValue2:
		if IsHighOutlier(v, s) {
			return domain.HintHighOutlier
		}
		if IsLowOutlier(v, s) {
			return domain.HintLowOutlier
		}
	default:
		if IsHighOutlier(v, s) {
			return domain.HintHighlight
		}
	}

	return domain.HintNone
}
