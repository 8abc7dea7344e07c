package planning

import (
	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/metrics"
)

// CellMetrics are the derived values of one row/week cell group.
type CellMetrics struct {
	Units        int               `json:"units"`
	SalesDollars float64           `json:"sales_dollars"`
	GMDollars    float64           `json:"gm_dollars"`
	GMPercent    float64           `json:"gm_percent"`
	Tier         domain.MarginTier `json:"tier"`
}

// SalesDollars is units x price.
func SalesDollars(units int, sku domain.SKU) float64 {
	return float64(units) * sku.Price
}

// GMDollars is sales minus cost of goods.
func GMDollars(units int, sku domain.SKU) float64 {
	u := float64(units)
	return u*sku.Price - u*sku.Cost
}

// GMPercent returns gross margin as a percentage of sales, or 0 when there
// are no sales.
func GMPercent(salesDollars, gmDollars float64) float64 {
	if salesDollars > 0 {
		return gmDollars / salesDollars * 100
	}
	return 0
}

// WeekMetrics recomputes the derived cells of row for weekID from the row's
// live units and SKU price/cost.
func WeekMetrics(row domain.PlanningRow, weekID string) CellMetrics {
	units := row.UnitsFor(weekID)
	sales := SalesDollars(units, row.SKU)
	gm := GMDollars(units, row.SKU)
	pct := GMPercent(sales, gm)

	return CellMetrics{
		Units:        units,
		SalesDollars: sales,
		GMDollars:    gm,
		GMPercent:    pct,
		Tier:         metrics.ClassifyMargin(pct),
	}
}

// CellValue evaluates a leaf column for row. Identity leaves return strings,
// units an int and derived leaves a float64. Group nodes return nil.
func CellValue(row domain.PlanningRow, leaf domain.ColumnNode) any {
	switch leaf.Kind {
	case domain.KindStoreName:
		return row.Store.Name
	case domain.KindSKUName:
		return row.SKU.Name
	case domain.KindSKUCode:
		return row.SKU.Code
	case domain.KindSalesUnits:
		return row.UnitsFor(leaf.WeekID)
	case domain.KindSalesDollars:
		return WeekMetrics(row, leaf.WeekID).SalesDollars
	case domain.KindGMDollars:
		return WeekMetrics(row, leaf.WeekID).GMDollars
	case domain.KindGMPercent:
		return WeekMetrics(row, leaf.WeekID).GMPercent
	default:
		return nil
	}
}

// CellTier returns the margin tier of a tier-tagged leaf, false otherwise.
func CellTier(row domain.PlanningRow, leaf domain.ColumnNode) (domain.MarginTier, bool) {
	if !leaf.Tiered {
		return "", false
	}
	return WeekMetrics(row, leaf.WeekID).Tier, true
}
