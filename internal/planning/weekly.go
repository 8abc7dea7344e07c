package planning

import (
	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/metrics"
)

// WeeklySeries totals units, sales and margin per calendar week for one
// store, or for every store when storeID is empty.
func WeeklySeries(rows []domain.PlanningRow, calendar []domain.CalendarWeek, storeID string) []domain.WeekPoint {
	points := make([]domain.WeekPoint, len(calendar))
	for i, w := range calendar {
		points[i] = domain.WeekPoint{WeekID: w.ID, Week: w.Week, Month: w.Month}
	}

	for _, row := range rows {
		if storeID != "" && row.Store.ID != storeID {
			continue
		}
		for i := range points {
			units := row.UnitsFor(points[i].WeekID)
			if units == 0 {
				continue
			}
			points[i].Units += units
			points[i].SalesDollars += SalesDollars(units, row.SKU)
			points[i].GMDollars += GMDollars(units, row.SKU)
		}
	}

	for i := range points {
		p := &points[i]
		p.GMPercent = GMPercent(p.SalesDollars, p.GMDollars)
		p.Tier = metrics.ClassifyMargin(p.GMPercent)
	}

	return points
}
