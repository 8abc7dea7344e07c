package planning

import (
	"github.com/nktomer45/planboard/internal/domain"
)

type leafSpec struct {
	suffix   string
	header   string
	kind     domain.ColumnKind
	format   domain.ColumnFormat
	editable bool
	tiered   bool
}

var weekLeaves = []leafSpec{
	{"units", "Sales Units", domain.KindSalesUnits, domain.FormatInteger, true, false},
	{"sales_dollars", "Sales $", domain.KindSalesDollars, domain.FormatCurrency, false, false},
	{"gm_dollars", "GM $", domain.KindGMDollars, domain.FormatCurrency, false, false},
	{"gm_percent", "GM %", domain.KindGMPercent, domain.FormatPercent, false, true},
}

// identityColumns are pinned to the left of the grid.
func identityColumns() []domain.ColumnNode {
	return []domain.ColumnNode{
		{ID: "store", Header: "Store", Field: "store.name", Kind: domain.KindStoreName, Format: domain.FormatText, Pinned: true},
		{ID: "sku", Header: "SKU", Field: "sku.name", Kind: domain.KindSKUName, Format: domain.FormatText, Pinned: true},
		{ID: "sku_code", Header: "SKU Code", Field: "sku.code", Kind: domain.KindSKUCode, Format: domain.FormatText, Pinned: true},
	}
}

// BuildColumnSchema returns the hierarchical grid header: the pinned identity
// columns followed by month -> week -> {units, sales $, GM $, GM %}. Months
// appear once each, in calendar order.
func BuildColumnSchema(calendar []domain.CalendarWeek) []domain.ColumnNode {
	schema := identityColumns()

	monthIdx := make(map[string]int)
	for _, w := range calendar {
		i, ok := monthIdx[w.Month]
		if !ok {
			schema = append(schema, domain.ColumnNode{
				ID:     "month_" + w.Month,
				Header: w.Month,
				Kind:   domain.KindGroup,
			})
			i = len(schema) - 1
			monthIdx[w.Month] = i
		}

		schema[i].Children = append(schema[i].Children, weekGroup(w))
	}

	return schema
}

func weekGroup(w domain.CalendarWeek) domain.ColumnNode {
	group := domain.ColumnNode{
		ID:       w.ID,
		Header:   w.Week,
		Kind:     domain.KindGroup,
		WeekID:   w.ID,
		Children: make([]domain.ColumnNode, 0, len(weekLeaves)),
	}

	for _, l := range weekLeaves {
		group.Children = append(group.Children, domain.ColumnNode{
			ID:       w.ID + "_" + l.suffix,
			Header:   l.header,
			Field:    w.ID + "." + l.suffix,
			Kind:     l.kind,
			Format:   l.format,
			WeekID:   w.ID,
			Editable: l.editable,
			Tiered:   l.tiered,
		})
	}

	return group
}
