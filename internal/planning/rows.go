package planning

import (
	"github.com/nktomer45/planboard/internal/domain"
)

// PlaceholderStore is used when a unit entry references a store that the
// dimension source did not return.
func PlaceholderStore(id string) domain.Store {
	return domain.Store{ID: id, Name: "Store " + id}
}

// PlaceholderSKU is used when a unit entry references an unknown SKU.
// Price and cost default to zero.
func PlaceholderSKU(id string) domain.SKU {
	return domain.SKU{ID: id, Code: "CODE-" + id, Name: "SKU " + id}
}

type rowSet struct {
	rows  []domain.PlanningRow
	index map[string]int
}

func newRowSet(capacity int) *rowSet {
	return &rowSet{
		rows:  make([]domain.PlanningRow, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

func (s *rowSet) add(store domain.Store, sku domain.SKU) int {
	id := domain.PlanningRowID(store.ID, sku.ID)
	if i, ok := s.index[id]; ok {
		return i
	}

	s.rows = append(s.rows, domain.PlanningRow{
		ID:    id,
		Store: store,
		SKU:   sku,
		Units: make(map[string]int),
	})
	s.index[id] = len(s.rows) - 1

	return len(s.rows) - 1
}

func (s *rowSet) lookup(storeID, skuID string) (int, bool) {
	i, ok := s.index[domain.PlanningRowID(storeID, skuID)]
	return i, ok
}

// BuildRows upserts one row per distinct store/SKU pair seen in entries, in
// first-seen order, and sets the entry's units on its week. Entries for weeks
// outside the calendar create the row but set nothing. Later entries for the
// same cell overwrite earlier ones. Empty stores or skus yield no rows.
func BuildRows(stores []domain.Store, skus []domain.SKU, entries []domain.UnitEntry, calendar []domain.CalendarWeek) []domain.PlanningRow {
	if len(stores) == 0 || len(skus) == 0 {
		return []domain.PlanningRow{}
	}

	storeByID := make(map[string]domain.Store, len(stores))
	for _, s := range stores {
		storeByID[s.ID] = s
	}
	skuByID := make(map[string]domain.SKU, len(skus))
	for _, s := range skus {
		skuByID[s.ID] = s
	}
	weeks := weekIndex(calendar)

	set := newRowSet(len(entries))
	for _, e := range entries {
		store, ok := storeByID[e.StoreID]
		if !ok {
			store = PlaceholderStore(e.StoreID)
		}
		sku, ok := skuByID[e.SKUID]
		if !ok {
			sku = PlaceholderSKU(e.SKUID)
		}

		i := set.add(store, sku)
		if _, known := weeks[e.WeekID]; !known {
			continue
		}
		set.rows[i].Units[e.WeekID] = e.Units
	}

	return set.rows
}

// BuildFullGrid materializes every store x SKU pair (store-major order) and
// then applies entries. Entries whose pair is not in the cross product, or
// whose week is not in the calendar, are ignored.
func BuildFullGrid(stores []domain.Store, skus []domain.SKU, entries []domain.UnitEntry, calendar []domain.CalendarWeek) []domain.PlanningRow {
	set := newRowSet(len(stores) * len(skus))
	for _, store := range stores {
		for _, sku := range skus {
			set.add(store, sku)
		}
	}

	weeks := weekIndex(calendar)
	for _, e := range entries {
		if _, known := weeks[e.WeekID]; !known {
			continue
		}
		i, ok := set.lookup(e.StoreID, e.SKUID)
		if !ok {
			continue
		}
		set.rows[i].Units[e.WeekID] = e.Units
	}

	return set.rows
}

// CloneRows deep-copies rows so the copy's unit maps can be edited freely.
func CloneRows(rows []domain.PlanningRow) []domain.PlanningRow {
	out := make([]domain.PlanningRow, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
