// internal/domain/models.go
package domain

// Store represents a store location
type Store struct {
	ID   string `json:"id" db:"id" yaml:"id"`
	Name string `json:"name" db:"name" yaml:"name"`
}

// SKU represents a sellable product. Price and Cost are edited independently,
// so margin may be negative.
type SKU struct {
	ID    string  `json:"id" db:"id" yaml:"id"`
	Code  string  `json:"code" db:"code" yaml:"code"`
	Name  string  `json:"name" db:"name" yaml:"name"`
	Price float64 `json:"price" db:"price" yaml:"price"`
	Cost  float64 `json:"cost" db:"cost" yaml:"cost"`
}

// CalendarWeek is one column group of the planning grid
type CalendarWeek struct {
	ID    string `json:"id"`    // e.g. "w1"
	Week  string `json:"week"`  // e.g. "W1"
	Month string `json:"month"` // e.g. "Jan"
}

// UnitEntry is a single cell of the unit-count source
type UnitEntry struct {
	StoreID string `json:"store_id" db:"store_id" yaml:"store_id"`
	SKUID   string `json:"sku_id" db:"sku_id" yaml:"sku_id"`
	WeekID  string `json:"week_id" db:"week_id" yaml:"week_id"`
	Units   int    `json:"units" db:"units" yaml:"units"`
}

// PlanningRow is one store/SKU pair of the planning grid. Units is sparse:
// weeks without an entry are absent and read as zero.
type PlanningRow struct {
	ID    string         `json:"id"`
	Store Store          `json:"store"`
	SKU   SKU            `json:"sku"`
	Units map[string]int `json:"units"`
}

// UnitsFor returns the units planned for weekID, zero when absent.
func (r PlanningRow) UnitsFor(weekID string) int {
	return r.Units[weekID]
}

// Clone returns a copy whose Units map can be mutated independently.
func (r PlanningRow) Clone() PlanningRow {
	units := make(map[string]int, len(r.Units))
	for k, v := range r.Units {
		units[k] = v
	}
	r.Units = units
	return r
}

// PlanningRowID builds the row key for a store/SKU pair.
func PlanningRowID(storeID, skuID string) string {
	return storeID + "_" + skuID
}

// DimensionMember is an entry of a generic dimension (products, regions, ...)
type DimensionMember struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}
