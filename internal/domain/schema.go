package domain

// ColumnKind identifies what a planning grid leaf column shows
type ColumnKind string

const (
	KindGroup        ColumnKind = "group"
	KindStoreName    ColumnKind = "store_name"
	KindSKUName      ColumnKind = "sku_name"
	KindSKUCode      ColumnKind = "sku_code"
	KindSalesUnits   ColumnKind = "sales_units"
	KindSalesDollars ColumnKind = "sales_dollars"
	KindGMDollars    ColumnKind = "gm_dollars"
	KindGMPercent    ColumnKind = "gm_percent"
)

// ColumnFormat tells the renderer how to display a leaf value
type ColumnFormat string

const (
	FormatText     ColumnFormat = "text"
	FormatInteger  ColumnFormat = "integer"
	FormatCurrency ColumnFormat = "currency"
	FormatPercent  ColumnFormat = "percent"
)

// ColumnNode is a node of the hierarchical planning grid header. Leaves have
// no children; groups have no field.
type ColumnNode struct {
	ID       string       `json:"id"`
	Header   string       `json:"header"`
	Field    string       `json:"field,omitempty"`
	Kind     ColumnKind   `json:"kind"`
	Format   ColumnFormat `json:"format,omitempty"`
	WeekID   string       `json:"week_id,omitempty"`
	Pinned   bool         `json:"pinned,omitempty"`
	Editable bool         `json:"editable,omitempty"`
	Tiered   bool         `json:"tiered,omitempty"`
	Children []ColumnNode `json:"children,omitempty"`
}

// IsLeaf reports whether the node is a value column
func (n ColumnNode) IsLeaf() bool {
	return len(n.Children) == 0 && n.Kind != KindGroup
}

// Leaves returns the leaf columns of a schema in display order.
func Leaves(nodes []ColumnNode) []ColumnNode {
	var out []ColumnNode
	for _, n := range nodes {
		if n.IsLeaf() {
			out = append(out, n)
			continue
		}
		out = append(out, Leaves(n.Children)...)
	}
	return out
}
