package domain

// DerivedRow is a two-value row together with the fields derived from it.
// Ratio is nil when Value2 is zero.
type DerivedRow struct {
	Dim1    string   `json:"dim1"`
	Dim2    string   `json:"dim2"`
	Value1  float64  `json:"value1"`
	Value2  float64  `json:"value2"`
	Sum     float64  `json:"sum"`
	Product float64  `json:"product"`
	Ratio   *float64 `json:"ratio"`
}

// RawRow is an undecoded two-value row as sent by a grid or read from a file.
// Values are coerced to numbers when derived.
type RawRow struct {
	Dim1   string `json:"dim1"`
	Dim2   string `json:"dim2"`
	Value1 any    `json:"value1"`
	Value2 any    `json:"value2"`
}

// ColumnStat holds the statistics used for outlier classification
type ColumnStat struct {
	Avg    float64 `json:"avg"`
	StdDev float64 `json:"std_dev"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// Column names a numeric column of a DerivedRow
type Column string

const (
	ColumnValue1  Column = "value1"
	ColumnValue2  Column = "value2"
	ColumnSum     Column = "sum"
	ColumnProduct Column = "product"
	ColumnRatio   Column = "ratio"
)

// DerivedColumns lists the columns in display order.
var DerivedColumns = []Column{ColumnValue1, ColumnValue2, ColumnSum, ColumnProduct, ColumnRatio}

// Hint is a presentation tag attached to a single cell
type Hint string

const (
	HintNone        Hint = "none"
	HintHighOutlier Hint = "high-outlier"
	HintLowOutlier  Hint = "low-outlier"
	HintHighlight   Hint = "highlight"
)

// RowHints maps each column of a row to its hint
type RowHints map[Column]Hint
