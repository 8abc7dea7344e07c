package domain

// WeekPoint is a data point in the weekly sales/margin chart
type WeekPoint struct {
	WeekID       string     `json:"week_id"`
	Week         string     `json:"week"`
	Month        string     `json:"month"`
	Units        int        `json:"units"`
	SalesDollars float64    `json:"sales_dollars"`
	GMDollars    float64    `json:"gm_dollars"`
	GMPercent    float64    `json:"gm_percent"`
	Tier         MarginTier `json:"tier"`
}

// GroupPoint aggregates derived rows sharing the same first dimension
type GroupPoint struct {
	Name      string  `json:"name"`
	Value1    float64 `json:"value1"`
	Value2    float64 `json:"value2"`
	Value1Avg float64 `json:"value1_avg"`
	Value2Avg float64 `json:"value2_avg"`
	Sum       float64 `json:"sum"`
	Count     int     `json:"count"`
}

// Summary is the statistics card shown above a numeric column
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// MetricsResult bundles everything the metrics grid needs after a recalculation
type MetricsResult struct {
	Rows      []DerivedRow       `json:"rows"`
	Hints     []RowHints         `json:"hints"`
	Summaries map[Column]Summary `json:"summaries"`
}
