package models

// Filter operators supported by the predicate evaluator.
const (
	OpEquals       = "equals"
	OpNotEquals    = "not_equals"
	OpGreater      = "greater"
	OpLess         = "less"
	OpGreaterEqual = "greater_equal"
	OpLessEqual    = "less_equal"
	OpContains     = "contains"
	OpStartsWith   = "starts_with"
	OpEndsWith     = "ends_with"
	OpAfter        = "after"
	OpBefore       = "before"
)

// Aggregation kinds.
const (
	AggSum   = "sum"
	AggAvg   = "avg"
	AggCount = "count"
	AggMin   = "min"
	AggMax   = "max"
)

// Chart styles for grouped series.
const (
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartScatter = "scatter"
)

// FilterCondition is one typed filter row from the UI. A condition with an
// empty field, operator, or value is vacuously true so that partially filled
// filter forms never fail.
type FilterCondition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// MetricSpec describes one scalar computation over a filtered record set.
type MetricSpec struct {
	Field       string            `json:"field"`
	Aggregation string            `json:"aggregation"`
	Filters     []FilterCondition `json:"filters"`
}

// ScopedFilters are the fixed metric-card filters: exact deal/unit status and
// a move-out date range. A record with no move-out date passes the range
// (no move-out means "not yet scheduled to vacate", not "excluded").
type ScopedFilters struct {
	Metric       string `json:"metric" form:"metric"`
	DealStatus   string `json:"deal_status" form:"deal_status"`
	UnitStatus   string `json:"unit_status" form:"unit_status"`
	MoveOutStart string `json:"move_out_start" form:"move_out_start"`
	MoveOutEnd   string `json:"move_out_end" form:"move_out_end"`
}

// DistributionSpec describes one grouped or binned chart series.
type DistributionSpec struct {
	XMetric    string        `json:"x_metric"`
	YMetric    string        `json:"y_metric"`
	ChartStyle string        `json:"chart_style"`
	Limit      int           `json:"limit"`
	Filters    ScopedFilters `json:"filters"`
}

// MetricResult is a scalar metric output. Value is nil when no data
// qualified, which callers render as N/A rather than zero.
type MetricResult struct {
	Value *float64 `json:"value"`
	Count int      `json:"count"`
}

// AverageResult distinguishes "no data" (Avg nil) from an average of zero.
type AverageResult struct {
	Avg   *float64 `json:"avg"`
	Count int      `json:"count"`
}

// Point is one raw (x, y) observation for line/scatter charts.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is a labeled chart series. A nil value marks an empty bin, which
// the chart renders as a gap rather than a zero bar.
type Series struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
}

// ChartData is the grouped/binned engine output. Points is populated only
// for line and scatter styles, where the caller renders raw pairs directly.
type ChartData struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
	Points []Point    `json:"points,omitempty"`
}

// HistogramStats summarizes the valid-value set behind a histogram.
type HistogramStats struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int     `json:"count"`
}
