package table

// ColumnType is the inferred storage type of a column. Closed enum: the
// classifier only ever produces these four values.
type ColumnType string

const (
	TypeID          ColumnType = "id"
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDatetime    ColumnType = "datetime"
)

// ColumnRole is the semantic classification of a column, independent of its
// raw storage type.
type ColumnRole string

const (
	RoleIdentifier ColumnRole = "identifier"
	RoleMetric     ColumnRole = "metric"
	RoleDimension  ColumnRole = "dimension"
	RoleTime       ColumnRole = "time"
)

// FilterType describes the UI control suggested for restricting rows by a
// column's value.
type FilterType string

const (
	FilterSelect    FilterType = "select"
	FilterRange     FilterType = "range"
	FilterDateRange FilterType = "daterange"
)

// ChartType is the closed set of renderable chart kinds.
type ChartType string

const (
	ChartDonut         ChartType = "donut"
	ChartBar           ChartType = "bar"
	ChartBarHorizontal ChartType = "bar_horizontal"
	ChartArea          ChartType = "area"
	ChartHistogram     ChartType = "histogram"
)

// Aggregation selects the reducer applied when building chart series.
type Aggregation string

const (
	AggCount Aggregation = "count"
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
)

// ValueCount pairs a distinct value with its observed frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// NumericStats carries per-column numeric summaries computed over the
// classification sample. Median, StdDev and Skewness supplement the basic
// aggregates for profile reporting.
type NumericStats struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Avg      float64 `json:"avg"`
	Sum      float64 `json:"sum"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"stdDev"`
	Skewness float64 `json:"skewness"`
}

// FilterConfig holds the type-specific parameters of a suggested filter.
type FilterConfig struct {
	Options  []string `json:"options,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	MinEpoch *int64   `json:"minEpoch,omitempty"`
	MaxEpoch *int64   `json:"maxEpoch,omitempty"`
}

// ColumnAnalysis is the classifier's verdict for a single column.
type ColumnAnalysis struct {
	Column        string        `json:"column"`
	Type          ColumnType    `json:"type"`
	Role          ColumnRole    `json:"role"`
	UniqueCount   int           `json:"uniqueCount"`
	NullRatio     float64       `json:"nullRatio"`
	SuggestFilter bool          `json:"suggestFilter"`
	FilterType    FilterType    `json:"filterType,omitempty"`
	FilterConfig  *FilterConfig `json:"filterConfig,omitempty"`
	Numeric       *NumericStats `json:"numeric,omitempty"`
	TopValues     []ValueCount  `json:"topValues,omitempty"`
}

// FilterSpec is a declarative description of one filter widget.
type FilterSpec struct {
	Column   string     `json:"column"`
	Type     FilterType `json:"type"`
	Options  []string   `json:"options,omitempty"`
	Min      *float64   `json:"min,omitempty"`
	Max      *float64   `json:"max,omitempty"`
	MinEpoch *int64     `json:"minEpoch,omitempty"`
	MaxEpoch *int64     `json:"maxEpoch,omitempty"`
}

// ChartConfig describes one recommended chart. Columns are ordered with the
// dimension or time axis first and the metric last.
type ChartConfig struct {
	Type        ChartType   `json:"type"`
	Title       string      `json:"title"`
	Columns     []string    `json:"columns"`
	Aggregation Aggregation `json:"aggregation,omitempty"`
	Priority    int         `json:"priority"`
}

// ActiveFilters maps a column to its active filter value: a scalar for exact
// match, a slice for multi-select membership, or a RangeFilter (or a decoded
// {"min":..,"max":..} map) for numeric ranges.
type ActiveFilters map[string]any

// RangeFilter restricts a column to a numeric interval. Nil bounds are open.
type RangeFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// AnalysisResult is the full output of one analysis pass.
type AnalysisResult struct {
	Columns map[string]ColumnAnalysis `json:"columnAnalysis"`
	Filters []FilterSpec              `json:"filters"`
	Charts  []ChartConfig             `json:"charts"`
	Metrics map[string]any            `json:"metrics"`
}

// EmptyAnalysis returns a result with empty (but non-nil) structures, the
// contract for empty row sets or column lists.
func EmptyAnalysis() AnalysisResult {
	return AnalysisResult{
		Columns: map[string]ColumnAnalysis{},
		Filters: []FilterSpec{},
		Charts:  []ChartConfig{},
		Metrics: map[string]any{},
	}
}
