package app

import (
	"autoviz/domain/table"
	"autoviz/internal/aggregate"
	"autoviz/internal/filters"
)

// ChartData is the series payload for one chart. Exactly one of the fields
// is populated, matching the chart type.
type ChartData struct {
	Buckets []aggregate.Bucket       `json:"buckets,omitempty"`
	Bins    []aggregate.HistogramBin `json:"bins,omitempty"`
	Series  []aggregate.Series       `json:"series,omitempty"`
}

// FilterRows applies the active filters and returns the surviving rows.
func FilterRows(rows []table.Row, active table.ActiveFilters) []table.Row {
	return filters.Apply(rows, active)
}

// BuildChartData applies the active filters and runs the reducer matching
// one chart configuration. The rendering layer calls this once per chart.
func BuildChartData(rows []table.Row, cfg table.ChartConfig, active table.ActiveFilters) ChartData {
	if len(active) > 0 {
		rows = filters.Apply(rows, active)
	}
	if len(cfg.Columns) == 0 {
		return ChartData{}
	}

	agg := cfg.Aggregation
	if agg == "" {
		agg = table.AggCount
	}

	switch cfg.Type {
	case table.ChartHistogram:
		return ChartData{Bins: aggregate.Histogram(rows, cfg.Columns[0], aggregate.DefaultHistogramBuckets)}

	case table.ChartArea:
		if len(cfg.Columns) >= 3 {
			return ChartData{Series: aggregate.MultiSeriesAggregate(rows, cfg.Columns[0], cfg.Columns[1], cfg.Columns[2])}
		}
		valueCol := ""
		if len(cfg.Columns) > 1 {
			valueCol = cfg.Columns[1]
		}
		return ChartData{Buckets: aggregate.TimeSeriesAggregate(rows, cfg.Columns[0], valueCol, agg)}

	default:
		// Donut and bar variants all reduce to grouped buckets.
		valueCol := ""
		if len(cfg.Columns) > 1 {
			valueCol = cfg.Columns[len(cfg.Columns)-1]
		}
		return ChartData{Buckets: aggregate.GroupAggregate(rows, cfg.Columns[0], valueCol, agg)}
	}
}
