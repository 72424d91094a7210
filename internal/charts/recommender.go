package charts

import (
	"sort"

	"autoviz/domain/table"
)

const (
	// MaxCharts caps the recommendation list.
	MaxCharts = 8
	// DonutMaxCategories: breakdowns with more categories than this render
	// as bars instead of donuts.
	DonutMaxCategories = 6
)

// Chart priorities. Lower renders first.
const (
	priorityTargetDistribution = 1
	priorityTimeSeries         = 2
	priorityFirstBreakdown     = 3
	priorityMetricByDimension  = 5
	priorityFirstHistogram     = 6
)

// Recommend selects, orders, and caps a set of chart configurations from
// classifier output. Deterministic and side-effect-free: identical inputs
// always produce the identical ordered list.
func Recommend(columns []string, analyses map[string]table.ColumnAnalysis, target string) []table.ChartConfig {
	var (
		dims    []table.ColumnAnalysis
		metrics []table.ColumnAnalysis
		times   []table.ColumnAnalysis
	)
	for _, col := range columns {
		analysis, ok := analyses[col]
		if !ok {
			continue
		}
		switch analysis.Role {
		case table.RoleDimension:
			dims = append(dims, analysis)
		case table.RoleMetric:
			metrics = append(metrics, analysis)
		case table.RoleTime:
			times = append(times, analysis)
		}
	}

	charts := []table.ChartConfig{}

	// 1. Distribution of the target column.
	if target != "" {
		if t, ok := analyses[target]; ok && t.Type == table.TypeCategorical {
			charts = append(charts, table.ChartConfig{
				Type:        breakdownChartType(t.UniqueCount, table.ChartBar),
				Title:       table.DisplayName(target) + " Distribution",
				Columns:     []string{target},
				Aggregation: table.AggCount,
				Priority:    priorityTargetDistribution,
			})
		}
	}

	// 2. First metric over the first time axis.
	if len(times) > 0 && len(metrics) > 0 {
		charts = append(charts, table.ChartConfig{
			Type:        table.ChartArea,
			Title:       table.DisplayName(metrics[0].Column) + " Over Time",
			Columns:     []string{times[0].Column, metrics[0].Column},
			Aggregation: table.AggSum,
			Priority:    priorityTimeSeries,
		})
	}

	// 3–4. Breakdowns of the first two non-target dimensions.
	breakdowns := 0
	for _, dim := range dims {
		if dim.Column == target {
			continue
		}
		charts = append(charts, table.ChartConfig{
			Type:        breakdownChartType(dim.UniqueCount, table.ChartBarHorizontal),
			Title:       table.DisplayName(dim.Column) + " Breakdown",
			Columns:     []string{dim.Column},
			Aggregation: table.AggCount,
			Priority:    priorityFirstBreakdown + breakdowns,
		})
		breakdowns++
		if breakdowns == 2 {
			break
		}
	}

	// 5. First metric grouped by the first non-target dimension.
	if len(metrics) > 0 {
		if dim, ok := firstNonTarget(dims, target); ok {
			charts = append(charts, table.ChartConfig{
				Type:        table.ChartBar,
				Title:       table.DisplayName(metrics[0].Column) + " by " + table.DisplayName(dim.Column),
				Columns:     []string{dim.Column, metrics[0].Column},
				Aggregation: table.AggSum,
				Priority:    priorityMetricByDimension,
			})
		}
	}

	// 6–7. Value distributions of the first two metrics.
	for i, metric := range metrics {
		if i == 2 {
			break
		}
		charts = append(charts, table.ChartConfig{
			Type:     table.ChartHistogram,
			Title:    table.DisplayName(metric.Column) + " Distribution",
			Columns:  []string{metric.Column},
			Priority: priorityFirstHistogram + i,
		})
	}

	// Stable sort keeps generation order for equal priorities.
	sort.SliceStable(charts, func(i, j int) bool {
		return charts[i].Priority < charts[j].Priority
	})
	if len(charts) > MaxCharts {
		charts = charts[:MaxCharts]
	}
	return charts
}

func breakdownChartType(uniqueCount int, fallback table.ChartType) table.ChartType {
	if uniqueCount <= DonutMaxCategories {
		return table.ChartDonut
	}
	return fallback
}

func firstNonTarget(dims []table.ColumnAnalysis, target string) (table.ColumnAnalysis, bool) {
	for _, dim := range dims {
		if dim.Column != target {
			return dim, true
		}
	}
	return table.ColumnAnalysis{}, false
}
