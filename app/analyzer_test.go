package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoviz/domain/table"
)

func salesSnapshot() *table.Snapshot {
	rows := make([]table.Row, 0, 40)
	regions := []string{"west", "east", "south", "west"}
	for i := 0; i < 40; i++ {
		rows = append(rows, table.Row{
			"order_id":   fmt.Sprintf("ord-%03d", i),
			"region":     regions[i%len(regions)],
			"revenue":    fmt.Sprintf("%d", 50+(i%15)*7),
			"order_date": fmt.Sprintf("2024-01-%02d", (i%28)+1),
		})
	}
	snap := table.NewSnapshot([]string{"order_id", "region", "revenue", "order_date"}, rows)
	snap.Name = "sales"
	return snap
}

func TestAnalyze_EndToEnd(t *testing.T) {
	snap := salesSnapshot()
	snap.TargetColumn = "region"

	result := NewAnalyzer().Analyze(snap)

	require.Len(t, result.Columns, 4)
	assert.Equal(t, table.RoleIdentifier, result.Columns["order_id"].Role)
	assert.Equal(t, table.RoleDimension, result.Columns["region"].Role)
	assert.Equal(t, table.RoleMetric, result.Columns["revenue"].Role)
	assert.Equal(t, table.RoleTime, result.Columns["order_date"].Role)

	assert.LessOrEqual(t, len(result.Filters), 5)
	assert.LessOrEqual(t, len(result.Charts), 8)
	require.NotEmpty(t, result.Charts)
	assert.Equal(t, "Region Distribution", result.Charts[0].Title)
	assert.Equal(t, 1, result.Charts[0].Priority)

	assert.Equal(t, 40, result.Metrics["totalRecords"])
	assert.Contains(t, result.Metrics, "revenue_sum")

	for _, f := range result.Filters {
		assert.NotEqual(t, "order_id", f.Column, "identifiers never get filters")
	}
	for _, c := range result.Charts {
		assert.NotContains(t, c.Columns, "order_id")
	}
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	a := NewAnalyzer()

	for _, snap := range []*table.Snapshot{
		nil,
		table.NewSnapshot(nil, nil),
		table.NewSnapshot([]string{"a"}, nil),
		table.NewSnapshot(nil, []table.Row{{"a": 1}}),
	} {
		result := a.Analyze(snap)
		assert.NotNil(t, result.Columns)
		assert.Empty(t, result.Columns)
		assert.NotNil(t, result.Filters)
		assert.Empty(t, result.Filters)
		assert.NotNil(t, result.Charts)
		assert.NotNil(t, result.Metrics)
	}
}

func TestAnalyze_Memoized(t *testing.T) {
	snap := salesSnapshot()
	a := NewAnalyzer()

	first := a.Analyze(snap)
	second := a.Analyze(snap)

	assert.Equal(t, first, second)
}

func TestAnalyze_TargetChangeRecomputes(t *testing.T) {
	snap := salesSnapshot()
	a := NewAnalyzer()

	withoutTarget := a.Analyze(snap)
	snap.TargetColumn = "region"
	withTarget := a.Analyze(snap)

	assert.NotEqual(t, withoutTarget.Charts, withTarget.Charts)
	assert.Equal(t, 1, withTarget.Charts[0].Priority)
}

func TestProfile(t *testing.T) {
	snap := salesSnapshot()

	profile := NewAnalyzer().Profile(snap)

	assert.Equal(t, 40, profile.TotalRows)
	assert.Equal(t, 4, profile.TotalColumns)
	assert.Equal(t, 100.0, profile.QualityScore)
}

func TestBuildChartData_Group(t *testing.T) {
	rows := []table.Row{
		{"cat": "A", "v": 10},
		{"cat": "B", "v": 5},
		{"cat": "A", "v": 3},
	}
	cfg := table.ChartConfig{
		Type:        table.ChartBar,
		Columns:     []string{"cat", "v"},
		Aggregation: table.AggSum,
	}

	data := BuildChartData(rows, cfg, nil)

	require.Len(t, data.Buckets, 2)
	assert.Equal(t, "A", data.Buckets[0].Name)
	assert.Equal(t, 13.0, data.Buckets[0].Value)
}

func TestBuildChartData_AppliesFilters(t *testing.T) {
	rows := []table.Row{
		{"cat": "A", "v": 10},
		{"cat": "B", "v": 5},
	}
	cfg := table.ChartConfig{
		Type:        table.ChartBar,
		Columns:     []string{"cat", "v"},
		Aggregation: table.AggSum,
	}

	data := BuildChartData(rows, cfg, table.ActiveFilters{"cat": "A"})

	require.Len(t, data.Buckets, 1)
	assert.Equal(t, "A", data.Buckets[0].Name)
}

func TestBuildChartData_Histogram(t *testing.T) {
	rows := []table.Row{{"x": 1}, {"x": 5}, {"x": 9}}
	cfg := table.ChartConfig{Type: table.ChartHistogram, Columns: []string{"x"}}

	data := BuildChartData(rows, cfg, nil)

	assert.Len(t, data.Bins, 10)
	assert.Empty(t, data.Buckets)
}

func TestBuildChartData_TimeSeries(t *testing.T) {
	rows := []table.Row{
		{"day": "2024-01-02", "v": 1},
		{"day": "2024-01-01", "v": 2},
	}
	cfg := table.ChartConfig{
		Type:        table.ChartArea,
		Columns:     []string{"day", "v"},
		Aggregation: table.AggSum,
	}

	data := BuildChartData(rows, cfg, nil)

	require.Len(t, data.Buckets, 2)
	assert.Equal(t, "2024-01-01", data.Buckets[0].Name)
}

func TestBuildChartData_MultiSeries(t *testing.T) {
	rows := []table.Row{
		{"day": "2024-01-01", "cat": "A", "v": 10},
		{"day": "2024-01-01", "cat": "B", "v": 5},
	}
	cfg := table.ChartConfig{
		Type:    table.ChartArea,
		Columns: []string{"day", "cat", "v"},
	}

	data := BuildChartData(rows, cfg, nil)

	assert.Len(t, data.Series, 2)
}

func TestAnalysisState(t *testing.T) {
	state := NewAnalysisState()
	assert.True(t, state.LastUpdated().IsZero())

	result := table.EmptyAnalysis()
	result.Metrics["totalRecords"] = 7
	state.ReplaceResult(result)

	assert.Equal(t, 7, state.Result().Metrics["totalRecords"])
	assert.False(t, state.LastUpdated().IsZero())

	state.ReplaceActiveFilters(table.ActiveFilters{"region": "west"})
	assert.Equal(t, "west", state.ActiveFilters()["region"])

	state.ReplaceActiveFilters(nil)
	assert.NotNil(t, state.ActiveFilters())
}
