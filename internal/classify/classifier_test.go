package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoviz/domain/table"
)

func TestClassifyColumn_IdentifierByName(t *testing.T) {
	rows := []table.Row{
		{"id": "1"}, {"id": "2"}, {"id": "3"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("id", rows)

	assert.Equal(t, table.TypeID, analysis.Type)
	assert.Equal(t, table.RoleIdentifier, analysis.Role)
	assert.False(t, analysis.SuggestFilter)
}

func TestClassifyColumn_IdentifierBySuffix(t *testing.T) {
	rows := []table.Row{{"userId": "a"}, {"userId": "b"}}
	c := NewDefault()

	analysis := c.ClassifyColumn("userId", rows)

	assert.Equal(t, table.RoleIdentifier, analysis.Role)
}

func TestClassifyColumn_IdentifierByUniqueness(t *testing.T) {
	// 100 distinct values over 100 rows, name carries no id hint.
	rows := make([]table.Row, 100)
	for i := range rows {
		rows[i] = table.Row{"token": fmt.Sprintf("val-%d", i)}
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("token", rows)

	assert.Equal(t, table.TypeID, analysis.Type)
	assert.Equal(t, table.RoleIdentifier, analysis.Role)
	assert.Equal(t, 100, analysis.UniqueCount)
}

func TestClassifyColumn_UniquenessNeedsEnoughRows(t *testing.T) {
	// All distinct but only 5 rows: too small to call it an identifier.
	rows := []table.Row{
		{"word": "ant"}, {"word": "bee"}, {"word": "cat"},
		{"word": "dog"}, {"word": "elk"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("word", rows)

	assert.Equal(t, table.TypeCategorical, analysis.Type)
	assert.Equal(t, table.RoleDimension, analysis.Role)
}

func TestClassifyColumn_DatetimeByName(t *testing.T) {
	rows := []table.Row{
		{"order_date": "2024-01-05"},
		{"order_date": "2024-01-06"},
		{"order_date": "2024-02-10"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("order_date", rows)

	assert.Equal(t, table.TypeDatetime, analysis.Type)
	assert.Equal(t, table.RoleTime, analysis.Role)
	assert.True(t, analysis.SuggestFilter)
	assert.Equal(t, table.FilterDateRange, analysis.FilterType)
	require.NotNil(t, analysis.FilterConfig)
	require.NotNil(t, analysis.FilterConfig.MinEpoch)
	require.NotNil(t, analysis.FilterConfig.MaxEpoch)
	assert.Less(t, *analysis.FilterConfig.MinEpoch, *analysis.FilterConfig.MaxEpoch)
}

func TestClassifyColumn_DatetimeByValueProbe(t *testing.T) {
	// Neutral name, but the values are unmistakably dates.
	rows := []table.Row{
		{"when": "2024-03-01"},
		{"when": "2024-03-02"},
		{"when": "2024-03-03"},
		{"when": "2024-03-04"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("when", rows)

	assert.Equal(t, table.TypeDatetime, analysis.Type)
	assert.Equal(t, table.RoleTime, analysis.Role)
}

func TestClassifyColumn_NumericMetric(t *testing.T) {
	// 25 distinct values over 30 rows: plenty of repeats, so the
	// uniqueness rule stays out of the way.
	rows := make([]table.Row, 30)
	for i := range rows {
		rows[i] = table.Row{"revenue": fmt.Sprintf("%d.5", (i%25)*10)}
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("revenue", rows)

	assert.Equal(t, table.TypeNumeric, analysis.Type)
	assert.Equal(t, table.RoleMetric, analysis.Role)
	require.NotNil(t, analysis.Numeric)
	assert.Equal(t, 0.5, analysis.Numeric.Min)
	assert.Equal(t, 240.5, analysis.Numeric.Max)
	assert.True(t, analysis.SuggestFilter)
	assert.Equal(t, table.FilterRange, analysis.FilterType)
}

func TestClassifyColumn_NumericMetricBySpread(t *testing.T) {
	// Few distinct values but a wide range still reads as a metric.
	rows := []table.Row{
		{"amount": "5"}, {"amount": "50"}, {"amount": "500"},
		{"amount": "5"}, {"amount": "50"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("amount", rows)

	assert.Equal(t, table.RoleMetric, analysis.Role)
	assert.False(t, analysis.SuggestFilter, "only 3 distinct values, no range slider")
}

func TestClassifyColumn_NumericCodeIsDimension(t *testing.T) {
	// Small closed set of numeric codes behaves like a category.
	rows := []table.Row{
		{"tier": "1"}, {"tier": "2"}, {"tier": "3"},
		{"tier": "1"}, {"tier": "2"}, {"tier": "1"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("tier", rows)

	assert.Equal(t, table.TypeNumeric, analysis.Type)
	assert.Equal(t, table.RoleDimension, analysis.Role)
	assert.False(t, analysis.SuggestFilter)
}

func TestClassifyColumn_InfinityStringsAreNotNumeric(t *testing.T) {
	rows := []table.Row{
		{"odds": "Inf"}, {"odds": "Inf"}, {"odds": "-Inf"},
		{"odds": "NaN"}, {"odds": "Inf"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("odds", rows)

	assert.Equal(t, table.TypeCategorical, analysis.Type)
	assert.Equal(t, table.RoleDimension, analysis.Role)
}

func TestClassifyColumn_InfinityNeverPoisonsStats(t *testing.T) {
	rows := []table.Row{
		{"score": "5"}, {"score": "50"}, {"score": "500"},
		{"score": "5"}, {"score": "50"}, {"score": "500"},
		{"score": "5"}, {"score": "50"}, {"score": "500"},
		{"score": "Inf"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("score", rows)

	assert.Equal(t, table.TypeNumeric, analysis.Type)
	require.NotNil(t, analysis.Numeric)
	assert.Equal(t, 500.0, analysis.Numeric.Max)
}

func TestClassifyColumn_CategoricalWithSelectFilter(t *testing.T) {
	rows := []table.Row{
		{"status": "open"}, {"status": "open"}, {"status": "closed"},
		{"status": "open"}, {"status": "pending"},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("status", rows)

	assert.Equal(t, table.TypeCategorical, analysis.Type)
	assert.Equal(t, table.RoleDimension, analysis.Role)
	assert.Equal(t, 3, analysis.UniqueCount)
	assert.True(t, analysis.SuggestFilter)
	assert.Equal(t, table.FilterSelect, analysis.FilterType)
	require.NotNil(t, analysis.FilterConfig)
	assert.Equal(t, []string{"open", "closed", "pending"}, analysis.FilterConfig.Options,
		"options ordered by frequency, ties by first appearance")

	require.NotEmpty(t, analysis.TopValues)
	assert.Equal(t, table.ValueCount{Value: "open", Count: 3}, analysis.TopValues[0])
}

func TestClassifyColumn_SingleValueNoFilter(t *testing.T) {
	rows := []table.Row{{"source": "web"}, {"source": "web"}}
	c := NewDefault()

	analysis := c.ClassifyColumn("source", rows)

	assert.False(t, analysis.SuggestFilter, "one distinct value is below the select threshold")
}

func TestClassifyColumn_AllNull(t *testing.T) {
	rows := []table.Row{
		{"ghost": nil}, {"ghost": ""}, {},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("ghost", rows)

	assert.Equal(t, table.TypeCategorical, analysis.Type)
	assert.Equal(t, table.RoleDimension, analysis.Role)
	assert.Equal(t, 0, analysis.UniqueCount)
	assert.Equal(t, 1.0, analysis.NullRatio)
	assert.False(t, analysis.SuggestFilter)
}

func TestClassifyColumn_NullRatio(t *testing.T) {
	rows := []table.Row{
		{"c": "a"}, {"c": nil}, {"c": "b"}, {"c": ""},
	}
	c := NewDefault()

	analysis := c.ClassifyColumn("c", rows)

	assert.Equal(t, 0.5, analysis.NullRatio)
}

func TestClassifyColumn_SampleWindow(t *testing.T) {
	// Values past the sample window must not influence classification.
	h := DefaultHeuristics()
	h.SampleSize = 10
	c := New(h)

	rows := make([]table.Row, 20)
	for i := 0; i < 10; i++ {
		rows[i] = table.Row{"v": "steady"}
	}
	for i := 10; i < 20; i++ {
		rows[i] = table.Row{"v": fmt.Sprintf("%d", i)}
	}

	analysis := c.ClassifyColumn("v", rows)

	assert.Equal(t, table.TypeCategorical, analysis.Type)
	assert.Equal(t, 1, analysis.UniqueCount)
}

func TestClassifySnapshot(t *testing.T) {
	snap := table.NewSnapshot(
		[]string{"id", "region", "sales", "order_date"},
		[]table.Row{
			{"id": "1", "region": "west", "sales": "100", "order_date": "2024-01-01"},
			{"id": "2", "region": "east", "sales": "250", "order_date": "2024-01-02"},
			{"id": "3", "region": "west", "sales": "75", "order_date": "2024-01-03"},
		},
	)
	c := NewDefault()

	analyses := c.ClassifySnapshot(snap)

	require.Len(t, analyses, 4)
	assert.Equal(t, table.RoleIdentifier, analyses["id"].Role)
	assert.Equal(t, table.RoleDimension, analyses["region"].Role)
	assert.Equal(t, table.RoleMetric, analyses["sales"].Role)
	assert.Equal(t, table.RoleTime, analyses["order_date"].Role)
}
