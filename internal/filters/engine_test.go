package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoviz/domain/table"
)

func sampleRows() []table.Row {
	return []table.Row{
		{"status": "open", "amount": "10", "region": "west"},
		{"status": "closed", "amount": "25", "region": "east"},
		{"status": "open", "amount": "n/a", "region": "west"},
		{"status": "pending", "amount": "40", "region": "south"},
	}
}

func TestApply_EmptyFiltersIsIdentity(t *testing.T) {
	rows := sampleRows()

	filtered := Apply(rows, table.ActiveFilters{})

	assert.Equal(t, rows, filtered)
}

func TestApply_Idempotent(t *testing.T) {
	rows := sampleRows()
	active := table.ActiveFilters{"status": "open"}

	once := Apply(rows, active)
	twice := Apply(once, active)

	assert.Equal(t, once, twice)
}

func TestApply_AllSentinelPasses(t *testing.T) {
	rows := sampleRows()

	assert.Equal(t, rows, Apply(rows, table.ActiveFilters{"status": "all"}))
	assert.Equal(t, rows, Apply(rows, table.ActiveFilters{"status": ""}))
	assert.Equal(t, rows, Apply(rows, table.ActiveFilters{"status": nil}))
}

func TestApply_ExactMatch(t *testing.T) {
	filtered := Apply(sampleRows(), table.ActiveFilters{"status": "open"})

	require.Len(t, filtered, 2)
	for _, row := range filtered {
		assert.Equal(t, "open", row["status"])
	}
}

func TestApply_MultiSelect(t *testing.T) {
	filtered := Apply(sampleRows(), table.ActiveFilters{
		"region": []any{"west", "south"},
	})

	assert.Len(t, filtered, 3)
}

func TestApply_MultiSelectStringSlice(t *testing.T) {
	filtered := Apply(sampleRows(), table.ActiveFilters{
		"region": []string{"east"},
	})

	require.Len(t, filtered, 1)
	assert.Equal(t, "east", filtered[0]["region"])
}

func TestApply_EmptySelectionPasses(t *testing.T) {
	filtered := Apply(sampleRows(), table.ActiveFilters{"region": []any{}})

	assert.Len(t, filtered, 4)
}

func TestApply_RangeFilter(t *testing.T) {
	min, max := 10.0, 30.0
	filtered := Apply(sampleRows(), table.ActiveFilters{
		"amount": table.RangeFilter{Min: &min, Max: &max},
	})

	// "n/a" fails closed; 40 is above the max.
	require.Len(t, filtered, 2)
	assert.Equal(t, "10", filtered[0]["amount"])
	assert.Equal(t, "25", filtered[1]["amount"])
}

func TestApply_RangeFromDecodedJSON(t *testing.T) {
	filtered := Apply(sampleRows(), table.ActiveFilters{
		"amount": map[string]any{"min": 20.0, "max": 50.0},
	})

	assert.Len(t, filtered, 2)
}

func TestApply_OpenEndedRange(t *testing.T) {
	min := 20.0
	filtered := Apply(sampleRows(), table.ActiveFilters{
		"amount": table.RangeFilter{Min: &min},
	})

	assert.Len(t, filtered, 2)
}

func TestApply_FiltersCombineWithAnd(t *testing.T) {
	filtered := Apply(sampleRows(), table.ActiveFilters{
		"status": "open",
		"region": []any{"west"},
	})

	assert.Len(t, filtered, 2)

	filtered = Apply(sampleRows(), table.ActiveFilters{
		"status": "open",
		"region": []any{"east"},
	})

	assert.Empty(t, filtered)
}

func TestApply_NumericEqualityStringifies(t *testing.T) {
	rows := []table.Row{
		{"code": 3.0},
		{"code": "3"},
		{"code": 4},
	}

	filtered := Apply(rows, table.ActiveFilters{"code": 3})

	assert.Len(t, filtered, 2, "3.0 and \"3\" stringify identically")
}

func TestApply_NeverMutatesInput(t *testing.T) {
	rows := sampleRows()
	Apply(rows, table.ActiveFilters{"status": "open"})

	assert.Equal(t, sampleRows(), rows)
}
