package filters

import (
	"reflect"

	"autoviz/domain/table"
)

// passAll is the sentinel filter value meaning "no restriction".
const passAll = "all"

// Apply returns the rows satisfying every active filter. Filters are
// AND-combined across columns; there is no OR or grouping capability. The
// input slice is never mutated and the result is always a fresh list.
func Apply(rows []table.Row, active table.ActiveFilters) []table.Row {
	filtered := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if rowPasses(row, active) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func rowPasses(row table.Row, active table.ActiveFilters) bool {
	for col, filter := range active {
		if !cellPasses(row, col, filter) {
			return false
		}
	}
	return true
}

func cellPasses(row table.Row, col string, filter any) bool {
	if filter == nil {
		return true
	}
	if s, ok := filter.(string); ok && (s == "" || s == passAll) {
		return true
	}

	cell, _ := row.Value(col)

	if members, ok := asMembers(filter); ok {
		if len(members) == 0 {
			return true
		}
		cellStr := table.Stringify(cell)
		for _, m := range members {
			if table.Stringify(m) == cellStr {
				return true
			}
		}
		return false
	}

	if r, ok := asRange(filter); ok {
		// Fails closed: a cell that does not parse never matches a range.
		v, parsed := table.ParseNumber(cell)
		if !parsed {
			return false
		}
		if r.Min != nil && v < *r.Min {
			return false
		}
		if r.Max != nil && v > *r.Max {
			return false
		}
		return true
	}

	return table.Stringify(cell) == table.Stringify(filter)
}

// asMembers recognizes multi-select filter values in any slice shape,
// including []any from decoded JSON.
func asMembers(filter any) ([]any, bool) {
	switch vs := filter.(type) {
	case []any:
		return vs, true
	case []string:
		members := make([]any, len(vs))
		for i, v := range vs {
			members[i] = v
		}
		return members, true
	case []float64:
		members := make([]any, len(vs))
		for i, v := range vs {
			members[i] = v
		}
		return members, true
	}
	if rv := reflect.ValueOf(filter); rv.Kind() == reflect.Slice {
		members := make([]any, rv.Len())
		for i := range members {
			members[i] = rv.Index(i).Interface()
		}
		return members, true
	}
	return nil, false
}

// asRange recognizes range filter values either as the typed RangeFilter or
// as a decoded {"min":..,"max":..} JSON object.
func asRange(filter any) (table.RangeFilter, bool) {
	switch r := filter.(type) {
	case table.RangeFilter:
		return r, true
	case *table.RangeFilter:
		if r == nil {
			return table.RangeFilter{}, false
		}
		return *r, true
	case map[string]any:
		_, hasMin := r["min"]
		_, hasMax := r["max"]
		if !hasMin && !hasMax {
			return table.RangeFilter{}, false
		}
		var out table.RangeFilter
		if v, ok := table.ParseNumber(r["min"]); ok {
			out.Min = &v
		}
		if v, ok := table.ParseNumber(r["max"]); ok {
			out.Max = &v
		}
		return out, true
	}
	return table.RangeFilter{}, false
}
