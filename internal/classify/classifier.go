package classify

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"autoviz/domain/table"
)

// Classifier infers a type and semantic role for each column of a snapshot
// from a bounded sample of its values. Classification is pure: given the same
// rows it always produces the same analysis, and it never fails on malformed
// cell values.
type Classifier struct {
	h Heuristics
}

// New creates a classifier with custom heuristics.
func New(h Heuristics) *Classifier {
	return &Classifier{h: h}
}

// NewDefault creates a classifier with the default heuristics.
func NewDefault() *Classifier {
	return New(DefaultHeuristics())
}

// Exact column names that mark a column as an identifier.
var idNameTokens = map[string]bool{
	"id": true, "_id": true, "key": true, "uuid": true,
	"guid": true, "index": true, "idx": true,
}

// Column-name fragments that mark a column as temporal.
var dateNameKeywords = []string{"date", "time", "datetime", "timestamp", "created", "updated"}

// ClassifySnapshot classifies every column of a snapshot.
func (c *Classifier) ClassifySnapshot(snap *table.Snapshot) map[string]table.ColumnAnalysis {
	analyses := make(map[string]table.ColumnAnalysis, len(snap.Columns))
	for _, col := range snap.Columns {
		analyses[col] = c.ClassifyColumn(col, snap.Rows)
	}
	return analyses
}

// ClassifyColumn infers the type, role, and filter suggestion for a single
// column. Only the first Heuristics.SampleSize rows are inspected.
func (c *Classifier) ClassifyColumn(name string, rows []table.Row) table.ColumnAnalysis {
	totalRows := len(rows)
	window := totalRows
	if window > c.h.SampleSize {
		window = c.h.SampleSize
	}

	var (
		values  []any
		missing int
		counts  = make(map[string]int)
		order   []string
	)
	for i := 0; i < window; i++ {
		if rows[i].IsMissing(name) {
			missing++
			continue
		}
		v, _ := rows[i].Value(name)
		values = append(values, v)
		key := table.Stringify(v)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	analysis := table.ColumnAnalysis{
		Column:      name,
		UniqueCount: len(counts),
	}
	if window > 0 {
		analysis.NullRatio = float64(missing) / float64(window)
	}

	// A column with no observable values is categorical with nothing to
	// filter on.
	if len(values) == 0 {
		analysis.Type = table.TypeCategorical
		analysis.Role = table.RoleDimension
		return analysis
	}

	switch {
	case c.looksLikeIdentifier(name, analysis.UniqueCount, totalRows):
		analysis.Type = table.TypeID
		analysis.Role = table.RoleIdentifier

	case c.looksLikeDatetime(name, values):
		analysis.Type = table.TypeDatetime
		analysis.Role = table.RoleTime
		c.suggestDateRangeFilter(&analysis, values)

	case c.looksNumeric(values):
		analysis.Type = table.TypeNumeric
		numeric := computeNumericStats(collectFloats(values))
		analysis.Numeric = numeric
		if analysis.UniqueCount > c.h.MetricUniqueCutoff || numeric.Max-numeric.Min > c.h.MetricSpreadCutoff {
			analysis.Role = table.RoleMetric
			c.suggestRangeFilter(&analysis, numeric)
		} else {
			// Numeric code, treated as a categorical dimension.
			analysis.Role = table.RoleDimension
		}

	default:
		analysis.Type = table.TypeCategorical
		analysis.Role = table.RoleDimension
		analysis.TopValues = topValues(counts, order, c.h.TopValueCount)
		c.suggestSelectFilter(&analysis, counts, order)
	}

	return analysis
}

// looksLikeIdentifier matches id-like names or near-total uniqueness.
func (c *Classifier) looksLikeIdentifier(name string, uniqueCount, totalRows int) bool {
	lower := strings.ToLower(name)
	if idNameTokens[lower] {
		return true
	}
	if strings.HasSuffix(name, "Id") || strings.HasSuffix(name, "ID") {
		return true
	}
	return totalRows > c.h.IdentifierMinRows &&
		float64(uniqueCount) > c.h.IdentifierUniqueRatio*float64(totalRows)
}

// looksLikeDatetime matches temporal column names, or probes a small value
// sample: enough of them must parse as dates containing a date separator.
func (c *Classifier) looksLikeDatetime(name string, values []any) bool {
	lower := strings.ToLower(name)
	for _, kw := range dateNameKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	probe := values
	if len(probe) > c.h.DateSampleSize {
		probe = probe[:c.h.DateSampleSize]
	}
	parsed := 0
	for _, v := range probe {
		if looksLikeDateValue(v) {
			parsed++
		}
	}
	return float64(parsed) >= c.h.DateDetectRatio*float64(len(probe))
}

func looksLikeDateValue(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	if !strings.ContainsAny(s, "-/") {
		return false
	}
	_, ok = table.ParseTime(v)
	return ok
}

// looksNumeric requires most sampled values to parse as finite numbers.
func (c *Classifier) looksNumeric(values []any) bool {
	parsed := 0
	for _, v := range values {
		if _, ok := table.ParseExactNumber(v); ok {
			parsed++
		}
	}
	return float64(parsed) >= c.h.NumericRatio*float64(len(values))
}

func collectFloats(values []any) []float64 {
	floats := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := table.ParseExactNumber(v); ok {
			floats = append(floats, f)
		}
	}
	return floats
}

// computeNumericStats summarizes the sampled numeric values. Skewness is
// only meaningful with at least three observations.
func computeNumericStats(data []float64) *table.NumericStats {
	if len(data) == 0 {
		return &table.NumericStats{}
	}
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	sum, _ := stats.Sum(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviation(data)

	ns := &table.NumericStats{
		Min:    min,
		Max:    max,
		Avg:    mean,
		Sum:    sum,
		Median: median,
		StdDev: stdDev,
	}
	if len(data) >= 3 && stdDev > 0 {
		ns.Skewness = stat.Skew(data, nil)
	}
	return ns
}

// topValues returns the most frequent values, ties broken by first
// appearance in the sample.
func topValues(counts map[string]int, order []string, limit int) []table.ValueCount {
	ranked := make([]table.ValueCount, 0, len(order))
	for _, v := range order {
		ranked = append(ranked, table.ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// suggestDateRangeFilter proposes a date-range control spanning the parsed
// sample, in epoch milliseconds.
func (c *Classifier) suggestDateRangeFilter(analysis *table.ColumnAnalysis, values []any) {
	var (
		minEpoch, maxEpoch int64
		found              bool
	)
	for _, v := range values {
		t, ok := table.ParseTime(v)
		if !ok {
			continue
		}
		epoch := t.UnixMilli()
		if !found || epoch < minEpoch {
			minEpoch = epoch
		}
		if !found || epoch > maxEpoch {
			maxEpoch = epoch
		}
		found = true
	}
	if !found {
		return
	}
	analysis.SuggestFilter = true
	analysis.FilterType = table.FilterDateRange
	analysis.FilterConfig = &table.FilterConfig{MinEpoch: &minEpoch, MaxEpoch: &maxEpoch}
}

// suggestRangeFilter proposes a numeric range control for metrics with
// enough distinct values to make a slider useful.
func (c *Classifier) suggestRangeFilter(analysis *table.ColumnAnalysis, numeric *table.NumericStats) {
	if analysis.UniqueCount <= c.h.RangeFilterMinUnique {
		return
	}
	min, max := numeric.Min, numeric.Max
	analysis.SuggestFilter = true
	analysis.FilterType = table.FilterRange
	analysis.FilterConfig = &table.FilterConfig{Min: &min, Max: &max}
}

// suggestSelectFilter proposes a multi-select control for categorical
// columns of moderate cardinality. Options are ordered by frequency.
func (c *Classifier) suggestSelectFilter(analysis *table.ColumnAnalysis, counts map[string]int, order []string) {
	if analysis.UniqueCount < c.h.SelectMinUnique || analysis.UniqueCount > c.h.SelectMaxUnique {
		return
	}
	options := topValues(counts, order, c.h.SelectOptionCap)
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.Value
	}
	analysis.SuggestFilter = true
	analysis.FilterType = table.FilterSelect
	analysis.FilterConfig = &table.FilterConfig{Options: names}
}
