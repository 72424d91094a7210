// Package aggregate implements the pure reducers that turn filtered rows
// into render-ready series, one invocation per chart configuration.
//
// Numeric parsing is deliberately permissive: cells that fail to parse
// contribute 0 to sums and are excluded from average denominators. That
// leniency reproduces the totals users already see and is covered by tests;
// do not tighten it into strict validation.
package aggregate

import (
	"math"
	"sort"
	"strconv"

	"autoviz/domain/table"
)

// UnknownBucket is the group key for rows whose group cell is null or empty.
const UnknownBucket = "Unknown"

// MaxSeriesCategories caps how many category series a multi-series chart
// carries; categories beyond the cap are dropped in first-encountered order.
const MaxSeriesCategories = 6

// DefaultHistogramBuckets is used when the caller passes a non-positive
// bucket count.
const DefaultHistogramBuckets = 10

// Bucket is one aggregated group.
type Bucket struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// HistogramBin is one histogram bucket, labeled by its lower bound.
type HistogramBin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Point is a single labeled value in a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a named sequence of points sharing a time axis.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type accumulator struct {
	count  int
	sum    float64
	values []float64
}

// GroupAggregate buckets rows by the stringified group value and reduces
// each bucket with the requested aggregation. Null and empty group cells
// bucket as UnknownBucket. The result is sorted descending by the chosen
// metric, ties keeping first-encountered order.
func GroupAggregate(rows []table.Row, groupCol, valueCol string, agg table.Aggregation) []Bucket {
	keys, acc := accumulate(rows, groupCol, valueCol, agg)

	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		a := acc[key]
		buckets = append(buckets, Bucket{
			Name:  key,
			Value: reduce(a, valueCol, agg),
			Count: a.count,
		})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Value > buckets[j].Value
	})
	return buckets
}

// TimeSeriesAggregate buckets rows by the raw time value using the same
// accumulation as GroupAggregate, then sorts ascending by time key:
// chronologically when both compared keys parse as dates, lexicographically
// otherwise.
func TimeSeriesAggregate(rows []table.Row, timeCol, valueCol string, agg table.Aggregation) []Bucket {
	keys, acc := accumulate(rows, timeCol, valueCol, agg)

	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		a := acc[key]
		buckets = append(buckets, Bucket{
			Name:  key,
			Value: reduce(a, valueCol, agg),
			Count: a.count,
		})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return timeKeyLess(buckets[i].Name, buckets[j].Name)
	})
	return buckets
}

// Histogram distributes the parseable numeric values of a column into
// equal-width buckets spanning [min, max]. A degenerate zero width is
// clamped to 1 so single-valued columns still produce a bucket.
func Histogram(rows []table.Row, col string, bucketCount int) []HistogramBin {
	if bucketCount <= 0 {
		bucketCount = DefaultHistogramBuckets
	}

	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		v, _ := row.Value(col)
		if f, ok := table.ParseNumber(v); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return []HistogramBin{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	width := (max - min) / float64(bucketCount)
	if width == 0 {
		width = 1
	}

	counts := make([]int, bucketCount)
	for _, v := range values {
		idx := int(math.Floor((v - min) / width))
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	bins := make([]HistogramBin, bucketCount)
	for i := range bins {
		bins[i] = HistogramBin{
			Label: formatBound(min + float64(i)*width),
			Count: counts[i],
		}
	}
	return bins
}

// MultiSeriesAggregate builds the cross-product of up to MaxSeriesCategories
// category values (first-encountered order) and all distinct time points
// (sorted ascending). Each cell sums the value column, or counts matching
// rows when no value column is given.
func MultiSeriesAggregate(rows []table.Row, timeCol, categoryCol, valueCol string) []Series {
	var (
		categories []string
		timePoints []string
		timeSeen   = make(map[string]bool)
		catSeen    = make(map[string]bool)
		cells      = make(map[[2]string]float64)
	)

	for _, row := range rows {
		cat := groupKey(row, categoryCol)
		t := groupKey(row, timeCol)

		if !timeSeen[t] {
			timeSeen[t] = true
			timePoints = append(timePoints, t)
		}
		if !catSeen[cat] {
			if len(categories) == MaxSeriesCategories {
				continue
			}
			catSeen[cat] = true
			categories = append(categories, cat)
		}

		cell := [2]string{t, cat}
		if valueCol == "" {
			cells[cell]++
			continue
		}
		v, _ := row.Value(valueCol)
		if f, ok := table.ParseNumber(v); ok {
			cells[cell] += f
		}
	}

	sort.SliceStable(timePoints, func(i, j int) bool {
		return timeKeyLess(timePoints[i], timePoints[j])
	})

	series := make([]Series, 0, len(categories))
	for _, cat := range categories {
		points := make([]Point, 0, len(timePoints))
		for _, t := range timePoints {
			points = append(points, Point{Label: t, Value: cells[[2]string{t, cat}]})
		}
		series = append(series, Series{Name: cat, Points: points})
	}
	return series
}

func accumulate(rows []table.Row, groupCol, valueCol string, agg table.Aggregation) ([]string, map[string]*accumulator) {
	acc := make(map[string]*accumulator)
	var keys []string

	for _, row := range rows {
		key := groupKey(row, groupCol)
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
			keys = append(keys, key)
		}
		a.count++

		if valueCol == "" {
			continue
		}
		v, _ := row.Value(valueCol)
		f, parsed := table.ParseNumber(v)
		if !parsed {
			// Contributes 0 to the sum, excluded from the average.
			continue
		}
		a.sum += f
		if agg == table.AggAvg {
			a.values = append(a.values, f)
		}
	}
	return keys, acc
}

func reduce(a *accumulator, valueCol string, agg table.Aggregation) float64 {
	if valueCol == "" {
		return float64(a.count)
	}
	var v float64
	switch agg {
	case table.AggSum:
		v = a.sum
	case table.AggAvg:
		if len(a.values) > 0 {
			v = a.sum / float64(len(a.values))
		}
	default:
		v = float64(a.count)
	}
	if math.IsNaN(v) {
		v = 0
	}
	return v
}

func groupKey(row table.Row, col string) string {
	if row.IsMissing(col) {
		return UnknownBucket
	}
	v, _ := row.Value(col)
	return table.Stringify(v)
}

func timeKeyLess(a, b string) bool {
	ta, okA := table.ParseTime(a)
	tb, okB := table.ParseTime(b)
	if okA && okB {
		return ta.Before(tb)
	}
	return a < b
}

func formatBound(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
