package summary

import (
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"autoviz/domain/table"
)

// Quality score penalties. Missing cells cost up to 30 points, duplicate
// rows up to 20, out of 100.
const (
	missingPenaltyCap   = 30.0
	duplicatePenaltyCap = 20.0
)

// Profile is the dataset-level quality report that accompanies the metrics
// map: missing-value breakdown, duplicate rows, and a 0–100 quality score.
type Profile struct {
	TotalRows            int                `json:"totalRows"`
	TotalColumns         int                `json:"totalColumns"`
	TotalMissing         int                `json:"totalMissing"`
	ColumnsWithMissing   int                `json:"columnsWithMissing"`
	MissingRatioByColumn map[string]float64 `json:"missingRatioByColumn"`
	DuplicateRows        int                `json:"duplicateRows"`
	QualityScore         float64            `json:"qualityScore"`

	// Correlations is the pairwise Pearson matrix over numeric columns,
	// present only when at least two exist.
	Correlations map[string]map[string]float64 `json:"correlations,omitempty"`
}

// BuildProfile scans the full snapshot (not the classification sample) for
// missing cells and duplicate rows, and scores overall data quality.
func BuildProfile(snap *table.Snapshot) Profile {
	profile := Profile{
		TotalRows:            len(snap.Rows),
		TotalColumns:         len(snap.Columns),
		MissingRatioByColumn: map[string]float64{},
	}
	if snap.IsEmpty() {
		profile.QualityScore = 100
		return profile
	}

	for _, col := range snap.Columns {
		missing := 0
		for _, row := range snap.Rows {
			if row.IsMissing(col) {
				missing++
			}
		}
		profile.MissingRatioByColumn[col] = float64(missing) / float64(len(snap.Rows))
		profile.TotalMissing += missing
		if missing > 0 {
			profile.ColumnsWithMissing++
		}
	}

	seen := make(map[string]bool, len(snap.Rows))
	for _, row := range snap.Rows {
		fp := fingerprint(row, snap.Columns)
		if seen[fp] {
			profile.DuplicateRows++
			continue
		}
		seen[fp] = true
	}

	profile.Correlations = correlationMatrix(snap)
	profile.QualityScore = qualityScore(profile, len(snap.Rows)*len(snap.Columns))
	return profile
}

// correlationMatrix computes pairwise Pearson correlations over the numeric
// columns, using the rows where both cells parse. Returns nil with fewer
// than two numeric columns.
func correlationMatrix(snap *table.Snapshot) map[string]map[string]float64 {
	var numeric []string
	for _, col := range snap.Columns {
		if isNumericColumn(snap, col) {
			numeric = append(numeric, col)
		}
	}
	if len(numeric) < 2 {
		return nil
	}

	matrix := make(map[string]map[string]float64, len(numeric))
	for _, col := range numeric {
		matrix[col] = map[string]float64{col: 1}
	}
	for i, a := range numeric {
		for _, b := range numeric[i+1:] {
			r, ok := pearson(snap.Rows, a, b)
			if !ok {
				continue
			}
			matrix[a][b] = r
			matrix[b][a] = r
		}
	}
	return matrix
}

// isNumericColumn requires every non-missing cell to parse as a finite
// number, with at least one such cell present.
func isNumericColumn(snap *table.Snapshot, col string) bool {
	parsed := 0
	for _, row := range snap.Rows {
		if row.IsMissing(col) {
			continue
		}
		v, _ := row.Value(col)
		if _, ok := table.ParseExactNumber(v); !ok {
			return false
		}
		parsed++
	}
	return parsed > 0
}

func pearson(rows []table.Row, a, b string) (float64, bool) {
	var xs, ys []float64
	for _, row := range rows {
		va, _ := row.Value(a)
		vb, _ := row.Value(b)
		x, okA := table.ParseExactNumber(va)
		y, okB := table.ParseExactNumber(vb)
		if !okA || !okB {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return 0, false
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil || math.IsNaN(r) {
		return 0, false
	}
	return math.Round(r*10000) / 10000, true
}

func qualityScore(p Profile, totalCells int) float64 {
	score := 100.0

	missingPct := float64(p.TotalMissing) / float64(totalCells) * 100
	score -= math.Min(missingPct, missingPenaltyCap)

	duplicatePct := float64(p.DuplicateRows) / float64(p.TotalRows) * 100
	score -= math.Min(duplicatePct, duplicatePenaltyCap)

	if score < 0 {
		score = 0
	}
	return math.Round(score*100) / 100
}

// fingerprint canonicalizes a row for duplicate detection, joining the
// stringified cells in column order with an unprintable separator.
func fingerprint(row table.Row, columns []string) string {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		v, _ := row.Value(col)
		b.WriteString(table.Stringify(v))
	}
	return b.String()
}
