package classify

// Heuristics holds the tunable thresholds of column classification. The
// defaults encode the observed behavior of the profiler; tuning them never
// requires touching the classification logic itself.
type Heuristics struct {
	// SampleSize caps how many leading rows are inspected per column. A
	// column whose distinguishing values appear only past the window may be
	// misclassified; that is an accepted accuracy/performance trade-off, not
	// something to fix with a full scan.
	SampleSize int

	// IdentifierUniqueRatio: a column with more than this share of distinct
	// values is treated as an identifier, once the dataset is large enough
	// for the ratio to mean anything.
	IdentifierUniqueRatio float64
	IdentifierMinRows     int

	// DateSampleSize/DateDetectRatio: how many values to probe and what
	// share of them must parse as dates for name-less datetime detection.
	DateSampleSize  int
	DateDetectRatio float64

	// NumericRatio: minimum share of sampled values that must parse as
	// finite numbers for a column to be numeric.
	NumericRatio float64

	// MetricUniqueCutoff/MetricSpreadCutoff: a numeric column becomes a
	// metric when it has many distinct values or a wide value range;
	// otherwise it is a coded dimension (e.g. priority 1–5).
	MetricUniqueCutoff int
	MetricSpreadCutoff float64

	// Filter suggestion bounds.
	RangeFilterMinUnique int
	SelectMinUnique      int
	SelectMaxUnique      int
	SelectOptionCap      int

	// TopValueCount caps the per-column frequency table.
	TopValueCount int
}

// DefaultHeuristics returns the standard thresholds.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		SampleSize:            500,
		IdentifierUniqueRatio: 0.9,
		IdentifierMinRows:     10,
		DateSampleSize:        10,
		DateDetectRatio:       0.7,
		NumericRatio:          0.8,
		MetricUniqueCutoff:    20,
		MetricSpreadCutoff:    10,
		RangeFilterMinUnique:  5,
		SelectMinUnique:       2,
		SelectMaxUnique:       20,
		SelectOptionCap:       50,
		TopValueCount:         10,
	}
}
