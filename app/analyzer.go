package app

import (
	"log"
	"sync"

	"autoviz/domain/table"
	"autoviz/internal/charts"
	"autoviz/internal/classify"
	"autoviz/internal/filters"
	"autoviz/internal/summary"
)

// Analyzer runs one full analysis pass over a snapshot: classify every
// column, synthesize filter specs, recommend charts, and compute summary
// metrics. A pass is synchronous, side-effect-free, and total: empty input
// yields empty structures, never an error.
type Analyzer struct {
	classifier *classify.Classifier

	// Re-running the pipeline on every input change is safe because it is
	// idempotent; the memo is purely an optimization keyed on snapshot
	// identity and target column.
	mu      sync.Mutex
	memoKey string
	memo    *table.AnalysisResult
}

// NewAnalyzer creates an analyzer with the default classification
// heuristics.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWith(classify.DefaultHeuristics())
}

// NewAnalyzerWith creates an analyzer with custom heuristics.
func NewAnalyzerWith(h classify.Heuristics) *Analyzer {
	return &Analyzer{classifier: classify.New(h)}
}

// Analyze produces the full analysis for a snapshot.
func (a *Analyzer) Analyze(snap *table.Snapshot) table.AnalysisResult {
	if snap == nil || snap.IsEmpty() {
		return table.EmptyAnalysis()
	}

	if result, ok := a.cached(snap); ok {
		return result
	}

	analyses := a.classifier.ClassifySnapshot(snap)
	result := table.AnalysisResult{
		Columns: analyses,
		Filters: filters.Synthesize(snap.Columns, analyses),
		Charts:  charts.Recommend(snap.Columns, analyses, snap.TargetColumn),
		Metrics: summary.Metrics(snap.Columns, analyses, snap.TargetColumn, snap.RowCount()),
	}

	log.Printf("[Analyzer] snapshot %s: %d columns, %d rows, %d filters, %d charts",
		snap.ID, len(snap.Columns), snap.RowCount(), len(result.Filters), len(result.Charts))

	a.remember(snap, result)
	return result
}

// Profile builds the dataset quality profile. Unlike Analyze it scans all
// rows, so callers typically request it once per upload rather than per
// refresh.
func (a *Analyzer) Profile(snap *table.Snapshot) summary.Profile {
	if snap == nil {
		return summary.BuildProfile(&table.Snapshot{})
	}
	return summary.BuildProfile(snap)
}

func (a *Analyzer) cached(snap *table.Snapshot) (table.AnalysisResult, bool) {
	key := memoKey(snap)
	if key == "" {
		return table.AnalysisResult{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.memo != nil && a.memoKey == key {
		return *a.memo, true
	}
	return table.AnalysisResult{}, false
}

func (a *Analyzer) remember(snap *table.Snapshot, result table.AnalysisResult) {
	key := memoKey(snap)
	if key == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.memoKey = key
	a.memo = &result
}

func memoKey(snap *table.Snapshot) string {
	if snap.ID == "" {
		return ""
	}
	return snap.ID.String() + "\x00" + snap.TargetColumn
}
