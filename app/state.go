package app

import (
	"sync"

	"autoviz/domain/core"
	"autoviz/domain/table"
)

// AnalysisState holds the latest analysis for the views that consume it. It
// is owned by the top-level application and injected by reference; there is
// no ambient singleton. Updates replace whole sub-objects and bump
// LastUpdated, so consumers can cheaply detect staleness.
type AnalysisState struct {
	mu          sync.RWMutex
	result      table.AnalysisResult
	active      table.ActiveFilters
	lastUpdated core.Timestamp
}

// NewAnalysisState creates an empty state.
func NewAnalysisState() *AnalysisState {
	return &AnalysisState{
		result: table.EmptyAnalysis(),
		active: table.ActiveFilters{},
	}
}

// ReplaceResult swaps in a freshly computed analysis.
func (s *AnalysisState) ReplaceResult(result table.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.lastUpdated = core.Now()
}

// ReplaceActiveFilters swaps the active filter map as a whole.
func (s *AnalysisState) ReplaceActiveFilters(active table.ActiveFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active == nil {
		active = table.ActiveFilters{}
	}
	s.active = active
	s.lastUpdated = core.Now()
}

// Result returns the current analysis.
func (s *AnalysisState) Result() table.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// ActiveFilters returns the current filter map.
func (s *AnalysisState) ActiveFilters() table.ActiveFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// LastUpdated reports when the state last changed.
func (s *AnalysisState) LastUpdated() core.Timestamp {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
