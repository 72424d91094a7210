// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"autoviz/app"
	"autoviz/domain/table"
)

// Server wires the analyzer behind a chi router. Snapshots arrive inline
// in request bodies; the latest analysis and filter state are kept in an
// injected AnalysisState so consumers can poll them back.
type Server struct {
	analyzer *app.Analyzer
	state    *app.AnalysisState
	router   *chi.Mux
}

// NewServer builds a server around the given analyzer.
func NewServer(analyzer *app.Analyzer) *Server {
	s := &Server{
		analyzer: analyzer,
		state:    app.NewAnalysisState(),
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/analysis", s.handleLastAnalysis)
		r.Post("/charts/data", s.handleChartData)
		r.Post("/filter", s.handleFilter)
		r.Post("/profile", s.handleProfile)
	})
}

// Router returns the configured handler for mounting or serving.
func (s *Server) Router() http.Handler {
	return s.router
}

// snapshotRequest is the inline dataset payload shared by all endpoints.
type snapshotRequest struct {
	Name         string      `json:"name"`
	Columns      []string    `json:"columns"`
	Rows         []table.Row `json:"rows"`
	TargetColumn string      `json:"targetColumn"`
}

func (r *snapshotRequest) snapshot() *table.Snapshot {
	snap := table.NewSnapshot(r.Columns, r.Rows)
	snap.Name = r.Name
	snap.TargetColumn = r.TargetColumn
	return snap
}

type chartDataRequest struct {
	snapshotRequest
	Chart         table.ChartConfig   `json:"chart"`
	ActiveFilters table.ActiveFilters `json:"activeFilters"`
}

type filterRequest struct {
	snapshotRequest
	ActiveFilters table.ActiveFilters `json:"activeFilters"`
}

type filterResponse struct {
	Rows     []table.Row `json:"rows"`
	RowCount int         `json:"rowCount"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result := s.analyzer.Analyze(req.snapshot())
	s.state.ReplaceResult(result)
	writeJSON(w, http.StatusOK, result)
}

type lastAnalysisResponse struct {
	Result      table.AnalysisResult `json:"result"`
	LastUpdated string               `json:"lastUpdated,omitempty"`
}

func (s *Server) handleLastAnalysis(w http.ResponseWriter, r *http.Request) {
	resp := lastAnalysisResponse{Result: s.state.Result()}
	if updated := s.state.LastUpdated(); !updated.IsZero() {
		resp.LastUpdated = updated.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	var req chartDataRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Chart.Columns) == 0 {
		writeError(w, http.StatusBadRequest, "chart config requires at least one column")
		return
	}
	data := app.BuildChartData(req.Rows, req.Chart, req.ActiveFilters)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.state.ReplaceActiveFilters(req.ActiveFilters)
	rows := app.FilterRows(req.Rows, req.ActiveFilters)
	writeJSON(w, http.StatusOK, filterResponse{Rows: rows, RowCount: len(rows)})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	profile := s.analyzer.Profile(req.snapshot())
	writeJSON(w, http.StatusOK, profile)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
