package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/vualidon/food-recall-agent/internal/db"
)

// RunsResponse represents the response for /runs
type RunsResponse struct {
	Count int      `json:"count"`
	Runs  []db.Run `json:"runs"`
}

// requireDB reports whether run history is available, writing a 503
// response when it is not.
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db == nil {
		s.errJSON(w, &ErrDatabaseUnavailable{})
		return false
	}
	return true
}

// handleListRuns returns recent pipeline runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		s.errJSON(w, &ErrValidation{Field: "limit", Message: err.Error()})
		return
	}

	runs, err := s.db.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing runs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}

	s.jsonResponse(w, http.StatusOK, RunsResponse{Count: len(runs), Runs: runs})
}

// handleGetRun returns one pipeline run's metadata.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errJSON(w, &ErrValidation{Field: "id", Message: "invalid run id"})
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		log.Printf("Error getting run %s: %v", runID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get run")
		return
	}
	if run == nil {
		s.errJSON(w, &ErrRunNotFound{RunID: runID})
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleGetRunReport serves the report markdown persisted for a run.
func (s *Server) handleGetRunReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errJSON(w, &ErrValidation{Field: "id", Message: "invalid run id"})
		return
	}

	content, err := s.db.GetReportByRunID(r.Context(), runID)
	if err != nil {
		log.Printf("Error getting report for run %s: %v", runID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get report")
		return
	}
	if content == "" {
		s.errJSON(w, &ErrRunNotFound{RunID: runID})
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		log.Printf("Error writing report response: %v", err)
	}
}

// handleGetRunRecalls returns the analyzed recalls persisted for a run.
func (s *Server) handleGetRunRecalls(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errJSON(w, &ErrValidation{Field: "id", Message: "invalid run id"})
		return
	}

	recalls, err := s.db.GetAnalyzedRecallsByRunID(r.Context(), runID)
	if err != nil {
		log.Printf("Error getting recalls for run %s: %v", runID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get recalls")
		return
	}
	if recalls == nil {
		s.errJSON(w, &ErrRunNotFound{RunID: runID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"run_id":  runID,
		"count":   len(recalls),
		"recalls": recalls,
	})
}
