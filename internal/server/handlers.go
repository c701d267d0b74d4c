package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vualidon/food-recall-agent/internal/pipeline"
	"github.com/vualidon/food-recall-agent/internal/pipeline/steps"
	"github.com/vualidon/food-recall-agent/internal/report"
	"github.com/vualidon/food-recall-agent/internal/types"
)

// RunRequest represents the request body for /run/stream. All fields are
// optional; the server's configuration supplies defaults.
type RunRequest struct {
	Days       int  `json:"days,omitempty"`
	Limit      int  `json:"limit,omitempty"`
	UseBrowser bool `json:"use_browser,omitempty"`
}

// RecallsResponse represents the response for /recalls
type RecallsResponse struct {
	Count   int                     `json:"count"`
	Days    int                     `json:"days"`
	Recalls []*types.AnalyzedRecall `json:"recalls"`
}

// ReportInfo describes one report file for /reports
type ReportInfo struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ReportsResponse represents the response for /reports
type ReportsResponse struct {
	Count   int          `json:"count"`
	Reports []ReportInfo `json:"reports"`
}

// handleListRecalls returns analyzed recalls inside the lookback window,
// ranked by impact score.
func (s *Server) handleListRecalls(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", s.defaultDays())
	if err != nil {
		s.errJSON(w, &ErrValidation{Field: "days", Message: err.Error()})
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		s.errJSON(w, &ErrValidation{Field: "limit", Message: err.Error()})
		return
	}
	if days <= 0 {
		s.errJSON(w, &ErrValidation{Field: "days", Message: "must be positive"})
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	paths, err := s.store.ListAnalyzed()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list analyzed recalls: "+err.Error())
		return
	}

	recalls := make([]*types.AnalyzedRecall, 0, len(paths))
	for _, path := range paths {
		rec, err := s.store.ReadAnalyzed(path)
		if err != nil {
			log.Printf("Warning: skipping unreadable analyzed record %s: %v", path, err)
			continue
		}
		if !report.InWindow(rec, start, end) {
			continue
		}
		recalls = append(recalls, rec)
	}

	sort.SliceStable(recalls, func(i, j int) bool {
		return recalls[i].ImpactScore > recalls[j].ImpactScore
	})

	if limit > 0 && len(recalls) > limit {
		recalls = recalls[:limit]
	}

	s.jsonResponse(w, http.StatusOK, RecallsResponse{
		Count:   len(recalls),
		Days:    days,
		Recalls: recalls,
	})
}

// handleGetRecall returns one analyzed recall by its record id.
func (s *Server) handleGetRecall(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !safeName(id) {
		s.errJSON(w, &ErrValidation{Field: "id", Message: "invalid record id"})
		return
	}

	path := filepath.Join(s.store.AnalyzedDir(), id+".json")
	rec, err := s.store.ReadAnalyzed(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.errJSON(w, &ErrRecallNotFound{ID: id})
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to read recall: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// handleListReports lists generated report files.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	paths, err := s.store.ListReports()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list reports: "+err.Error())
		return
	}

	reports := make([]ReportInfo, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{
			Name:       filepath.Base(path),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime().UTC(),
		})
	}

	s.jsonResponse(w, http.StatusOK, ReportsResponse{
		Count:   len(reports),
		Reports: reports,
	})
}

// handleGetReport serves one report's markdown content.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !safeName(name) || !strings.HasSuffix(name, ".md") {
		s.errJSON(w, &ErrValidation{Field: "name", Message: "invalid report name"})
		return
	}

	content, err := os.ReadFile(filepath.Join(s.store.ReportsDir(), name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.errJSON(w, &ErrReportNotFound{Name: name})
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to read report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Printf("Error writing report response: %v", err)
	}
}

// handleRunStream starts a pipeline and streams progress via SSE
func (s *Server) handleRunStream(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Days < 0 {
		s.errJSON(w, &ErrValidation{Field: "days", Message: "must be non-negative"})
		return
	}

	// One run at a time: stages share the data directory.
	if !s.runMu.TryLock() {
		s.errJSON(w, &ErrRunInProgress{})
		return
	}
	defer s.runMu.Unlock()

	// Setup SSE writer
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming pipeline run...")

	// Announce the stages so clients can render progress.
	if err := sse.WriteEvent("stages", steps.Ordered); err != nil {
		log.Printf("Error writing SSE event: %v", err)
	}

	opts := s.pipelineOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	// Run pipeline synchronously (blocking until complete)
	result, err := pipeline.RunPipeline(r.Context(), opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	runID := ""
	if result.RunID != uuid.Nil {
		runID = result.RunID.String()
	}
	sse.WriteComplete(runID, result.ReportPath)
	log.Printf("Streaming pipeline run completed")
}

// pipelineOptions builds pipeline options from server config plus request
// overrides.
func (s *Server) pipelineOptions(req RunRequest) pipeline.RunOptions {
	opts := pipeline.RunOptions{
		DataDir:      s.cfg.DataDir,
		ReportsDir:   s.cfg.ReportsDir,
		Days:         s.cfg.Days,
		Limit:        s.cfg.Limit,
		APIKey:       s.cfg.APIKey,
		FDAAPIKey:    s.cfg.FDAAPIKey,
		SearchAPIKey: s.cfg.SearchAPIKey,
		SearchCX:     s.cfg.SearchCX,
		DatabaseURL:  s.cfg.DatabaseURL,
		UseBrowser:   s.cfg.UseBrowser,
		Verbose:      s.cfg.Verbose,
	}
	if req.Days > 0 {
		opts.Days = req.Days
	}
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}
	if req.UseBrowser {
		opts.UseBrowser = true
	}
	return opts
}

// defaultDays returns the configured lookback window.
func (s *Server) defaultDays() int {
	if s.cfg.Days > 0 {
		return s.cfg.Days
	}
	return report.DefaultDays
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

// safeName rejects path components that could escape the store directories.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
