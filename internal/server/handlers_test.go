package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/food-recall-agent/internal/types"
)

// seedAnalyzed writes an analyzed recall into the server's store.
func seedAnalyzed(t *testing.T, s *Server, id string, recallDate time.Time, score float64) {
	t.Helper()

	rec := &types.AnalyzedRecall{
		RecallRecord: types.RecallRecord{
			ID:                id,
			Source:            types.SourceFDA,
			ProductName:       "Product " + id,
			Reason:            "Undeclared peanut",
			HealthRisk:        types.RiskHigh,
			DistributionScope: types.ScopeNational,
			RecallDate:        &recallDate,
			ExtractedAt:       time.Now(),
		},
		EconomicImpact: types.ImpactHigh,
		ImpactScore:    score,
		AnalyzedAt:     time.Now(),
	}
	_, err := s.store.SaveAnalyzed(rec)
	require.NoError(t, err)
}

func TestHandleListRecalls(t *testing.T) {
	s := newTestServer(t)

	now := time.Now()
	seedAnalyzed(t, s, "fda-1", now.AddDate(0, 0, -2), 4.2)
	seedAnalyzed(t, s, "fda-2", now.AddDate(0, 0, -5), 9.1)
	seedAnalyzed(t, s, "fda-old", now.AddDate(0, 0, -90), 7.0)

	req := httptest.NewRequest(http.MethodGet, "/recalls?days=30", nil)
	w := httptest.NewRecorder()

	s.handleListRecalls(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RecallsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 30, resp.Days)
	require.Len(t, resp.Recalls, 2)
	// Ranked by impact score, highest first.
	assert.Equal(t, "fda-2", resp.Recalls[0].ID)
	assert.Equal(t, "fda-1", resp.Recalls[1].ID)
}

func TestHandleListRecalls_Limit(t *testing.T) {
	s := newTestServer(t)

	now := time.Now()
	seedAnalyzed(t, s, "fda-1", now.AddDate(0, 0, -1), 4.2)
	seedAnalyzed(t, s, "fda-2", now.AddDate(0, 0, -1), 9.1)

	req := httptest.NewRequest(http.MethodGet, "/recalls?days=7&limit=1", nil)
	w := httptest.NewRecorder()

	s.handleListRecalls(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RecallsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recalls, 1)
	assert.Equal(t, "fda-2", resp.Recalls[0].ID)
}

func TestHandleListRecalls_DefaultDays(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/recalls", nil)
	w := httptest.NewRecorder()

	s.handleListRecalls(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RecallsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Days)
	assert.Equal(t, 0, resp.Count)
}

func TestHandleListRecalls_InvalidDays(t *testing.T) {
	s := newTestServer(t)

	for _, query := range []string{"days=abc", "days=-3", "days=0"} {
		req := httptest.NewRequest(http.MethodGet, "/recalls?"+query, nil)
		w := httptest.NewRecorder()

		s.handleListRecalls(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestHandleGetRecall(t *testing.T) {
	s := newTestServer(t)

	recallDate := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedAnalyzed(t, s, "fda-20260810-abc123", recallDate, 8.5)

	req := httptest.NewRequest(http.MethodGet, "/recalls/fda-20260810-abc123", nil)
	req.SetPathValue("id", "fda-20260810-abc123")
	w := httptest.NewRecorder()

	s.handleGetRecall(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var rec types.AnalyzedRecall
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "fda-20260810-abc123", rec.ID)
	assert.Equal(t, types.ImpactHigh, rec.EconomicImpact)
	assert.InDelta(t, 8.5, rec.ImpactScore, 0.001)
}

func TestHandleGetRecall_NotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/recalls/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	s.handleGetRecall(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "recall not found")
}

func TestHandleGetRecall_RejectsUnsafeIDs(t *testing.T) {
	s := newTestServer(t)

	for _, id := range []string{"..", "../secrets", "a/b", `a\b`, ""} {
		req := httptest.NewRequest(http.MethodGet, "/recalls/x", nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		s.handleGetRecall(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
	}
}

func TestHandleListReports(t *testing.T) {
	s := newTestServer(t)

	_, err := s.store.SaveReport("food_recall_report_20260810.md", "# Report A")
	require.NoError(t, err)
	_, err = s.store.SaveReport("food_recall_report_20260817.md", "# Report B")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	w := httptest.NewRecorder()

	s.handleListReports(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ReportsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Reports, 2)
	assert.Equal(t, "food_recall_report_20260810.md", resp.Reports[0].Name)
	assert.Greater(t, resp.Reports[0].SizeBytes, int64(0))
}

func TestHandleGetReport(t *testing.T) {
	s := newTestServer(t)

	content := "# Food Recall Report\n\nNothing this week."
	_, err := s.store.SaveReport("food_recall_report_20260817.md", content)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reports/food_recall_report_20260817.md", nil)
	req.SetPathValue("name", "food_recall_report_20260817.md")
	w := httptest.NewRecorder()

	s.handleGetReport(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, content, w.Body.String())
}

func TestHandleGetReport_NotFound(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/missing.md", nil)
	req.SetPathValue("name", "missing.md")
	w := httptest.NewRecorder()

	s.handleGetReport(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "report not found")
}

func TestHandleGetReport_RejectsUnsafeNames(t *testing.T) {
	s := newTestServer(t)

	for _, name := range []string{"notes.txt", "../report.md", "..", ""} {
		req := httptest.NewRequest(http.MethodGet, "/reports/x", nil)
		req.SetPathValue("name", name)
		w := httptest.NewRecorder()

		s.handleGetReport(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "name %q", name)
	}
}

func TestHandleRunStream_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/run/stream", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	s.handleRunStream(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestHandleRunStream_NegativeDays(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/run/stream", strings.NewReader(`{"days": -1}`))
	w := httptest.NewRecorder()

	s.handleRunStream(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRunStream_Busy(t *testing.T) {
	s := newTestServer(t)

	s.runMu.Lock()
	defer s.runMu.Unlock()

	req := httptest.NewRequest(http.MethodPost, "/run/stream", nil)
	w := httptest.NewRecorder()

	s.handleRunStream(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already in progress")
}

func TestHandleRunStream_MissingAPIKey(t *testing.T) {
	// No Gemini key configured: the stream should open, announce the
	// stages, then report the failure as an SSE error event.
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/run/stream", nil)
	w := httptest.NewRecorder()

	s.handleRunStream(w, req)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: stages")
	assert.Contains(t, body, `"collect"`)
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "GEMINI_API_KEY")
}

func TestPipelineOptions_Overrides(t *testing.T) {
	s := newTestServer(t)
	s.cfg.Days = 7
	s.cfg.Limit = 10
	s.cfg.APIKey = "configured-key"
	s.cfg.Verbose = true

	opts := s.pipelineOptions(RunRequest{Days: 30, UseBrowser: true})

	assert.Equal(t, 30, opts.Days)
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, "configured-key", opts.APIKey)
	assert.True(t, opts.UseBrowser)
	assert.True(t, opts.Verbose)
}

func TestSafeName(t *testing.T) {
	assert.True(t, safeName("fda-20260810-abc123"))
	assert.True(t, safeName("report.md"))
	assert.False(t, safeName(""))
	assert.False(t, safeName("."))
	assert.False(t, safeName(".."))
	assert.False(t, safeName("a/b"))
	assert.False(t, safeName(`a\b`))
}
