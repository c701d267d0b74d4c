// Package report renders ranked markdown reports over analyzed recalls.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vualidon/food-recall-agent/internal/fetch"
	"github.com/vualidon/food-recall-agent/internal/llm"
	"github.com/vualidon/food-recall-agent/internal/prompts"
	"github.com/vualidon/food-recall-agent/internal/store"
	"github.com/vualidon/food-recall-agent/internal/types"
)

// DefaultDays is the report lookback window.
const DefaultDays = 7

// Options configures a report run.
type Options struct {
	Days    int
	Verbose bool
	// Now is replaceable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Reporter renders markdown recall reports from analyzed records.
type Reporter struct {
	store  *store.Store
	client llm.Client
	policy *fetch.RetryPolicy
	opts   Options
}

// New creates a reporter writing through st.
func New(st *store.Store, client llm.Client, opts Options) *Reporter {
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Reporter{
		store:  st,
		client: client,
		policy: fetch.DefaultRetryPolicy(),
		opts:   opts,
	}
}

// ReportFilename returns the report filename for a window starting at start.
func ReportFilename(start time.Time) string {
	return fmt.Sprintf("food_recall_report_%s.md", start.Format("20060102"))
}

// EmptyReportFilename returns the stub report filename for an empty window.
func EmptyReportFilename(start time.Time) string {
	return fmt.Sprintf("food_recall_report_%s_empty.md", start.Format("20060102"))
}

// InWindow reports whether rec falls inside the [start, end] window.
// Undated recalls are treated as in-window.
func InWindow(rec *types.AnalyzedRecall, start, end time.Time) bool {
	if rec.RecallDate == nil {
		return true
	}
	return !rec.RecallDate.Before(start) && !rec.RecallDate.After(end)
}

// Run renders a report over analyzed record files and returns the report
// path. With no explicit files, every analyzed record is considered. Records
// dated outside the lookback window are excluded; undated records are kept.
// Unreadable files are logged and skipped.
func (r *Reporter) Run(ctx context.Context, files []string) (string, error) {
	end := r.opts.Now()
	start := end.AddDate(0, 0, -r.opts.Days)

	log.Printf("Generating report for the last %d days", r.opts.Days)

	if len(files) == 0 {
		var err error
		files, err = r.store.ListAnalyzed()
		if err != nil {
			return "", err
		}
	}

	var recalls []*types.AnalyzedRecall
	for _, path := range files {
		rec, err := r.store.ReadAnalyzed(path)
		if err != nil {
			log.Printf("Warning: skipping unreadable analyzed record %s: %v", path, err)
			continue
		}
		if !InWindow(rec, start, end) {
			continue
		}
		recalls = append(recalls, rec)
	}

	if len(recalls) == 0 {
		log.Printf("Warning: no recalls found for the report period")
		content := fmt.Sprintf("# Food Recall Report: %s to %s\n\nNo food recalls were reported during this period.\n",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
		return r.store.SaveReport(EmptyReportFilename(start), content)
	}

	sort.SliceStable(recalls, func(i, j int) bool {
		return recalls[i].ImpactScore > recalls[j].ImpactScore
	})

	content, err := r.narrative(ctx, start, end, recalls)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("Warning: report narrative generation failed, using built-in template: %v", err)
		content, err = RenderMarkdown(start, end, recalls)
		if err != nil {
			return "", err
		}
	}

	path, err := r.store.SaveReport(ReportFilename(start), content)
	if err != nil {
		return "", err
	}

	log.Printf("Report generated successfully: %s", path)
	return path, nil
}

// narrative asks the model for the report body, handing it the ranked
// recalls as JSON.
func (r *Reporter) narrative(ctx context.Context, start, end time.Time, recalls []*types.AnalyzedRecall) (string, error) {
	details, err := json.MarshalIndent(recalls, "", "  ")
	if err != nil {
		return "", err
	}

	input := prompts.Format(prompts.MustGet("report.json", "report-input"), map[string]string{
		"StartDate":   start.Format("2006-01-02"),
		"EndDate":     end.Format("2006-01-02"),
		"RecallCount": strconv.Itoa(len(recalls)),
		"Recalls":     string(details),
	})
	prompt := prompts.MustGet("report.json", "weekly-report") + "\n\n" + input

	var text string
	callErr := r.policy.Do(ctx, func() error {
		var llmErr error
		text, llmErr = r.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
		return llmErr
	})
	if callErr != nil {
		return "", callErr
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &RenderError{Message: "model returned an empty report"}
	}
	return text + "\n", nil
}
