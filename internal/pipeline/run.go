// Package pipeline provides the high-level orchestration for the recall reporting process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vualidon/food-recall-agent/internal/analyze"
	"github.com/vualidon/food-recall-agent/internal/collect"
	"github.com/vualidon/food-recall-agent/internal/db"
	"github.com/vualidon/food-recall-agent/internal/extract"
	"github.com/vualidon/food-recall-agent/internal/llm"
	"github.com/vualidon/food-recall-agent/internal/observability"
	"github.com/vualidon/food-recall-agent/internal/openfda"
	"github.com/vualidon/food-recall-agent/internal/pipeline/steps"
	"github.com/vualidon/food-recall-agent/internal/report"
	"github.com/vualidon/food-recall-agent/internal/research"
	"github.com/vualidon/food-recall-agent/internal/store"
	"github.com/vualidon/food-recall-agent/internal/types"
)

// maxVerboseBoxes caps how many per-record summaries verbose mode prints per stage.
const maxVerboseBoxes = 3

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	DataDir      string
	ReportsDir   string
	Days         int
	Limit        int
	APIKey       string // Gemini API key, required
	FDAAPIKey    string
	SearchAPIKey string
	SearchCX     string
	DatabaseURL  string
	UseBrowser   bool
	Verbose      bool
	OnProgress   ProgressCallback
}

// Result summarizes a completed pipeline run.
type Result struct {
	RunID      uuid.UUID `json:"run_id,omitempty"`
	Collected  int       `json:"collected"`
	Extracted  int       `json:"extracted"`
	Analyzed   int       `json:"analyzed"`
	ReportPath string    `json:"report_path"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, stage steps.Stage, runID uuid.UUID, message string) {
	if opts.OnProgress != nil {
		event := ProgressEvent{
			Step:     stage.Name,
			Category: stage.Category,
			Message:  message,
		}
		if runID != uuid.Nil {
			event.RunID = runID.String()
		}
		opts.OnProgress(event)
	}
}

// stepBanner prints the numbered stage header for CLI output.
func stepBanner(stage steps.Stage, format string, args ...any) {
	fmt.Printf("Step %d/%d: %s...\n", steps.Position(stage.Name), steps.Total(), fmt.Sprintf(format, args...))
}

// RunPipeline orchestrates the full collect, extract, analyze, report sequence.
// Stages run in order; each consumes the files the previous stage produced.
func RunPipeline(ctx context.Context, opts RunOptions) (*Result, error) {

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	if opts.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required: extraction, analysis and reporting call the Gemini API")
	}
	if opts.Days <= 0 {
		opts.Days = report.DefaultDays
	}

	st := store.New(opts.DataDir, opts.ReportsDir)
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("initializing data directories failed: %w", err)
	}

	client, err := llm.NewClient(ctx, nil, opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client failed: %w", err)
	}
	defer func() { _ = client.Close() }()

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
			runID, err = database.CreateRun(ctx, opts.Days)
			if err != nil {
				fmt.Printf("Warning: Failed to create database run: %v\n", err)
			} else if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
		}
	}

	fail := func(err error) (*Result, error) {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, db.RunStatusFailed, "")
		}
		return nil, err
	}

	stepBanner(steps.StageCollect, "Collecting recall announcements from the last %d days", opts.Days)
	collector := collect.New(st, openfda.NewClient(opts.FDAAPIKey), collect.Options{
		Days:       opts.Days,
		Limit:      opts.Limit,
		UseBrowser: opts.UseBrowser,
		Verbose:    opts.Verbose,
	})
	rawFiles, err := collector.Run(ctx)
	if err != nil {
		return fail(fmt.Errorf("collection failed: %w", err))
	}
	// Save to database
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRawRecalls, db.CategoryCollection, baseNames(rawFiles))
	}
	emitProgress(&opts, steps.StageCollect, runID,
		fmt.Sprintf("Collected %d raw announcements", len(rawFiles)))

	stepBanner(steps.StageExtract, "Extracting structured records from %d announcements", len(rawFiles))
	extractor := extract.New(st, client, extract.Options{Verbose: opts.Verbose})
	processedFiles, err := extractor.Run(ctx, rawFiles)
	if err != nil {
		return fail(fmt.Errorf("extraction failed: %w", err))
	}
	if opts.Verbose {
		for _, path := range firstN(processedFiles, maxVerboseBoxes) {
			if rec, err := st.ReadRecord(path); err == nil {
				printer.PrintRecallRecord(rec)
			}
		}
	}
	// Save to database
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRecallRecords, db.CategoryExtraction, readRecords(st, processedFiles))
	}
	emitProgress(&opts, steps.StageExtract, runID,
		fmt.Sprintf("Extracted %d recall records", len(processedFiles)))

	// Market research is optional; without search credentials the analyzer
	// runs with a placeholder context.
	var researcher analyze.MarketResearcher
	if opts.SearchAPIKey != "" && opts.SearchCX != "" {
		r, err := research.NewResearcher(ctx, opts.SearchAPIKey, opts.SearchCX)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize researcher: %v\n", err)
		} else {
			researcher = r
		}
	} else if opts.Verbose {
		fmt.Printf("[VERBOSE] Google Search API keys not set (GOOGLE_SEARCH_API_KEY: %t, GOOGLE_SEARCH_CX: %t); skipping market research\n",
			opts.SearchAPIKey != "", opts.SearchCX != "")
	}

	stepBanner(steps.StageAnalyze, "Estimating economic impact for %d recalls", len(processedFiles))
	analyzer := analyze.New(st, client, researcher, analyze.Options{Verbose: opts.Verbose})
	analyzedFiles, err := analyzer.Run(ctx, processedFiles)
	if err != nil {
		return fail(fmt.Errorf("impact analysis failed: %w", err))
	}
	if opts.Verbose {
		for _, path := range firstN(analyzedFiles, maxVerboseBoxes) {
			if rec, err := st.ReadAnalyzed(path); err == nil {
				printer.PrintAnalyzedRecall(rec)
			}
		}
	}
	// Save to database
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepAnalyzedRecalls, db.CategoryAnalysis, readAnalyzed(st, analyzedFiles))
	}
	emitProgress(&opts, steps.StageAnalyze, runID,
		fmt.Sprintf("Analyzed %d recalls", len(analyzedFiles)))

	stepBanner(steps.StageReport, "Generating the recall report")
	reporter := report.New(st, client, report.Options{Days: opts.Days, Verbose: opts.Verbose})
	reportPath, err := reporter.Run(ctx, analyzedFiles)
	if err != nil {
		return fail(fmt.Errorf("report generation failed: %w", err))
	}
	if content, err := os.ReadFile(reportPath); err == nil {
		// Save to database
		if database != nil && runID != uuid.Nil {
			_ = database.SaveTextArtifact(ctx, runID, db.StepReportMarkdown, db.CategoryReporting, string(content))
		}
		printer.PrintReportPreview(string(content))
	}
	emitProgress(&opts, steps.StageReport, runID,
		fmt.Sprintf("Report generated: %s", filepath.Base(reportPath)))

	// Mark run as completed
	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, db.RunStatusCompleted, reportPath)
	}

	printer.PrintRunSummary(len(rawFiles), len(processedFiles), len(analyzedFiles), reportPath)
	fmt.Printf("Done! Report written to %s\n", reportPath)

	return &Result{
		RunID:      runID,
		Collected:  len(rawFiles),
		Extracted:  len(processedFiles),
		Analyzed:   len(analyzedFiles),
		ReportPath: reportPath,
	}, nil
}

// baseNames strips directories from a list of file paths.
func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

// firstN returns up to n leading elements of paths.
func firstN(paths []string, n int) []string {
	if len(paths) <= n {
		return paths
	}
	return paths[:n]
}

// readRecords loads recall records for database mirroring, skipping
// unreadable files.
func readRecords(st *store.Store, paths []string) []types.RecallRecord {
	records := make([]types.RecallRecord, 0, len(paths))
	for _, path := range paths {
		rec, err := st.ReadRecord(path)
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}
	return records
}

// readAnalyzed loads analyzed recalls for database mirroring, skipping
// unreadable files.
func readAnalyzed(st *store.Store, paths []string) []types.AnalyzedRecall {
	records := make([]types.AnalyzedRecall, 0, len(paths))
	for _, path := range paths {
		rec, err := st.ReadAnalyzed(path)
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}
	return records
}
