package analyze

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vualidon/food-recall-agent/internal/fetch"
	"github.com/vualidon/food-recall-agent/internal/llm"
	"github.com/vualidon/food-recall-agent/internal/prompts"
	"github.com/vualidon/food-recall-agent/internal/research"
	"github.com/vualidon/food-recall-agent/internal/store"
	"github.com/vualidon/food-recall-agent/internal/types"
)

// MarketResearcher provides market context for a recalled product.
type MarketResearcher interface {
	MarketContext(ctx context.Context, productName, brandName string) string
}

// Options configures an analysis run.
type Options struct {
	Verbose bool
	// Now is replaceable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Analyzer enriches extracted recall records with economic impact estimates.
type Analyzer struct {
	store      *store.Store
	client     llm.Client
	researcher MarketResearcher
	policy     *fetch.RetryPolicy
	opts       Options
}

// New creates an analyzer. researcher may be nil, in which case the impact
// prompt receives a fixed no-context placeholder.
func New(st *store.Store, client llm.Client, researcher MarketResearcher, opts Options) *Analyzer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Analyzer{
		store:      st,
		client:     client,
		researcher: researcher,
		policy:     fetch.DefaultRetryPolicy(),
		opts:       opts,
	}
}

// Run analyzes extracted record files. With no explicit files, every file in
// the processed directory is analyzed. Records that fail analysis are logged
// and skipped.
func (a *Analyzer) Run(ctx context.Context, files []string) ([]string, error) {
	if len(files) == 0 {
		var err error
		files, err = a.store.ListProcessed()
		if err != nil {
			return nil, err
		}
	}

	log.Printf("Starting economic impact analysis for %d records", len(files))

	var analyzed []string
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return analyzed, err
		}
		analyzedPath, err := a.ProcessFile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return analyzed, ctx.Err()
			}
			log.Printf("Warning: failed to analyze %s: %v", path, err)
			continue
		}
		analyzed = append(analyzed, analyzedPath)
	}

	log.Printf("Economic impact analysis complete. Analyzed %d recalls", len(analyzed))
	return analyzed, nil
}

// ProcessFile analyzes one extracted record file into an analyzed record file.
func (a *Analyzer) ProcessFile(ctx context.Context, path string) (string, error) {
	record, err := a.store.ReadRecord(path)
	if err != nil {
		return "", err
	}

	analyzed, err := a.Analyze(ctx, record)
	if err != nil {
		return "", err
	}

	analyzedPath, err := a.store.SaveAnalyzed(analyzed)
	if err != nil {
		return "", err
	}

	a.verbosef("analyzed %s: %s impact, score %.1f", analyzed.ID, analyzed.EconomicImpact, analyzed.ImpactScore)
	return analyzedPath, nil
}

// impactFields is the JSON shape the model returns for impact analysis.
type impactFields struct {
	ImpactCategory     string  `json:"impact_category"`
	ImpactScore        float64 `json:"impact_score"`
	Reasoning          string  `json:"reasoning"`
	AffectedIndustry   string  `json:"affected_industry"`
	EstimatedCostRange string  `json:"estimated_cost_range"`
	MarketContext      string  `json:"market_context"`
}

// Analyze estimates the economic impact of a single recall record. The
// record's category base score and any retrieved market context are folded
// into the prompt; the model's score is clamped to [0, 10].
func (a *Analyzer) Analyze(ctx context.Context, record *types.RecallRecord) (*types.AnalyzedRecall, error) {
	marketContext := a.marketContext(ctx, record)
	baseScore := BaseScore(record.ProductName)

	input := prompts.Format(prompts.MustGet("analysis.json", "impact-input"), map[string]string{
		"Title":         record.Title,
		"Product":       record.ProductName,
		"Brand":         record.BrandName,
		"Firm":          record.RecallingFirm,
		"Reason":        record.Reason,
		"HealthRisk":    string(record.HealthRisk),
		"Scope":         string(record.DistributionScope),
		"States":        strings.Join(record.DistributionStates, ", "),
		"BaseScore":     strconv.FormatFloat(baseScore, 'f', 1, 64),
		"MarketContext": marketContext,
	})

	schema := llm.ImpactAnalysisSchema(prompts.MustGet("analysis.json", "impact-analysis"))
	prompt := llm.BuildExtractionPrompt(schema, input)

	var responseText string
	err := a.policy.Do(ctx, func() error {
		var llmErr error
		responseText, llmErr = a.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
		return llmErr
	})
	if err != nil {
		return nil, &APICallError{Message: "impact analysis call failed", Cause: err}
	}

	var fields impactFields
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &fields); err != nil {
		return nil, &ParseError{Message: "failed to parse impact analysis response", Cause: err}
	}

	category := strings.ToLower(strings.TrimSpace(fields.ImpactCategory))
	if category == "" {
		category = "unknown"
	}

	analyzed := &types.AnalyzedRecall{
		RecallRecord:   *record,
		EconomicImpact: types.ImpactCategory(category),
		ImpactScore:    math.Max(0, math.Min(10, fields.ImpactScore)),
		ImpactDetail: types.ImpactDetail{
			Reasoning:          strings.TrimSpace(fields.Reasoning),
			AffectedIndustry:   strings.TrimSpace(fields.AffectedIndustry),
			EstimatedCostRange: strings.TrimSpace(fields.EstimatedCostRange),
			MarketContext:      marketContext,
		},
		AnalyzedAt: a.opts.Now(),
	}

	if err := analyzed.Validate(); err != nil {
		return nil, &ValidationError{Message: "analyzed record failed validation", Cause: err}
	}
	return analyzed, nil
}

func (a *Analyzer) marketContext(ctx context.Context, record *types.RecallRecord) string {
	if a.researcher == nil {
		return research.NoContextMessage
	}
	return a.researcher.MarketContext(ctx, record.ProductName, record.BrandName)
}

func (a *Analyzer) verbosef(format string, args ...any) {
	if a.opts.Verbose {
		log.Printf("[VERBOSE] "+format, args...)
	}
}
