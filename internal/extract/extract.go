// Package extract converts raw recall announcements into structured recall
// records using LLM extraction with source-specific prompts, backed by
// rule-based date extraction.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vualidon/food-recall-agent/internal/fetch"
	"github.com/vualidon/food-recall-agent/internal/llm"
	"github.com/vualidon/food-recall-agent/internal/openfda"
	"github.com/vualidon/food-recall-agent/internal/prompts"
	"github.com/vualidon/food-recall-agent/internal/store"
	"github.com/vualidon/food-recall-agent/internal/types"
)

// Options configures an extraction run.
type Options struct {
	Verbose bool
	// Now is replaceable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Extractor turns raw recalls into structured recall records.
type Extractor struct {
	store  *store.Store
	client llm.Client
	policy *fetch.RetryPolicy
	opts   Options
}

// New creates an extractor reading and writing through st.
func New(st *store.Store, client llm.Client, opts Options) *Extractor {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Extractor{
		store:  st,
		client: client,
		policy: fetch.DefaultRetryPolicy(),
		opts:   opts,
	}
}

// Run processes raw record files into structured records. With no explicit
// files, every file in the raw directory is processed. Records that fail
// extraction are logged and skipped.
func (e *Extractor) Run(ctx context.Context, files []string) ([]string, error) {
	if len(files) == 0 {
		var err error
		files, err = e.store.ListRaw()
		if err != nil {
			return nil, err
		}
	}

	log.Printf("Starting information extraction for %d raw records", len(files))

	var processed []string
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		recordPath, err := e.ProcessFile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return processed, ctx.Err()
			}
			log.Printf("Warning: failed to process %s: %v", path, err)
			continue
		}
		processed = append(processed, recordPath)
	}

	log.Printf("Information extraction complete. Processed %d recall announcements", len(processed))
	return processed, nil
}

// ProcessFile extracts one raw record file into a structured record file.
// The record's ID is the raw file's stem.
func (e *Extractor) ProcessFile(ctx context.Context, path string) (string, error) {
	raw, err := e.store.ReadRaw(path)
	if err != nil {
		return "", err
	}

	record, err := e.Extract(ctx, raw)
	if err != nil {
		return "", err
	}
	record.ID = store.Stem(path)

	if err := record.Validate(); err != nil {
		return "", &ValidationError{Message: "extracted record failed validation", Cause: err}
	}

	recordPath, err := e.store.SaveRecord(record)
	if err != nil {
		return "", err
	}

	e.verbosef("extracted %s: %s", record.ID, record.Title)
	return recordPath, nil
}

// extractedFields is the JSON shape the model returns.
type extractedFields struct {
	Title              string   `json:"title"`
	ProductName        string   `json:"product_name"`
	BrandName          string   `json:"brand_name"`
	RecallingFirm      string   `json:"recalling_firm"`
	RecallDate         string   `json:"recall_date"`
	Timestamp          string   `json:"timestamp"`
	Reason             string   `json:"reason"`
	HealthRisk         string   `json:"health_risk"`
	DistributionScope  string   `json:"distribution_scope"`
	DistributionStates []string `json:"distribution_states"`
	LotCodes           []string `json:"lot_codes"`
}

// Extract runs the LLM extraction for a single raw recall. The returned
// record has every field populated except ID, which is keyed to the raw
// file by the caller.
func (e *Extractor) Extract(ctx context.Context, raw *types.RawRecall) (*types.RecallRecord, error) {
	schema := llm.RecallExtractionSchema(rulesFor(raw.Source))
	input := fmt.Sprintf("URL: %s\n\n%s", raw.URL, raw.Payload())
	prompt := llm.BuildExtractionPrompt(schema, input)

	var responseText string
	err := e.policy.Do(ctx, func() error {
		var llmErr error
		responseText, llmErr = e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
		return llmErr
	})
	if err != nil {
		return nil, &APICallError{Message: "extraction call failed", Cause: err}
	}

	var fields extractedFields
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &fields); err != nil {
		return nil, &ParseError{Message: "failed to parse extraction response", Cause: err}
	}

	now := e.opts.Now()
	recallDate := resolveRecallDate(raw, fields.RecallDate, now)

	return &types.RecallRecord{
		Source:             raw.Source,
		URL:                raw.URL,
		Title:              strings.TrimSpace(fields.Title),
		ProductName:        strings.TrimSpace(fields.ProductName),
		BrandName:          strings.TrimSpace(fields.BrandName),
		RecallingFirm:      strings.TrimSpace(fields.RecallingFirm),
		RecallDate:         &recallDate,
		Reason:             strings.TrimSpace(fields.Reason),
		HealthRisk:         types.HealthRisk(normalizeEnum(fields.HealthRisk)),
		DistributionScope:  types.DistributionScope(normalizeEnum(fields.DistributionScope)),
		DistributionStates: fields.DistributionStates,
		LotCodes:           fields.LotCodes,
		ExtractedAt:        now,
	}, nil
}

// rulesFor selects the source-specific extraction rules.
func rulesFor(source types.Source) string {
	switch source {
	case types.SourceFDA:
		return prompts.MustGet("extraction.json", "extract-recall-fda")
	case types.SourceUSDA:
		return prompts.MustGet("extraction.json", "extract-recall-usda")
	default:
		return prompts.MustGet("extraction.json", "extract-recall-general")
	}
}

// resolveRecallDate picks the recall date: rule-based extraction from the
// announcement text first, then the raw record's report date, then the
// model's answer, then the extraction time.
func resolveRecallDate(raw *types.RawRecall, modelDate string, now time.Time) time.Time {
	switch raw.Source {
	case types.SourceFDA:
		if t, ok := FDAPublishDate(raw.Payload()); ok {
			return t
		}
	case types.SourceUSDA:
		if t, ok := USDAAnnouncementDate(raw.Content); ok {
			return t
		}
	}
	if raw.ReportDate != "" {
		if t, err := time.Parse(openfda.ReportDateLayout, raw.ReportDate); err == nil {
			return t
		}
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(modelDate)); err == nil {
		return t
	}
	return now
}

// normalizeEnum lowercases a model-provided enum value, mapping empty to
// "unknown". Values outside the enum are left for validation to reject.
func normalizeEnum(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "unknown"
	}
	return value
}

func (e *Extractor) verbosef(format string, args ...any) {
	if e.opts.Verbose {
		log.Printf("[VERBOSE] "+format, args...)
	}
}
