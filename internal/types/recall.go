// Package types provides type definitions for structured data used throughout the food-recall-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// Source identifies the government source of a recall announcement.
type Source string

const (
	// SourceFDA is the U.S. Food and Drug Administration
	SourceFDA Source = "FDA"
	// SourceUSDA is the U.S. Department of Agriculture (FSIS)
	SourceUSDA Source = "USDA"
)

// HealthRisk is the severity of health risk associated with a recall.
type HealthRisk string

// Health risk levels, from the recall classification or the announcement text.
const (
	RiskLow     HealthRisk = "low"
	RiskMedium  HealthRisk = "medium"
	RiskHigh    HealthRisk = "high"
	RiskUnknown HealthRisk = "unknown"
)

// DistributionScope is the geographic reach of the recalled product.
type DistributionScope string

// Distribution scope levels.
const (
	ScopeLocal         DistributionScope = "local"
	ScopeRegional      DistributionScope = "regional"
	ScopeNational      DistributionScope = "national"
	ScopeInternational DistributionScope = "international"
	ScopeUnknown       DistributionScope = "unknown"
)

// ImpactCategory is the estimated economic impact bucket for a recall.
type ImpactCategory string

// Impact categories assigned by the analyzer.
const (
	ImpactLow     ImpactCategory = "low"
	ImpactMedium  ImpactCategory = "medium"
	ImpactHigh    ImpactCategory = "high"
	ImpactUnknown ImpactCategory = "unknown"
)

// RawRecall is an unprocessed recall announcement as captured by the collector.
// FDA records carry the openFDA enforcement payload; USDA records carry the
// scraped announcement text. Exactly one of Enforcement/Content is expected.
type RawRecall struct {
	Source      Source          `json:"source" validate:"required,oneof=FDA USDA"`
	ID          string          `json:"id" validate:"required"`
	URL         string          `json:"url"`
	ReportDate  string          `json:"report_date,omitempty"` // YYYYMMDD, openFDA report_date
	Content     string          `json:"content,omitempty"`
	Enforcement json.RawMessage `json:"enforcement,omitempty"`
	CollectedAt time.Time       `json:"collected_at"`
}

// Payload returns the text the extractor should hand to the LLM.
func (r *RawRecall) Payload() string {
	if len(r.Enforcement) > 0 {
		return string(r.Enforcement)
	}
	return r.Content
}

// RecallRecord is the structured recall information after extraction.
// ID is the raw file's stem (source + date/timestamp + unique id) and is
// stable across all later stages.
type RecallRecord struct {
	ID                 string            `json:"id" validate:"required"`
	Source             Source            `json:"source" validate:"required,oneof=FDA USDA"`
	URL                string            `json:"url"`
	Title              string            `json:"title"`
	ProductName        string            `json:"product_name"`
	BrandName          string            `json:"brand_name,omitempty"`
	RecallingFirm      string            `json:"recalling_firm,omitempty"`
	RecallDate         *time.Time        `json:"recall_date,omitempty"`
	Reason             string            `json:"reason"`
	HealthRisk         HealthRisk        `json:"health_risk" validate:"oneof=low medium high unknown"`
	DistributionScope  DistributionScope `json:"distribution_scope" validate:"oneof=local regional national international unknown"`
	DistributionStates []string          `json:"distribution_states,omitempty"`
	LotCodes           []string          `json:"lot_codes,omitempty"`
	ExtractedAt        time.Time         `json:"extracted_at"`
}

// ImpactDetail holds the analyzer's narrative assessment of a recall.
type ImpactDetail struct {
	Reasoning          string `json:"reasoning"`
	AffectedIndustry   string `json:"affected_industry"`
	EstimatedCostRange string `json:"estimated_cost_range"`
	MarketContext      string `json:"market_context"`
}

// AnalyzedRecall is a RecallRecord enriched with economic impact analysis.
type AnalyzedRecall struct {
	RecallRecord
	EconomicImpact ImpactCategory `json:"economic_impact" validate:"oneof=low medium high unknown"`
	ImpactScore    float64        `json:"impact_score" validate:"gte=0,lte=10"`
	ImpactDetail   ImpactDetail   `json:"impact_analysis"`
	AnalyzedAt     time.Time      `json:"analyzed_at"`
}

// Validate validates the RawRecall using the validator.
func (r *RawRecall) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RecallRecord using the validator.
func (r *RecallRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzedRecall using the validator.
func (r *AnalyzedRecall) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
