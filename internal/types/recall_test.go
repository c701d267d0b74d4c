//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRecall_Validation(t *testing.T) {
	tests := []struct {
		name    string
		record  RawRecall
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid FDA record",
			record: RawRecall{
				Source:      SourceFDA,
				ID:          "F-1234-2024",
				URL:         "https://api.fda.gov/food/enforcement.json",
				ReportDate:  "20240101",
				Enforcement: json.RawMessage(`{"recall_number":"F-1234-2024"}`),
				CollectedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid USDA record",
			record: RawRecall{
				Source:      SourceUSDA,
				ID:          "9f3a7c1e-0000-0000-0000-000000000000",
				URL:         "https://www.fsis.usda.gov/recalls-alerts/example",
				Content:     "Tue, 02/25/2025 - Current ...",
				CollectedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing id",
			record: RawRecall{
				Source:      SourceFDA,
				CollectedAt: time.Now(),
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "unknown source",
			record: RawRecall{
				Source:      Source("EPA"),
				ID:          "x",
				CollectedAt: time.Now(),
			},
			wantErr: true,
			errMsg:  "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRawRecall_Payload(t *testing.T) {
	enforcement := RawRecall{
		Enforcement: json.RawMessage(`{"recall_number":"F-1"}`),
		Content:     "ignored when enforcement is present",
	}
	assert.Equal(t, `{"recall_number":"F-1"}`, enforcement.Payload())

	scraped := RawRecall{Content: "FSIS announces a recall"}
	assert.Equal(t, "FSIS announces a recall", scraped.Payload())

	empty := RawRecall{}
	assert.Equal(t, "", empty.Payload())
}

func TestRecallRecord_Validation(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  RecallRecord
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid record",
			record: RecallRecord{
				ID:                "fda_20240101_F-1234-2024",
				Source:            SourceFDA,
				Title:             "Firm Recalls Product",
				ProductName:       "Frozen Meatballs",
				RecallDate:        &date,
				Reason:            "Undeclared allergen",
				HealthRisk:        RiskHigh,
				DistributionScope: ScopeNational,
			},
			wantErr: false,
		},
		{
			name: "unknown enums are valid",
			record: RecallRecord{
				ID:                "usda_20240101120000_abc",
				Source:            SourceUSDA,
				HealthRisk:        RiskUnknown,
				DistributionScope: ScopeUnknown,
			},
			wantErr: false,
		},
		{
			name: "invalid health risk",
			record: RecallRecord{
				ID:                "fda_20240101_001",
				Source:            SourceFDA,
				HealthRisk:        HealthRisk("severe"),
				DistributionScope: ScopeUnknown,
			},
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name: "invalid distribution scope",
			record: RecallRecord{
				ID:                "fda_20240101_001",
				Source:            SourceFDA,
				HealthRisk:        RiskLow,
				DistributionScope: DistributionScope("global"),
			},
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name: "missing id",
			record: RecallRecord{
				Source:            SourceFDA,
				HealthRisk:        RiskLow,
				DistributionScope: ScopeLocal,
			},
			wantErr: true,
			errMsg:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAnalyzedRecall_Validation(t *testing.T) {
	base := RecallRecord{
		ID:                "fda_20240101_001",
		Source:            SourceFDA,
		HealthRisk:        RiskHigh,
		DistributionScope: ScopeNational,
	}

	valid := AnalyzedRecall{
		RecallRecord:   base,
		EconomicImpact: ImpactHigh,
		ImpactScore:    8.5,
		AnalyzedAt:     time.Now(),
	}
	require.NoError(t, valid.Validate())

	overRange := valid
	overRange.ImpactScore = 11.0
	err := overRange.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lte")

	badCategory := valid
	badCategory.EconomicImpact = ImpactCategory("catastrophic")
	err = badCategory.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestAnalyzedRecall_Serialization(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	record := AnalyzedRecall{
		RecallRecord: RecallRecord{
			ID:                 "fda_20240101_F-1234-2024",
			Source:             SourceFDA,
			URL:                "https://api.fda.gov/food/enforcement.json",
			Title:              "Firm Recalls Frozen Meatballs",
			ProductName:        "Frozen Meatballs",
			BrandName:          "Acme",
			RecallingFirm:      "Acme Foods Inc",
			RecallDate:         &date,
			Reason:             "Undeclared allergen (milk)",
			HealthRisk:         RiskHigh,
			DistributionScope:  ScopeNational,
			DistributionStates: []string{"CA", "NY"},
			LotCodes:           []string{"LOT123"},
		},
		EconomicImpact: ImpactHigh,
		ImpactScore:    8.5,
		ImpactDetail: ImpactDetail{
			Reasoning:          "National meat recall with high health risk",
			AffectedIndustry:   "processed meat",
			EstimatedCostRange: "$1M-$10M",
			MarketContext:      "No market context available.",
		},
		AnalyzedAt: time.Now(),
	}

	jsonBytes, err := json.Marshal(record)
	require.NoError(t, err)

	// Embedded record fields must serialize flat, with impact fields alongside.
	jsonStr := string(jsonBytes)
	assert.Contains(t, jsonStr, `"id":"fda_20240101_F-1234-2024"`)
	assert.Contains(t, jsonStr, `"economic_impact":"high"`)
	assert.Contains(t, jsonStr, `"impact_score":8.5`)
	assert.Contains(t, jsonStr, `"impact_analysis"`)
	assert.NotContains(t, jsonStr, `"RecallRecord"`)

	var decoded AnalyzedRecall
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, record.ID, decoded.ID)
	assert.Equal(t, record.ImpactScore, decoded.ImpactScore)
	assert.Equal(t, record.ImpactDetail.AffectedIndustry, decoded.ImpactDetail.AffectedIndustry)
}
