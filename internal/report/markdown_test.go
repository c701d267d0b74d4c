package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/food-recall-agent/internal/types"
)

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no special characters", "Frozen Diced Chicken", "Frozen Diced Chicken"},
		{"pipe", "Spicy|Hot Snack Mix", `Spicy\|Hot Snack Mix`},
		{"newlines flattened", "line one\nline two", "line one line two"},
		{"carriage return flattened", "line one\r\nline two", "line one  line two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeCell(tt.input))
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	recallDate := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	recalls := []*types.AnalyzedRecall{
		{
			RecallRecord: types.RecallRecord{
				ID:                 "fda_20240103_F-0123-2024",
				Source:             types.SourceFDA,
				Title:              "Acme Recalls Snack Mix",
				ProductName:        "Spicy|Hot Snack Mix",
				BrandName:          "Acme",
				RecallingFirm:      "Acme Snacks LLC",
				RecallDate:         &recallDate,
				Reason:             "Undeclared peanuts",
				HealthRisk:         types.RiskHigh,
				DistributionScope:  types.ScopeNational,
				DistributionStates: []string{"CA", "NY"},
			},
			EconomicImpact: types.ImpactHigh,
			ImpactScore:    8.5,
			ImpactDetail: types.ImpactDetail{
				Reasoning:          "National distribution of an allergen recall.",
				AffectedIndustry:   "Snack foods",
				EstimatedCostRange: "$500K-$2M",
			},
		},
		{
			RecallRecord: types.RecallRecord{
				ID:                "usda_20240104120000_c3",
				Source:            types.SourceUSDA,
				Title:             "Undated Beef Recall",
				ProductName:       "Ground Beef",
				HealthRisk:        types.RiskMedium,
				DistributionScope: types.ScopeLocal,
			},
			EconomicImpact: types.ImpactMedium,
			ImpactScore:    4.0,
		},
	}

	content, err := RenderMarkdown(start, end, recalls)
	require.NoError(t, err)

	assert.Contains(t, content, "# Food Recall Report: 2024-01-01 to 2024-01-08")
	assert.Contains(t, content, "There were 2 food recalls during this period")

	// Table cells escape pipes; ranks follow the given order.
	assert.Contains(t, content, `| 1 | Spicy\|Hot Snack Mix | Acme | Acme Snacks LLC | high | high | 8.5 |`)
	assert.Contains(t, content, "| 2 | Ground Beef |")

	assert.Contains(t, content, "### 1. Acme Recalls Snack Mix")
	assert.Contains(t, content, "- **Recall Date**: 2024-01-03")
	assert.Contains(t, content, "- **Distribution**: national (CA, NY)")
	assert.Contains(t, content, "- **Estimated Cost**: $500K-$2M")

	assert.Contains(t, content, "### 2. Undated Beef Recall")
	assert.Contains(t, content, "- **Recall Date**: unknown")
}

func TestRenderMarkdown_SingleRecallGrammar(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	recalls := []*types.AnalyzedRecall{
		{
			RecallRecord: types.RecallRecord{
				ID:          "fda_20240103_F-0123-2024",
				Source:      types.SourceFDA,
				ProductName: "Frozen Peas",
			},
			EconomicImpact: types.ImpactLow,
			ImpactScore:    2.0,
		},
	}

	content, err := RenderMarkdown(start, end, recalls)
	require.NoError(t, err)
	assert.Contains(t, content, "There was 1 food recall during this period")

	// A recall without a title falls back to the product name.
	assert.Contains(t, content, "### 1. Frozen Peas")
}
