package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/food-recall-agent/internal/types"
)

// writeJSONFile marshals v into a temp file and returns its path.
func writeJSONFile(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleRecord() *types.RecallRecord {
	recallDate := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	return &types.RecallRecord{
		ID:                 "fda_20260810_F-1234-2026",
		Source:             types.SourceFDA,
		URL:                "https://api.fda.gov/food/enforcement.json",
		Title:              "Acme Foods Recalls Frozen Lasagna",
		ProductName:        "Frozen Beef Lasagna",
		BrandName:          "Acme",
		RecallingFirm:      "Acme Foods Inc",
		RecallDate:         &recallDate,
		Reason:             "Undeclared milk",
		HealthRisk:         types.RiskHigh,
		DistributionScope:  types.ScopeNational,
		DistributionStates: []string{"CA", "NY"},
		LotCodes:           []string{"L-100", "L-101"},
		ExtractedAt:        time.Now().UTC(),
	}
}

func TestResolveSchemaPath_FindsShippedSchemas(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(RecallRecordSchema))
	assert.NotEmpty(t, ResolveSchemaPath(AnalyzedRecallSchema))
}

func TestResolveSchemaPath_Missing(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/no_such.schema.json"))
}

func TestValidateJSON_RecallRecord(t *testing.T) {
	schemaPath := ResolveSchemaPath(RecallRecordSchema)
	require.NotEmpty(t, schemaPath)

	jsonPath := writeJSONFile(t, sampleRecord())
	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := ResolveSchemaPath(RecallRecordSchema)
	require.NotEmpty(t, schemaPath)

	jsonPath := writeJSONFile(t, map[string]any{
		"id":     "fda_20260810_F-1234-2026",
		"source": "FDA",
	})

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidEnum(t *testing.T) {
	schemaPath := ResolveSchemaPath(RecallRecordSchema)
	require.NotEmpty(t, schemaPath)

	rec := sampleRecord()
	rec.Source = "EPA"
	jsonPath := writeJSONFile(t, rec)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestValidateJSON_AnalyzedRecall(t *testing.T) {
	schemaPath := ResolveSchemaPath(AnalyzedRecallSchema)
	require.NotEmpty(t, schemaPath)

	rec := &types.AnalyzedRecall{
		RecallRecord:   *sampleRecord(),
		EconomicImpact: types.ImpactHigh,
		ImpactScore:    8.5,
		ImpactDetail: types.ImpactDetail{
			Reasoning:          "National distribution of a high-risk allergen.",
			AffectedIndustry:   "frozen foods",
			EstimatedCostRange: "$500K-$2M",
			MarketContext:      "No market context available.",
		},
		AnalyzedAt: time.Now().UTC(),
	}

	assert.NoError(t, ValidateJSON(schemaPath, writeJSONFile(t, rec)))
}

func TestValidateJSON_ImpactScoreOutOfRange(t *testing.T) {
	schemaPath := ResolveSchemaPath(AnalyzedRecallSchema)
	require.NotEmpty(t, schemaPath)

	rec := &types.AnalyzedRecall{
		RecallRecord:   *sampleRecord(),
		EconomicImpact: types.ImpactHigh,
		ImpactScore:    12.0,
		AnalyzedAt:     time.Now().UTC(),
	}

	err := ValidateJSON(schemaPath, writeJSONFile(t, rec))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeJSONFile(t, sampleRecord())

	err := ValidateJSON("testdata/nonexistent.schema.json", jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := ResolveSchemaPath(RecallRecordSchema)
	require.NotEmpty(t, schemaPath)

	err := ValidateJSON(schemaPath, "testdata/nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}}`
	err := ValidateJSONString(schema, `{"id": "usda_20260810120000_x"}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}}`
	err := ValidateJSONString(schema, `{"id": 42}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": `, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "health_risk", Message: "must be one of low, medium, high, unknown"},
			{Field: "impact_score", Message: "must be <= 10"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. health_risk")
	assert.Contains(t, msg, "2. impact_score")
}
