package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vualidon/food-recall-agent/internal/schemas"
)

var schemaFiles = []string{
	"recall_record.schema.json",
	"analyzed_recall.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			// Check for required JSON Schema fields
			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]

			assert.True(t, hasType && hasSchema && hasProps,
				"schema should declare type, $schema, and properties")
		})
	}
}

func TestSchemaFiles_AcceptKnownGoodDocuments(t *testing.T) {
	record := `{
		"id": "fda_20260810_F-1234-2026",
		"source": "FDA",
		"url": "https://api.fda.gov/food/enforcement.json",
		"title": "Acme Foods Recalls Frozen Lasagna",
		"product_name": "Frozen Beef Lasagna",
		"reason": "Undeclared milk",
		"health_risk": "high",
		"distribution_scope": "national",
		"distribution_states": ["CA", "NY"],
		"extracted_at": "2026-08-17T12:00:00Z"
	}`

	schemaData, err := os.ReadFile("recall_record.schema.json")
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateJSONString(string(schemaData), record))

	analyzed := `{
		"id": "fda_20260810_F-1234-2026",
		"source": "FDA",
		"health_risk": "high",
		"distribution_scope": "national",
		"extracted_at": "2026-08-17T12:00:00Z",
		"economic_impact": "high",
		"impact_score": 8.5,
		"impact_analysis": {
			"reasoning": "National distribution of a high-risk allergen.",
			"affected_industry": "frozen foods",
			"estimated_cost_range": "$500K-$2M",
			"market_context": "No market context available."
		},
		"analyzed_at": "2026-08-17T12:05:00Z"
	}`

	schemaData, err = os.ReadFile("analyzed_recall.schema.json")
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateJSONString(string(schemaData), analyzed))
}

func TestSchemaFiles_RejectUnknownFields(t *testing.T) {
	doc := `{
		"id": "fda_20260810_F-1234-2026",
		"source": "FDA",
		"health_risk": "high",
		"distribution_scope": "national",
		"extracted_at": "2026-08-17T12:00:00Z",
		"press_contact": "not a recall record field"
	}`

	schemaData, err := os.ReadFile("recall_record.schema.json")
	require.NoError(t, err)
	assert.Error(t, schemas.ValidateJSONString(string(schemaData), doc))
}
