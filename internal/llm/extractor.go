// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "RecallExtraction", "ImpactAnalysis")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// RecallExtractionSchema returns the extraction schema for recall announcements.
// The description carries the source-specific extraction rules; pass the rules
// loaded from the prompts package.
func RecallExtractionSchema(rules string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "RecallExtraction",
		Description: rules,
		Fields: []SchemaField{
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "The title of the recall announcement",
				Required:    true,
			},
			{
				Name:        "product_name",
				Type:        "\"string\"",
				Description: "The name of the recalled product",
				Required:    true,
			},
			{
				Name:        "brand_name",
				Type:        "\"string\"",
				Description: "The brand name of the recalled product",
				Required:    false,
			},
			{
				Name:        "recalling_firm",
				Type:        "\"string\"",
				Description: "The name of the company recalling the product",
				Required:    false,
			},
			{
				Name:        "recall_date",
				Type:        "\"string\"",
				Description: "The date when the recall was reported/published in YYYY-MM-DD format (not the original recall start date)",
				Required:    false,
			},
			{
				Name:        "timestamp",
				Type:        "\"string\"",
				Description: "The timestamp when the recall was announced in YYYY-MM-DD HH:MM:SS format",
				Required:    false,
			},
			{
				Name:        "reason",
				Type:        "\"string\"",
				Description: "The reason for the recall",
				Required:    true,
			},
			{
				Name:        "health_risk",
				Type:        "\"string\"",
				Description: "The health risk level: one of \"high\", \"medium\", \"low\", \"unknown\"",
				Required:    true,
			},
			{
				Name:        "distribution_scope",
				Type:        "\"string\"",
				Description: "The geographic scope: one of \"local\", \"regional\", \"national\", \"international\", \"unknown\"",
				Required:    true,
			},
			{
				Name:        "distribution_states",
				Type:        "[\"string\"]",
				Description: "List of US states where the product was distributed",
				Required:    false,
			},
			{
				Name:        "lot_codes",
				Type:        "[\"string\"]",
				Description: "List of lot codes or identifiers for the recalled products",
				Required:    false,
			},
		},
	}
}

// ImpactAnalysisSchema returns the extraction schema for economic impact analysis.
// The description carries the analyst guidance loaded from the prompts package.
func ImpactAnalysisSchema(guidance string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "ImpactAnalysis",
		Description: guidance,
		Fields: []SchemaField{
			{
				Name:        "impact_category",
				Type:        "\"string\"",
				Description: "The impact category: one of \"low\", \"medium\", \"high\"",
				Required:    true,
			},
			{
				Name:        "impact_score",
				Type:        "number",
				Description: "A numerical score from 0.0 to 10.0 representing the economic impact",
				Required:    true,
			},
			{
				Name:        "reasoning",
				Type:        "\"string\"",
				Description: "Explanation of the economic impact assessment",
				Required:    true,
			},
			{
				Name:        "affected_industry",
				Type:        "\"string\"",
				Description: "The specific food industry sector affected",
				Required:    true,
			},
			{
				Name:        "estimated_cost_range",
				Type:        "\"string\"",
				Description: "Estimated financial impact range (e.g., '$10K-$100K')",
				Required:    true,
			},
			{
				Name:        "market_context",
				Type:        "\"string\"",
				Description: "Market context and industry trends from external sources",
				Required:    true,
			},
		},
	}
}
