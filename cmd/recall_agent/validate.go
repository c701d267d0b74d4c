package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate record files against their JSON schemas",
	Long:  "Validate extracted or analyzed recall record files against the JSON Schema documents under schemas/. Exits non-zero when any file fails validation.",
	RunE:  runValidate,
}

var (
	validateInputs []string
	validateKind   string
)

func init() {
	validateCmd.Flags().StringSliceVarP(&validateInputs, "input", "i", nil, "Record files to validate (required)")
	validateCmd.Flags().StringVar(&validateKind, "kind", "record", "Schema to validate against: record or analyzed")

	if err := validateCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	var schemaRel string
	switch validateKind {
	case "record":
		schemaRel = schemas.RecallRecordSchema
	case "analyzed":
		schemaRel = schemas.AnalyzedRecallSchema
	default:
		return fmt.Errorf("unknown kind %q: must be record or analyzed", validateKind)
	}

	schemaPath := schemas.ResolveSchemaPath(schemaRel)
	if schemaPath == "" {
		return fmt.Errorf("schema file not found: %s", schemaRel)
	}

	failures := 0
	for _, path := range validateInputs {
		err := schemas.ValidateJSON(schemaPath, path)
		if err == nil {
			_, _ = fmt.Fprintf(os.Stdout, "OK   %s\n", path)
			continue
		}

		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			failures++
			_, _ = fmt.Fprintf(os.Stdout, "FAIL %s\n", path)
			for _, fieldErr := range validationErr.Errors {
				_, _ = fmt.Fprintf(os.Stdout, "     %s: %s\n", fieldErr.Field, fieldErr.Message)
			}
			continue
		}

		// Schema load problems and unreadable files abort outright.
		return fmt.Errorf("failed to validate %s: %w", path, err)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed validation", failures, len(validateInputs))
	}

	_, _ = fmt.Fprintf(os.Stdout, "All %d files valid\n", len(validateInputs))
	return nil
}
