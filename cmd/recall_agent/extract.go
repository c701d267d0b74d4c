package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/extract"
	"github.com/vualidon/food-recall-agent/internal/llm"
	"github.com/vualidon/food-recall-agent/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured recall records from raw announcements",
	Long:  "Send each raw recall announcement to the LLM with a source-specific extraction prompt and write the structured record. Defaults to every file in the raw directory.",
	RunE:  runExtract,
}

var (
	extractInputs  []string
	extractDataDir string
	extractAPIKey  string
	extractVerbose bool
)

func init() {
	extractCmd.Flags().StringSliceVarP(&extractInputs, "input", "i", nil, "Raw record files to extract (default: all raw files)")
	extractCmd.Flags().StringVar(&extractDataDir, "data-dir", "", "Data directory (default \"data\")")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	st := store.New(extractDataDir, "")
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to initialize data directories: %w", err)
	}

	files := extractInputs
	if len(files) == 0 {
		var err error
		files, err = st.ListRaw()
		if err != nil {
			return fmt.Errorf("failed to list raw records: %w", err)
		}
	}
	if len(files) == 0 {
		fmt.Println("No raw records to extract. Run 'recall_agent collect' first.")
		return nil
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	extractor := extract.New(st, client, extract.Options{Verbose: extractVerbose})
	processed, err := extractor.Run(ctx, files)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Printf("Extracted %d of %d records into %s\n", len(processed), len(files), st.ProcessedDir())
	return nil
}
