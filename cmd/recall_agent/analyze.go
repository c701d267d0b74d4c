package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/analyze"
	"github.com/vualidon/food-recall-agent/internal/llm"
	"github.com/vualidon/food-recall-agent/internal/research"
	"github.com/vualidon/food-recall-agent/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Estimate the economic impact of extracted recalls",
	Long:  "Score each extracted recall record for economic impact with the LLM, optionally enriched with market context from the Google Custom Search API. Defaults to every file in the processed directory.",
	RunE:  runAnalyze,
}

var (
	analyzeInputs  []string
	analyzeDataDir string
	analyzeAPIKey  string
	analyzeVerbose bool
)

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeInputs, "input", "i", nil, "Extracted record files to analyze (default: all processed files)")
	analyzeCmd.Flags().StringVar(&analyzeDataDir, "data-dir", "", "Data directory (default \"data\")")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	st := store.New(analyzeDataDir, "")
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to initialize data directories: %w", err)
	}

	files := analyzeInputs
	if len(files) == 0 {
		var err error
		files, err = st.ListProcessed()
		if err != nil {
			return fmt.Errorf("failed to list processed records: %w", err)
		}
	}
	if len(files) == 0 {
		fmt.Println("No extracted records to analyze. Run 'recall_agent extract' first.")
		return nil
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	// Market research is optional; absent search keys degrade to a fixed
	// no-context placeholder.
	var researcher analyze.MarketResearcher
	searchKey := os.Getenv("GOOGLE_SEARCH_API_KEY")
	searchCX := os.Getenv("GOOGLE_SEARCH_CX")
	if searchKey != "" && searchCX != "" {
		r, err := research.NewResearcher(ctx, searchKey, searchCX)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize researcher: %v\n", err)
		} else {
			researcher = r
		}
	} else if analyzeVerbose {
		fmt.Printf("[VERBOSE] Google Search API keys not set; skipping market research\n")
	}

	analyzer := analyze.New(st, client, researcher, analyze.Options{Verbose: analyzeVerbose})
	analyzed, err := analyzer.Run(ctx, files)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("Analyzed %d of %d records into %s\n", len(analyzed), len(files), st.AnalyzedDir())
	return nil
}
