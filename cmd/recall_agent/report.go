package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/llm"
	"github.com/vualidon/food-recall-agent/internal/report"
	"github.com/vualidon/food-recall-agent/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a ranked markdown report from analyzed recalls",
	Long:  "Filter analyzed recalls to the lookback window, rank them by impact score, and render a markdown report with an LLM-written narrative. An empty window produces a stub report.",
	RunE:  runReport,
}

var (
	reportInputs     []string
	reportDays       int
	reportDataDir    string
	reportReportsDir string
	reportAPIKey     string
	reportVerbose    bool
)

func init() {
	reportCmd.Flags().StringSliceVarP(&reportInputs, "input", "i", nil, "Analyzed record files to report on (default: all analyzed files)")
	reportCmd.Flags().IntVar(&reportDays, "days", report.DefaultDays, "Lookback window in days")
	reportCmd.Flags().StringVar(&reportDataDir, "data-dir", "", "Data directory (default \"data\")")
	reportCmd.Flags().StringVar(&reportReportsDir, "reports-dir", "", "Reports directory (default \"reports\")")
	reportCmd.Flags().StringVar(&reportAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := reportAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	st := store.New(reportDataDir, reportReportsDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to initialize data directories: %w", err)
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	reporter := report.New(st, client, report.Options{
		Days:    reportDays,
		Verbose: reportVerbose,
	})

	reportPath, err := reporter.Run(ctx, reportInputs)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	fmt.Printf("Report written to %s\n", reportPath)
	return nil
}
