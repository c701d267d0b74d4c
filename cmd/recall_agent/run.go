package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/config"
	"github.com/vualidon/food-recall-agent/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full recall reporting pipeline end-to-end",
	Long: `Orchestrates the entire recall reporting process: collect -> extract -> analyze -> report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runDays        int
	runLimit       int
	runDataDir     string
	runReportsDir  string
	runAPIKey      string
	runFDAAPIKey   string
	runDatabaseURL string
	runUseBrowser  bool
	runVerbose     bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().IntVar(&runDays, "days", 0, "Lookback window in days")
	runCommand.Flags().IntVar(&runLimit, "limit", 0, "Maximum records per source (0 = source default)")
	runCommand.Flags().StringVar(&runDataDir, "data-dir", "", "Data directory")
	runCommand.Flags().StringVar(&runReportsDir, "reports-dir", "", "Reports directory")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for the USDA recalls app (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runFDAAPIKey, "fda-api-key", "", "openFDA API key (optional, defaults to FDA_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("days") {
		cfg.Days = runDays
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = runLimit
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = runDataDir
	}
	if cmd.Flags().Changed("reports-dir") {
		cfg.ReportsDir = runReportsDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("fda-api-key") {
		cfg.FDAAPIKey = runFDAAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		DataDir:    "data",
		ReportsDir: "reports",
		Days:       7,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Environment fallbacks for credentials
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.FDAAPIKey == "" {
		cfg.FDAAPIKey = os.Getenv("FDA_API_KEY")
	}
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if cfg.SearchCX == "" {
		cfg.SearchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	opts := pipeline.RunOptions{
		DataDir:      cfg.DataDir,
		ReportsDir:   cfg.ReportsDir,
		Days:         cfg.Days,
		Limit:        cfg.Limit,
		APIKey:       cfg.APIKey,
		FDAAPIKey:    cfg.FDAAPIKey,
		SearchAPIKey: cfg.SearchAPIKey,
		SearchCX:     cfg.SearchCX,
		DatabaseURL:  cfg.DatabaseURL,
		UseBrowser:   cfg.UseBrowser,
		Verbose:      cfg.Verbose,
	}

	_, err := pipeline.RunPipeline(ctx, opts)
	return err
}
