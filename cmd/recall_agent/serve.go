package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes analyzed recalls, reports, and run history read-only, plus a streaming pipeline trigger.",
	RunE:  runServe,
}

var (
	servePort       int
	serveDays       int
	serveDataDir    string
	serveReportsDir string
	serveUseBrowser bool
	serveVerbose    bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().IntVar(&serveDays, "days", 7, "Default lookback window in days")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "Data directory (default \"data\")")
	serveCmd.Flags().StringVar(&serveReportsDir, "reports-dir", "", "Reports directory (default \"reports\")")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for the USDA recalls app on triggered runs")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Read routes work without credentials; the run trigger needs the
	// Gemini key at request time.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "Warning: GEMINI_API_KEY not set; POST /run/stream will fail until it is configured\n")
	}

	cfg := server.Config{
		Port:         servePort,
		DataDir:      serveDataDir,
		ReportsDir:   serveReportsDir,
		Days:         serveDays,
		APIKey:       apiKey,
		FDAAPIKey:    os.Getenv("FDA_API_KEY"),
		SearchAPIKey: os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchCX:     os.Getenv("GOOGLE_SEARCH_CX"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		UseBrowser:   serveUseBrowser,
		Verbose:      serveVerbose,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
