package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vualidon/food-recall-agent/internal/collect"
	"github.com/vualidon/food-recall-agent/internal/openfda"
	"github.com/vualidon/food-recall-agent/internal/store"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect recall announcements from FDA and USDA",
	Long:  "Fetch recall announcements published within the lookback window from the openFDA enforcement API and the USDA FSIS recalls site, writing one raw JSON file per recall.",
	RunE:  runCollect,
}

var (
	collectDays       int
	collectLimit      int
	collectDataDir    string
	collectFDAAPIKey  string
	collectUseBrowser bool
	collectVerbose    bool
)

func init() {
	collectCmd.Flags().IntVar(&collectDays, "days", 7, "Lookback window in days")
	collectCmd.Flags().IntVar(&collectLimit, "limit", 0, "Maximum records per source (0 = source default)")
	collectCmd.Flags().StringVar(&collectDataDir, "data-dir", "", "Data directory (default \"data\")")
	collectCmd.Flags().StringVar(&collectFDAAPIKey, "fda-api-key", "", "openFDA API key (optional, defaults to FDA_API_KEY env var)")
	collectCmd.Flags().BoolVar(&collectUseBrowser, "use-browser", false, "Use headless browser for the USDA recalls app (requires Chrome)")
	collectCmd.Flags().BoolVarP(&collectVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	st := store.New(collectDataDir, "")
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to initialize data directories: %w", err)
	}

	fdaKey := collectFDAAPIKey
	if fdaKey == "" {
		fdaKey = os.Getenv("FDA_API_KEY")
	}

	collector := collect.New(st, openfda.NewClient(fdaKey), collect.Options{
		Days:       collectDays,
		Limit:      collectLimit,
		UseBrowser: collectUseBrowser,
		Verbose:    collectVerbose,
	})

	files, err := collector.Run(ctx)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	fmt.Printf("Collected %d recall announcements into %s\n", len(files), st.RawDir())
	return nil
}
