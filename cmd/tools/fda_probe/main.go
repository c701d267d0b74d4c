// Command fda_probe is a manual integration test for the openFDA enforcement
// API. It verifies connectivity, the response envelope, and the report_date
// fields the collector's window filter depends on.
//
// Usage:
//
//	go run cmd/tools/fda_probe/main.go
//
// FDA_API_KEY is optional; without it openFDA applies the lower anonymous
// rate limit.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vualidon/food-recall-agent/internal/openfda"
)

const probeLimit = 5

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("FDA_API_KEY")
	if apiKey == "" {
		fmt.Println("FDA_API_KEY not set; probing with anonymous rate limits")
	}

	client := openfda.NewClient(apiKey)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("=== openFDA Enforcement Probe ===")
	fmt.Println()

	// Test 1: plain recency query
	fmt.Println("Test 1: Fetching most recent enforcement reports...")
	resp, err := client.Search(ctx, openfda.Query{
		Sort:  "report_date:desc",
		Limit: probeLimit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: Search: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Retrieved %d records (total available: %d, last updated: %s)\n",
		len(resp.Results), resp.Meta.Results.Total, resp.Meta.LastUpdated)

	missingDates := 0
	for _, rec := range resp.Results {
		if rec.ReportDate == "" {
			missingDates++
			continue
		}
		if _, err := rec.ReportTime(); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: unparseable report_date %q on %s\n", rec.ReportDate, rec.RecallNumber)
			os.Exit(1)
		}
	}
	if missingDates > 0 {
		fmt.Printf("  Warning: %d of %d records missing report_date\n", missingDates, len(resp.Results))
	} else {
		fmt.Println("  All records carry a parseable report_date")
	}

	// Test 2: the window query the collector issues
	fmt.Println("\nTest 2: Fetching a 7-day report_date window...")
	end := time.Now()
	start := end.AddDate(0, 0, -7)
	records, err := client.Recent(ctx, start, end, probeLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: Recent: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Retrieved %d records between %s and %s\n",
		len(records), start.Format("2006-01-02"), end.Format("2006-01-02"))

	for i, rec := range records {
		product := rec.ProductDescription
		if len(product) > 60 {
			product = product[:57] + "..."
		}
		fmt.Printf("  %d. [%s] %s - %s\n", i+1, rec.ReportDate, rec.RecallNumber, product)
	}

	fmt.Println("\nAll probes passed")
}
