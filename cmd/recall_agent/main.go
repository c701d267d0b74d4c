// Package main provides the entry point for the Food Recall Agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recall_agent",
	Short: "Food Recall Report Agent",
	Long:  "Food Recall Agent collects FDA and USDA recall announcements, extracts structured records with Gemini, estimates economic impact, and renders a ranked markdown report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
