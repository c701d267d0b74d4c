// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DataDir    string `json:"data_dir,omitempty"`    // Directory holding raw/processed/analyzed records
	ReportsDir string `json:"reports_dir,omitempty"` // Directory reports are written to

	// Window
	Days  int `json:"days,omitempty"`  // Lookback window in days
	Limit int `json:"limit,omitempty"` // Max FDA enforcement reports per run

	// Credentials
	APIKey       string `json:"api_key,omitempty"`        // Gemini API key
	FDAAPIKey    string `json:"fda_api_key,omitempty"`    // openFDA API key
	SearchAPIKey string `json:"search_api_key,omitempty"` // Google Custom Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Google Custom Search engine ID
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Render the FSIS listing in headless Chrome
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
	Port       int  `json:"port,omitempty"`        // HTTP API port for serve
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("config error: 'days' must be non-negative")
	}
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.ReportsDir == "" {
		result.ReportsDir = defaults.ReportsDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.FDAAPIKey == "" {
		result.FDAAPIKey = defaults.FDAAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Days == 0 {
		result.Days = defaults.Days
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
