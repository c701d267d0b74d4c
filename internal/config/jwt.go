// Package config - jwt.go holds the signing configuration for API tokens.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// defaultJWTExpirationHours applies when RECALL_JWT_EXPIRATION_HOURS is unset.
const defaultJWTExpirationHours = 24

// JWTConfig holds the signing secret and token lifetime for the HTTP API.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds the token configuration from the environment. It
// reads RECALL_JWT_SECRET (required) and RECALL_JWT_EXPIRATION_HOURS
// (default 24).
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          os.Getenv("RECALL_JWT_SECRET"),
		ExpirationHours: defaultJWTExpirationHours,
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("RECALL_JWT_SECRET is required but not set")
	}

	if raw := os.Getenv("RECALL_JWT_EXPIRATION_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RECALL_JWT_EXPIRATION_HOURS: %v", err)
		}
		cfg.ExpirationHours = hours
	}

	if cfg.ExpirationHours < 1 {
		return nil, fmt.Errorf("RECALL_JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", cfg.ExpirationHours)
	}
	return cfg, nil
}
