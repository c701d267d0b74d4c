package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveJWTEnv snapshots the JWT env vars and returns a restore func.
func saveJWTEnv() func() {
	originalSecret := os.Getenv("RECALL_JWT_SECRET")
	originalExpiration := os.Getenv("RECALL_JWT_EXPIRATION_HOURS")
	return func() {
		if originalSecret != "" {
			os.Setenv("RECALL_JWT_SECRET", originalSecret)
		} else {
			os.Unsetenv("RECALL_JWT_SECRET")
		}
		if originalExpiration != "" {
			os.Setenv("RECALL_JWT_EXPIRATION_HOURS", originalExpiration)
		} else {
			os.Unsetenv("RECALL_JWT_EXPIRATION_HOURS")
		}
	}
}

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	defer saveJWTEnv()()

	os.Setenv("RECALL_JWT_SECRET", "test-secret-key")
	os.Unsetenv("RECALL_JWT_EXPIRATION_HOURS")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
}

func TestNewJWTConfig_CustomExpiration(t *testing.T) {
	defer saveJWTEnv()()

	os.Setenv("RECALL_JWT_SECRET", "test-secret-key")
	os.Setenv("RECALL_JWT_EXPIRATION_HOURS", "72")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.ExpirationHours)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	defer saveJWTEnv()()

	os.Unsetenv("RECALL_JWT_SECRET")

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "RECALL_JWT_SECRET is required")
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	defer saveJWTEnv()()

	os.Setenv("RECALL_JWT_SECRET", "test-secret-key")
	os.Setenv("RECALL_JWT_EXPIRATION_HOURS", "not-a-number")

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid RECALL_JWT_EXPIRATION_HOURS")
}

func TestNewJWTConfig_ZeroExpiration(t *testing.T) {
	defer saveJWTEnv()()

	os.Setenv("RECALL_JWT_SECRET", "test-secret-key")
	os.Setenv("RECALL_JWT_EXPIRATION_HOURS", "0")

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "at least 1 hour")
}
