// Package llm wraps the Gemini API behind a provider-neutral client so the
// pipeline stages pick a model tier instead of a model name.
package llm

// ModelTier selects how much model capability a call gets.
type ModelTier string

const (
	// TierLite handles cheap classification and tagging work.
	TierLite ModelTier = "lite"
	// TierStandard handles structured field extraction from recall announcements.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles impact analysis and report writing.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the backing LLM service.
type Provider string

// ProviderGemini is the Google Gemini provider, currently the only one wired.
const ProviderGemini Provider = "gemini"

// Config maps model tiers to concrete provider model names.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the standard Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to a model name. An unmapped tier falls back
// down the ladder: standard first, then lite. Returns "" when nothing is
// configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with one tier remapped. The
// receiver is not modified.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for t, m := range c.Models {
		models[t] = m
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}
