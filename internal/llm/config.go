// Package llm provides centralized LLM configuration and client abstractions.
// Callers pick a model tier; the configuration maps tiers to concrete models.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short single-field output: skill lists, keyword lists
	TierLite ModelTier = "lite"
	// TierStandard is for prose and structured output: summaries, bullets, drafts
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form writing: cover letters
	TierAdvanced ModelTier = "advanced"
)

// ParseTier validates a tier name.
func ParseTier(s string) (ModelTier, bool) {
	switch ModelTier(s) {
	case TierLite, TierStandard, TierAdvanced:
		return ModelTier(s), true
	}
	return "", false
}

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, currently the only one
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps output stable across repeated requests
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// WithModels applies every non-empty override in turn.
func (c *Config) WithModels(overrides map[ModelTier]string) *Config {
	out := c.WithModel(TierStandard, c.GetModel(TierStandard))
	for tier, model := range overrides {
		if model != "" {
			out = out.WithModel(tier, model)
		}
	}
	return out
}
