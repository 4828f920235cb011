package llm

import "os"

// ModelTier selects which Gemini model serves a generation call.
type ModelTier string

const (
	// TierLite is a cheaper, faster model for callers that opt into it via
	// the model_tier preference.
	TierLite ModelTier = "lite"
	// TierStandard is the default generation model.
	TierStandard ModelTier = "standard"
)

// Config maps model tiers to Gemini model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the stock tier mapping. GEMINI_MODEL and
// GEMINI_MODEL_LITE override the individual models.
func DefaultConfig() *Config {
	cfg := &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Models[TierStandard] = model
	}
	if model := os.Getenv("GEMINI_MODEL_LITE"); model != "" {
		cfg.Models[TierLite] = model
	}
	return cfg
}

// GetModel returns the model name for tier, falling back to the standard
// model for tiers the config does not name.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}
