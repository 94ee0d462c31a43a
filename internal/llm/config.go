package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects and configures the LLM backend. Only the section matching
// Provider is used.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "openrouter" or
	// "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string // alias or model ID
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible gateways
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor-qualified, e.g. "google/gemini-2.5-flash"
	BaseURL string
	AppName string // Sent as X-Title.
	SiteURL string // Sent as HTTP-Referer when set.
}

// RetryConfig controls RetryProvider. MaxAttempts of 1 means no retries,
// which is the default: a failed call is answered with a fallback instead.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash", AppName: "mathbuddy"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// stringVars maps MATHBUDDY_* variables onto the string fields of c.
func (c *Config) stringVars() map[string]*string {
	return map[string]*string{
		"MATHBUDDY_LLM_PROVIDER":        &c.Provider,
		"MATHBUDDY_ANTHROPIC_API_KEY":   &c.Anthropic.APIKey,
		"MATHBUDDY_ANTHROPIC_MODEL":     &c.Anthropic.Model,
		"MATHBUDDY_OPENAI_API_KEY":      &c.OpenAI.APIKey,
		"MATHBUDDY_OPENAI_MODEL":        &c.OpenAI.Model,
		"MATHBUDDY_OPENAI_BASE_URL":     &c.OpenAI.BaseURL,
		"MATHBUDDY_GEMINI_API_KEY":      &c.Gemini.APIKey,
		"MATHBUDDY_GEMINI_MODEL":        &c.Gemini.Model,
		"MATHBUDDY_OPENROUTER_API_KEY":  &c.OpenRouter.APIKey,
		"MATHBUDDY_OPENROUTER_MODEL":    &c.OpenRouter.Model,
		"MATHBUDDY_OPENROUTER_SITE_URL": &c.OpenRouter.SiteURL,
	}
}

// ConfigFromEnv overlays MATHBUDDY_* variables on DefaultConfig. Malformed
// numeric values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, field := range cfg.stringVars() {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if n, err := strconv.Atoi(os.Getenv("MATHBUDDY_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("MATHBUDDY_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// vendorKeys lists the conventional key variables in discovery order.
var vendorKeys = []struct {
	env      string
	provider string
	key      func(*Config) *string
}{
	{"GOOGLE_API_KEY", "gemini", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"GEMINI_API_KEY", "gemini", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"OPENAI_API_KEY", "openai", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"ANTHROPIC_API_KEY", "anthropic", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"OPENROUTER_API_KEY", "openrouter", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// DiscoverConfig picks the first provider whose conventional API key
// variable is set. It reports false when none is.
func DiscoverConfig() (Config, bool) {
	for _, vk := range vendorKeys {
		if k := os.Getenv(vk.env); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = vk.provider
			*vk.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	keys := map[string]struct{ value, env string }{
		"anthropic":  {c.Anthropic.APIKey, "MATHBUDDY_ANTHROPIC_API_KEY"},
		"openai":     {c.OpenAI.APIKey, "MATHBUDDY_OPENAI_API_KEY"},
		"gemini":     {c.Gemini.APIKey, "MATHBUDDY_GEMINI_API_KEY"},
		"openrouter": {c.OpenRouter.APIKey, "MATHBUDDY_OPENROUTER_API_KEY"},
	}
	if k, ok := keys[c.Provider]; ok {
		if k.value == "" {
			return fmt.Errorf("%s is required for the %s provider", k.env, c.Provider)
		}
	} else if c.Provider != "mock" {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry max attempts must not be negative, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
