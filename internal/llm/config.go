package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration

	// LogBodies stores prompts and replies in the event log. Prompts
	// contain questionnaire answers, so this is off unless asked for.
	LogBodies bool
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls exponential backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:  ProviderAnthropic,
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays MINDCHECK_* variables on the defaults. Empty
// variables are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for key, dst := range map[string]*string{
		"MINDCHECK_LLM_PROVIDER":      &cfg.Provider,
		"MINDCHECK_ANTHROPIC_API_KEY": &cfg.Anthropic.APIKey,
		"MINDCHECK_ANTHROPIC_MODEL":   &cfg.Anthropic.Model,
		"MINDCHECK_OPENAI_API_KEY":    &cfg.OpenAI.APIKey,
		"MINDCHECK_OPENAI_MODEL":      &cfg.OpenAI.Model,
		"MINDCHECK_OPENAI_BASE_URL":   &cfg.OpenAI.BaseURL,
		"MINDCHECK_GEMINI_API_KEY":    &cfg.Gemini.APIKey,
		"MINDCHECK_GEMINI_MODEL":      &cfg.Gemini.Model,
	} {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if d, err := time.ParseDuration(os.Getenv("MINDCHECK_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	cfg.LogBodies, _ = strconv.ParseBool(os.Getenv("MINDCHECK_LLM_LOG_BODIES"))
	return cfg
}

// DiscoverConfig looks for the vendors' own key variables, Gemini first,
// then OpenAI, then Anthropic.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, c := range []struct {
		env, provider string
		dst           *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
	} {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.dst = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve prefers a valid MINDCHECK_* configuration and falls back to
// discovery. ok is false when nothing is usable.
func Resolve() (cfg Config, ok bool) {
	cfg = ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg, true
	}
	logBodies := cfg.LogBodies
	cfg, ok = DiscoverConfig()
	cfg.LogBodies = logBodies
	return cfg, ok
}

// Validate reports a missing key for the selected provider.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "MINDCHECK_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "MINDCHECK_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "MINDCHECK_GEMINI_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s provider needs %s", c.Provider, env)
	}
	return nil
}
