// Package speech turns short texts into audio through a text-to-speech
// backend.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/mindcheck/internal/llm"
)

// ErrEmptyText is returned when there is nothing to speak.
var ErrEmptyText = errors.New("speech: empty text")

// ErrUnavailable is returned when no backend is configured.
var ErrUnavailable = errors.New("speech: no text-to-speech backend configured")

// Audio is a synthesized clip.
type Audio struct {
	Data     []byte
	MIMEType string
	// Ext is the file extension including the dot.
	Ext string
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Audio, error)
}

// Config selects and configures a backend.
type Config struct {
	// Provider is one of "openai", "gemini", "mock".
	Provider string

	OpenAI OpenAIConfig
	Gemini GeminiConfig
}

// OpenAIConfig configures the OpenAI speech endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string // Default: "tts-1"
	Voice   string // Default: "alloy"
}

// GeminiConfig configures Gemini audio generation.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-2.5-flash-preview-tts"
	Voice  string // Default: "Kore"
}

// DefaultConfig returns a Config with no provider selected.
func DefaultConfig() Config {
	return Config{
		OpenAI: OpenAIConfig{Model: "tts-1", Voice: "alloy"},
		Gemini: GeminiConfig{Model: "gemini-2.5-flash-preview-tts", Voice: "Kore"},
	}
}

// ConfigFromEnv builds a Config from MINDCHECK_SPEECH_* variables. API
// keys are shared with the LLM configuration. When no provider is named,
// the first of OpenAI then Gemini that has a key is used.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	lc := llm.ConfigFromEnv()
	if dc, ok := llm.DiscoverConfig(); ok {
		if lc.OpenAI.APIKey == "" {
			lc.OpenAI.APIKey = dc.OpenAI.APIKey
		}
		if lc.Gemini.APIKey == "" {
			lc.Gemini.APIKey = dc.Gemini.APIKey
		}
	}
	cfg.OpenAI.APIKey = lc.OpenAI.APIKey
	cfg.OpenAI.BaseURL = lc.OpenAI.BaseURL
	cfg.Gemini.APIKey = lc.Gemini.APIKey

	if v := os.Getenv("MINDCHECK_SPEECH_VOICE"); v != "" {
		cfg.OpenAI.Voice = v
		cfg.Gemini.Voice = v
	}
	if m := os.Getenv("MINDCHECK_SPEECH_MODEL"); m != "" {
		cfg.OpenAI.Model = m
		cfg.Gemini.Model = m
	}

	cfg.Provider = os.Getenv("MINDCHECK_SPEECH_PROVIDER")
	if cfg.Provider == "" {
		switch {
		case cfg.OpenAI.APIKey != "":
			cfg.Provider = "openai"
		case cfg.Gemini.APIKey != "":
			cfg.Provider = "gemini"
		}
	}
	return cfg
}

// New creates the configured synthesizer. It returns ErrUnavailable when
// no provider is selected.
func New(ctx context.Context, cfg Config) (Synthesizer, error) {
	switch cfg.Provider {
	case "":
		return nil, ErrUnavailable
	case "openai":
		return NewOpenAISynthesizer(cfg.OpenAI)
	case "gemini":
		return NewGeminiSynthesizer(ctx, cfg.Gemini)
	case "mock":
		return &MockSynthesizer{}, nil
	default:
		return nil, fmt.Errorf("unknown speech provider: %q", cfg.Provider)
	}
}

// Save writes the clip to dir as <id><ext> and returns the path.
func Save(dir, id string, a *Audio) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("speech: invalid clip id %q", id)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio directory: %w", err)
	}
	path := filepath.Join(dir, id+a.Ext)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return path, nil
}

// DefaultDir returns the directory where spoken results are saved.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "mindcheck", "audio")
	}
	return filepath.Join(os.TempDir(), "mindcheck-audio")
}

// SpeakTo synthesizes text and saves the clip to dir as <id><ext>.
func SpeakTo(ctx context.Context, s Synthesizer, dir, id, text string) (string, error) {
	a, err := s.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	return Save(dir, id, a)
}
