package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/mindcheck/internal/store"
)

// NewProvider builds the configured provider. Calls pass through the
// timeout, then retry, then logging, so every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	default:
		err = fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	p := WithRetry(WithLogging(base, events, cfg.LogBodies), cfg.Retry)
	if cfg.Timeout > 0 {
		p = bounded{Provider: p, timeout: cfg.Timeout}
	}
	return p, nil
}

// bounded caps the wall time of one Generate call.
type bounded struct {
	Provider
	timeout time.Duration
}

func (b bounded) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.Provider.Generate(ctx, req)
}
