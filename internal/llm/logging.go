package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/mindcheck/internal/store"
)

// logged appends an LLM request event for every call.
type logged struct {
	inner  Provider
	repo   store.EventRepo
	bodies bool
}

// WithLogging records each call of p in repo. Prompt and reply text is
// replaced by its size unless bodies is set. A nil repo returns p as is.
func WithLogging(p Provider, repo store.EventRepo, bodies bool) Provider {
	if repo == nil {
		return p
	}
	return &logged{inner: p, repo: repo, bodies: bodies}
}

func (l *logged) ModelID() string { return l.inner.ModelID() }

func (l *logged) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     req.Purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: l.describeRequest(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = l.redact(string(resp.Content))
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// The call already happened; a logging failure only warns.
	if lerr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); lerr != nil {
		fmt.Fprintf(os.Stderr, "warning: llm event not recorded: %v\n", lerr)
	}
	return resp, err
}

func (l *logged) describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[prompt]\n%s\n", l.redact(req.Prompt))
	if req.Schema != nil {
		fmt.Fprintf(&b, "\n[schema] %s\n", req.Schema.Name)
	}
	return b.String()
}

func (l *logged) redact(s string) string {
	if l.bodies {
		return s
	}
	return fmt.Sprintf("(%d bytes withheld)", len(s))
}

func providerName(p Provider) string {
	switch p.(type) {
	case *AnthropicProvider:
		return ProviderAnthropic
	case *OpenAIProvider:
		return ProviderOpenAI
	case *GeminiProvider:
		return ProviderGemini
	case *MockProvider:
		return ProviderMock
	}
	return "unknown"
}
