// Package llm sends single-turn structured generation requests to a hosted
// model and records every call in the event log.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Provider generates one structured completion per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	// Purpose labels the call in the event log, e.g. "reflection".
	Purpose string

	System string
	Prompt string

	// Schema constrains the output. A nil schema accepts any text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a validated completion.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// Truncated is set when the model stopped at the token limit.
	Truncated bool
}

// Usage counts tokens for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// completion is what a backend hands back before validation.
type completion struct {
	text      string
	usage     Usage
	model     string
	truncated bool
}

// finish validates a backend completion against the request schema. A
// truncated completion that fails validation reports ErrTruncated so the
// caller can raise MaxTokens instead of retrying.
func finish(req Request, c completion, fallbackModel string, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	content := json.RawMessage(c.text)
	if verr := req.Schema.Validate(content); verr != nil {
		if c.truncated {
			return nil, &ErrTruncated{Content: content, MaxTokens: req.MaxTokens}
		}
		return nil, verr
	}
	model := c.model
	if model == "" {
		model = fallbackModel
	}
	return &Response{
		Content:   content,
		Usage:     c.usage,
		Model:     model,
		Truncated: c.truncated,
	}, nil
}

// ErrRateLimit is returned when the provider throttles the caller.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers server errors and transport failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "provider unavailable"
	}
	return fmt.Sprintf("provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse is returned when the output is not valid JSON or
// does not match the request schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrTruncated is returned when the model ran out of tokens before
// producing a complete document.
type ErrTruncated struct {
	Content   json.RawMessage
	MaxTokens int
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("response truncated at %d tokens", e.MaxTokens)
}

// classify maps an HTTP status from a provider SDK error.
func classify(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// IsTransient reports whether err is worth another attempt.
func IsTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var tr *ErrTruncated
	return !errors.As(err, &tr)
}

// resolveModel maps a friendly name to a model ID. Unknown names pass
// through so full IDs can be configured directly.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
