// Package reflection asks an LLM for a short supportive note to show next
// to an assessment result.
package reflection

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/llm"
	"github.com/abhisek/mindcheck/internal/survey"
)

// Input is the context for one reflection. Name and email are never sent.
type Input struct {
	Risk    advice.Risk
	Answers *survey.Response
}

// Service generates reflection notes.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a reflection service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type output struct {
	Reflection string `json:"reflection"`
}

// Generate returns a reflection note for the input.
func (s *Service) Generate(ctx context.Context, in Input) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		Purpose:     Purpose,
		System:      systemPrompt,
		Prompt:      buildUserMessage(in),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("reflection generation: %w", err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse reflection response: %w", err)
	}
	text := strings.TrimSpace(out.Reflection)
	if text == "" {
		return "", fmt.Errorf("reflection generation: empty note")
	}
	return text, nil
}
