package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func jsonHandler(t *testing.T, status int, body any, seen *map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func reflectionRequest() Request {
	return Request{
		Purpose:   "reflection",
		System:    "Be warm and brief.",
		Prompt:    "The person reports work interferes often.",
		Schema:    noteSchema,
		MaxTokens: 120,
	}
}

func anthropicAt(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 80, "output_tokens": 24},
	}
}

func TestAnthropicGenerate(t *testing.T) {
	var seen map[string]any
	p := anthropicAt(t, jsonHandler(t, http.StatusOK,
		anthropicMessage(`{"reflection":"Work sounds heavy right now."}`, "end_turn"), &seen))

	resp, err := p.Generate(context.Background(), reflectionRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"reflection":"Work sounds heavy right now."}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 80, OutputTokens: 24}, resp.Usage)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)
	assert.False(t, resp.Truncated)

	assert.Equal(t, "claude-haiku-4-5-20251001", seen["model"])
	msgs := seen["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestAnthropicTruncated(t *testing.T) {
	p := anthropicAt(t, jsonHandler(t, http.StatusOK,
		anthropicMessage(`{"reflection":"Work sounds`, "max_tokens"), nil))

	_, err := p.Generate(context.Background(), reflectionRequest())
	var tr *ErrTruncated
	assert.ErrorAs(t, err, &tr)
}

func TestAnthropicErrors(t *testing.T) {
	apiError := map[string]any{"type": "error", "error": map[string]any{"type": "x", "message": "nope"}}

	_, err := anthropicAt(t, jsonHandler(t, http.StatusTooManyRequests, apiError, nil)).
		Generate(context.Background(), reflectionRequest())
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = anthropicAt(t, jsonHandler(t, http.StatusInternalServerError, apiError, nil)).
		Generate(context.Background(), reflectionRequest())
	var un *ErrProviderUnavailable
	assert.ErrorAs(t, err, &un)
}

func TestNewProvidersNeedKeys(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
	_, err = NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)
	_, err = NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}

func openaiAt(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func openaiCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1760000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 60, "completion_tokens": 20, "total_tokens": 80},
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var seen map[string]any
	p := openaiAt(t, jsonHandler(t, http.StatusOK,
		openaiCompletion(`{"reflection":"You are not alone in this."}`, "stop"), &seen))

	resp, err := p.Generate(context.Background(), reflectionRequest())
	require.NoError(t, err)
	assert.Equal(t, Usage{InputTokens: 60, OutputTokens: 20}, resp.Usage)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)

	assert.Equal(t, "gpt-4o-mini", seen["model"])
	msgs := seen["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "The person reports work interferes often.", msgs[1].(map[string]any)["content"])

	format := seen["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "note", format["json_schema"].(map[string]any)["name"])
}

func TestOpenAIRejectsOffSchema(t *testing.T) {
	p := openaiAt(t, jsonHandler(t, http.StatusOK, openaiCompletion(`{"mood":"fine"}`, "stop"), nil))

	_, err := p.Generate(context.Background(), reflectionRequest())
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestOpenAIServerError(t *testing.T) {
	p := openaiAt(t, jsonHandler(t, http.StatusServiceUnavailable,
		map[string]any{"error": map[string]any{"message": "overloaded", "type": "server_error"}}, nil))

	_, err := p.Generate(context.Background(), reflectionRequest())
	var un *ErrProviderUnavailable
	assert.ErrorAs(t, err, &un)
}

func TestGeminiGenerate(t *testing.T) {
	var seen map[string]any
	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": `{"reflection":"Thank you for checking in."}`}}},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 40, "candidatesTokenCount": 12, "totalTokenCount": 52},
		"modelVersion":  "gemini-2.5-flash",
	}, &seen))
	t.Cleanup(srv.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", Model: "gemini-flash", BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), reflectionRequest())
	require.NoError(t, err)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 12}, resp.Usage)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Contains(t, seen, "generationConfig")
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reflection": map[string]any{"type": "string", "description": "note"},
			"tone":       map[string]any{"type": "string", "enum": []any{"warm", "neutral"}},
			"tags":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"reflection"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 3)
	assert.Equal(t, "note", s.Properties["reflection"].Description)
	assert.Equal(t, []string{"warm", "neutral"}, s.Properties["tone"].Enum)
	assert.Equal(t, genai.TypeArray, s.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["tags"].Items.Type)
	assert.Equal(t, []string{"reflection"}, s.Required)
}
