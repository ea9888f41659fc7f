package reflection

import "github.com/abhisek/mindcheck/internal/llm"

// Schema defines the structured output for a reflection note.
var Schema = &llm.Schema{
	Name:        "reflection",
	Description: "A short supportive note about the user's questionnaire answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reflection": map[string]any{
				"type":        "string",
				"description": "2-4 warm, non-diagnostic sentences addressed to the user",
				"minLength":   1,
			},
		},
		"required":             []any{"reflection"},
		"additionalProperties": false,
	},
}
