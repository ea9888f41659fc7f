package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const artifactSchemaURL = "schema://mindcheck-model.json"

// artifactSchema describes the document shape. Length agreement between
// arrays is checked in Artifact.Validate.
var artifactSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"format":         map[string]any{"const": ArtifactFormat},
		"schema_version": map[string]any{"type": "string", "pattern": "^v[0-9]+"},
		"model_version":  map[string]any{"type": "string", "minLength": 1},
		"feature_names": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"scaler": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"mean":  map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
				"scale": map[string]any{"type": "array", "items": map[string]any{"type": "number", "minimum": 0}},
			},
			"required": []any{"mean", "scale"},
		},
		"classifier": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":      map[string]any{"enum": []any{BackendLinear, BackendONNX}},
				"coef":      map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
				"intercept": map[string]any{"type": "number"},
				"threshold": map[string]any{"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1},
				"onnx": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"path":               map[string]any{"type": "string", "minLength": 1},
						"input_name":         map[string]any{"type": "string"},
						"label_output":       map[string]any{"type": "string"},
						"probability_output": map[string]any{"type": "string"},
					},
					"required": []any{"path"},
				},
			},
			"required": []any{"type"},
			"allOf": []any{
				map[string]any{
					"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"const": BackendLinear}}},
					"then": map[string]any{"required": []any{"coef"}},
				},
				map[string]any{
					"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"const": BackendONNX}}},
					"then": map[string]any{"required": []any{"onnx"}},
				},
			},
		},
	},
	"required": []any{"format", "schema_version", "model_version", "feature_names", "scaler", "classifier"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledArtifactSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// Round-trip through JSON so numbers have the representation the
		// compiler expects.
		raw, err := json.Marshal(artifactSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal artifact schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse artifact schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(artifactSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(artifactSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks raw artifact JSON against the artifact schema.
func validateDocument(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidArtifact, err)
	}
	sch, err := compiledArtifactSchema()
	if err != nil {
		return fmt.Errorf("compile artifact schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return nil
}
