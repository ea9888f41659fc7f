package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
)

// ArtifactFormat identifies mindcheck model artifacts.
const ArtifactFormat = "mindcheck-model"

// SupportedMajor is the encoding schema major version this build reads.
const SupportedMajor = "v1"

// DefaultThreshold is the probability at or above which the linear
// classifier predicts the high-risk label.
const DefaultThreshold = 0.5

// Classifier backends.
const (
	BackendLinear = "linear"
	BackendONNX   = "onnx"
)

var (
	// ErrIncompatibleArtifact is returned for artifacts written for a
	// different encoding schema major version.
	ErrIncompatibleArtifact = errors.New("incompatible model artifact")

	// ErrInvalidArtifact is returned when an artifact fails validation.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)

//go:embed default_model.json
var defaultArtifact []byte

// Artifact is the serialized form of a fitted normalizer and classifier.
type Artifact struct {
	Format        string           `json:"format"`
	SchemaVersion string           `json:"schema_version"`
	ModelVersion  string           `json:"model_version"`
	FeatureNames  []string         `json:"feature_names"`
	Scaler        ScalerParams     `json:"scaler"`
	Classifier    ClassifierParams `json:"classifier"`

	// dir is the directory the artifact was loaded from; relative ONNX
	// paths resolve against it.
	dir string
}

// ScalerParams are the fitted standard-scaler statistics, one per feature.
type ScalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ClassifierParams configures the classifier backend.
type ClassifierParams struct {
	Type      string      `json:"type"`
	Coef      []float64   `json:"coef,omitempty"`
	Intercept float64     `json:"intercept,omitempty"`
	Threshold *float64    `json:"threshold,omitempty"`
	ONNX      *ONNXParams `json:"onnx,omitempty"`
}

// ONNXParams locates an ONNX export of the classifier.
type ONNXParams struct {
	Path              string `json:"path"`
	InputName         string `json:"input_name,omitempty"`
	LabelOutput       string `json:"label_output,omitempty"`
	ProbabilityOutput string `json:"probability_output,omitempty"`
}

// threshold returns the configured threshold or DefaultThreshold.
func (c ClassifierParams) threshold() float64 {
	if c.Threshold != nil {
		return *c.Threshold
	}
	return DefaultThreshold
}

// DefaultArtifact returns the artifact bundled with the binary.
func DefaultArtifact() (*Artifact, error) {
	return ParseArtifact(defaultArtifact, "")
}

// LoadArtifact reads and validates an artifact file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return ParseArtifact(data, filepath.Dir(path))
}

// ParseArtifact decodes and validates an artifact. dir is used to resolve
// relative file references and may be empty.
func ParseArtifact(data []byte, dir string) (*Artifact, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	a.dir = dir

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks the cross-field constraints the document schema cannot
// express.
func (a *Artifact) Validate() error {
	if !semver.IsValid(a.SchemaVersion) {
		return fmt.Errorf("%w: schema_version %q is not a semantic version", ErrInvalidArtifact, a.SchemaVersion)
	}
	if major := semver.Major(a.SchemaVersion); major != SupportedMajor {
		return fmt.Errorf("%w: schema %s, this build reads %s.x", ErrIncompatibleArtifact, a.SchemaVersion, SupportedMajor)
	}

	n := len(a.FeatureNames)
	seen := make(map[string]bool, n)
	for _, name := range a.FeatureNames {
		if seen[name] {
			return fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = true
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return fmt.Errorf("%w: scaler has %d means and %d scales for %d features",
			ErrInvalidArtifact, len(a.Scaler.Mean), len(a.Scaler.Scale), n)
	}

	switch a.Classifier.Type {
	case BackendLinear:
		if len(a.Classifier.Coef) != n {
			return fmt.Errorf("%w: linear classifier has %d coefficients for %d features",
				ErrInvalidArtifact, len(a.Classifier.Coef), n)
		}
	case BackendONNX:
		if a.Classifier.ONNX == nil || a.Classifier.ONNX.Path == "" {
			return fmt.Errorf("%w: onnx classifier requires onnx.path", ErrInvalidArtifact)
		}
	default:
		return fmt.Errorf("%w: unknown classifier type %q", ErrInvalidArtifact, a.Classifier.Type)
	}
	return nil
}

// ONNXPath returns the absolute or artifact-relative path of the ONNX file.
func (a *Artifact) ONNXPath() string {
	if a.Classifier.ONNX == nil {
		return ""
	}
	p := a.Classifier.ONNX.Path
	if filepath.IsAbs(p) || a.dir == "" {
		return p
	}
	return filepath.Join(a.dir, p)
}
