package model

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/mindcheck/internal/features"
	"github.com/abhisek/mindcheck/internal/survey"
)

// EnvModelPath names the environment variable overriding the artifact path.
const EnvModelPath = "MINDCHECK_MODEL"

// Result is the outcome of assessing one response.
type Result struct {
	Encoding     features.Encoding
	Scaled       features.Vector
	Prediction   Prediction
	ModelVersion string
}

// Predictor bundles the encoding schema, scaler and classifier of one
// artifact. It is immutable after construction and safe for concurrent use.
type Predictor struct {
	schema       *features.Schema
	scaler       *Scaler
	classifier   Classifier
	modelVersion string
}

// Options configures predictor construction.
type Options struct {
	ONNX ONNXOptions

	// Classifier replaces the artifact's classifier. Used by tests.
	Classifier Classifier
}

// NewPredictor builds a predictor from a validated artifact.
func NewPredictor(a *Artifact, opts Options) (*Predictor, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	scaler, err := NewScaler(a.FeatureNames, a.Scaler)
	if err != nil {
		return nil, err
	}

	clf := opts.Classifier
	if clf == nil {
		switch a.Classifier.Type {
		case BackendLinear:
			clf = NewLinearClassifier(a.Classifier.Coef, a.Classifier.Intercept, a.Classifier.threshold())
		case BackendONNX:
			clf, err = NewONNXClassifier(a.ONNXPath(), len(a.FeatureNames), *a.Classifier.ONNX, opts.ONNX)
			if err != nil {
				return nil, err
			}
		}
	}

	return &Predictor{
		schema:       features.DefaultSchema().WithExpectedColumns(a.FeatureNames),
		scaler:       scaler,
		classifier:   clf,
		modelVersion: a.ModelVersion,
	}, nil
}

// Load builds a predictor from the artifact at path, or from the embedded
// default artifact when path is empty.
func Load(path string, opts Options) (*Predictor, error) {
	var (
		a   *Artifact
		err error
	)
	if path == "" {
		a, err = DefaultArtifact()
	} else {
		a, err = LoadArtifact(path)
	}
	if err != nil {
		return nil, err
	}
	return NewPredictor(a, opts)
}

// ResolvePath returns the artifact path from the flag value, falling back
// to MINDCHECK_MODEL. An empty result selects the embedded artifact.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvModelPath)
}

// Schema returns the encoding schema aligned to the artifact's features.
func (p *Predictor) Schema() *features.Schema { return p.schema }

// ModelVersion returns the artifact's model version.
func (p *Predictor) ModelVersion() string { return p.modelVersion }

// Assess encodes, scales and classifies a response.
func (p *Predictor) Assess(ctx context.Context, resp *survey.Response) (Result, error) {
	enc := features.Encode(resp, p.schema)
	scaled, err := p.scaler.Transform(enc.Values)
	if err != nil {
		return Result{}, fmt.Errorf("scale features: %w", err)
	}
	pred, err := p.classifier.Predict(ctx, scaled)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	return Result{
		Encoding:     enc,
		Scaled:       scaled,
		Prediction:   pred,
		ModelVersion: p.modelVersion,
	}, nil
}

// Close releases the classifier backend.
func (p *Predictor) Close() error {
	return p.classifier.Close()
}
