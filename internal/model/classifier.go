package model

import (
	"context"
	"math"

	"github.com/abhisek/mindcheck/internal/features"
)

// Label is the binary risk label produced by the classifier.
type Label int

const (
	LabelLowRisk  Label = 0
	LabelHighRisk Label = 1
)

func (l Label) String() string {
	if l == LabelHighRisk {
		return "high"
	}
	return "low"
}

// Prediction is a classifier output.
type Prediction struct {
	Label Label

	// Probability is the estimated probability of LabelHighRisk, or -1
	// when the backend does not report one.
	Probability float64
}

// HasProbability reports whether the backend reported a probability.
func (p Prediction) HasProbability() bool {
	return p.Probability >= 0
}

// Classifier maps a standardized vector to a risk label.
type Classifier interface {
	Predict(ctx context.Context, scaled features.Vector) (Prediction, error)

	// Close releases backend resources.
	Close() error
}

// LinearClassifier is a logistic-regression decision function.
type LinearClassifier struct {
	coef      []float64
	intercept float64
	threshold float64
}

var _ Classifier = (*LinearClassifier)(nil)

// NewLinearClassifier creates a logistic classifier.
func NewLinearClassifier(coef []float64, intercept, threshold float64) *LinearClassifier {
	return &LinearClassifier{
		coef:      append([]float64(nil), coef...),
		intercept: intercept,
		threshold: threshold,
	}
}

// Predict computes sigmoid(w·x + b) and compares it with the threshold.
func (c *LinearClassifier) Predict(ctx context.Context, scaled features.Vector) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if len(scaled) != len(c.coef) {
		return Prediction{}, &ErrDimension{Want: len(c.coef), Got: len(scaled)}
	}
	z := c.intercept
	for i, x := range scaled {
		z += c.coef[i] * x
	}
	p := sigmoid(z)
	label := LabelLowRisk
	if p >= c.threshold {
		label = LabelHighRisk
	}
	return Prediction{Label: label, Probability: p}, nil
}

// Close is a no-op.
func (c *LinearClassifier) Close() error { return nil }

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
