package model

import (
	"fmt"

	"github.com/abhisek/mindcheck/internal/features"
)

// Scaler standardizes vectors with fitted per-column mean and scale.
type Scaler struct {
	columns []string
	mean    []float64
	scale   []float64
}

// NewScaler builds a scaler from fitted parameters. A zero scale marks a
// constant training column and is treated as 1, matching scikit-learn.
func NewScaler(columns []string, p ScalerParams) (*Scaler, error) {
	n := len(columns)
	if len(p.Mean) != n || len(p.Scale) != n {
		return nil, fmt.Errorf("%w: scaler parameters do not match %d columns", ErrInvalidArtifact, n)
	}
	scale := make([]float64, n)
	for i, s := range p.Scale {
		if s == 0 {
			s = 1
		}
		scale[i] = s
	}
	return &Scaler{
		columns: append([]string(nil), columns...),
		mean:    append([]float64(nil), p.Mean...),
		scale:   scale,
	}, nil
}

// Columns returns the feature names the scaler was fitted on.
func (s *Scaler) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Transform returns (x - mean) / scale for each column.
func (s *Scaler) Transform(v features.Vector) (features.Vector, error) {
	if len(v) != len(s.mean) {
		return nil, fmt.Errorf("scaler expects %d values, got %d", len(s.mean), len(v))
	}
	out := make(features.Vector, len(v))
	for i, x := range v {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
