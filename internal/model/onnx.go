package model

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/abhisek/mindcheck/internal/features"
)

// EnvORTLibrary names the environment variable holding the path of the
// onnxruntime shared library.
const EnvORTLibrary = "MINDCHECK_ORT_LIB"

// Default tensor names used by skl2onnx exports with zipmap disabled.
const (
	defaultONNXInput       = "float_input"
	defaultONNXLabel       = "label"
	defaultONNXProbability = "probabilities"
)

var ortInitMu sync.Mutex

// initRuntime initializes the process-wide onnxruntime environment once.
func initRuntime(libPath string) error {
	ortInitMu.Lock()
	defer ortInitMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	if libPath == "" {
		libPath = os.Getenv(EnvORTLibrary)
	}
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return &ErrBackend{Backend: BackendONNX, Err: fmt.Errorf("initialize runtime: %w", err)}
	}
	return nil
}

// ONNXClassifier runs an exported classifier through onnxruntime. A
// session owns fixed input and output tensors, so runs are serialized.
type ONNXClassifier struct {
	mu      sync.Mutex
	n       int
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	label   *ort.Tensor[int64]
	proba   *ort.Tensor[float32]
}

var _ Classifier = (*ONNXClassifier)(nil)

// ONNXOptions configures the ONNX backend.
type ONNXOptions struct {
	// LibraryPath overrides MINDCHECK_ORT_LIB.
	LibraryPath string
}

// NewONNXClassifier opens the model at path for n input features.
func NewONNXClassifier(path string, n int, p ONNXParams, opts ONNXOptions) (*ONNXClassifier, error) {
	if err := initRuntime(opts.LibraryPath); err != nil {
		return nil, err
	}

	inName := orDefault(p.InputName, defaultONNXInput)
	labelName := orDefault(p.LabelOutput, defaultONNXLabel)
	probaName := orDefault(p.ProbabilityOutput, defaultONNXProbability)

	c := &ONNXClassifier{n: n}
	var err error

	c.input, err = ort.NewTensor(ort.NewShape(1, int64(n)), make([]float32, n))
	if err != nil {
		return nil, &ErrBackend{Backend: BackendONNX, Err: fmt.Errorf("input tensor: %w", err)}
	}
	c.label, err = ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		c.Close()
		return nil, &ErrBackend{Backend: BackendONNX, Err: fmt.Errorf("label tensor: %w", err)}
	}
	c.proba, err = ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		c.Close()
		return nil, &ErrBackend{Backend: BackendONNX, Err: fmt.Errorf("probability tensor: %w", err)}
	}

	c.session, err = ort.NewAdvancedSession(path,
		[]string{inName},
		[]string{labelName, probaName},
		[]ort.Value{c.input},
		[]ort.Value{c.label, c.proba},
		nil,
	)
	if err != nil {
		c.Close()
		return nil, &ErrBackend{Backend: BackendONNX, Err: fmt.Errorf("open %s: %w", path, err)}
	}
	return c, nil
}

// Predict copies the vector into the input tensor and runs the session.
func (c *ONNXClassifier) Predict(ctx context.Context, scaled features.Vector) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	if len(scaled) != c.n {
		return Prediction{}, &ErrDimension{Want: c.n, Got: len(scaled)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	in := c.input.GetData()
	for i, x := range scaled {
		in[i] = float32(x)
	}
	if err := c.session.Run(); err != nil {
		return Prediction{}, &ErrBackend{Backend: BackendONNX, Err: err}
	}

	label := LabelLowRisk
	if c.label.GetData()[0] == 1 {
		label = LabelHighRisk
	}
	prob := -1.0
	if pr := c.proba.GetData(); len(pr) == 2 {
		prob = float64(pr[1])
	}
	return Prediction{Label: label, Probability: prob}, nil
}

// Close destroys the session and its tensors.
func (c *ONNXClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	if c.session != nil {
		keep(c.session.Destroy())
		c.session = nil
	}
	if c.input != nil {
		keep(c.input.Destroy())
		c.input = nil
	}
	if c.label != nil {
		keep(c.label.Destroy())
		c.label = nil
	}
	if c.proba != nil {
		keep(c.proba.Destroy())
		c.proba = nil
	}
	return first
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
