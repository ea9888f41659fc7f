package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/store"
)

// FromAssessment builds the report content for a stored assessment.
func FromAssessment(a *store.Assessment) Report {
	adv := advice.For(model.Label(a.Label))
	return Report{
		Name:            a.Name,
		Email:           a.Email,
		Prediction:      adv.Prediction,
		Recommendations: adv.Recommendations,
		Reflection:      a.Reflection,
		CreatedAt:       a.CreatedAt,
	}
}

// Export renders the report for a into dir and returns the file path.
func Export(dir string, a *store.Assessment) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(dir, FileName(a.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := Render(f, FromAssessment(a)); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

// EnvReportDir names the environment variable overriding where the
// terminal UI writes reports.
const EnvReportDir = "MINDCHECK_REPORT_DIR"

// DefaultDir returns $MINDCHECK_REPORT_DIR, or the working directory.
func DefaultDir() string {
	if d := os.Getenv(EnvReportDir); d != "" {
		return d
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
