package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/app"
	"github.com/abhisek/mindcheck/internal/llm"
	"github.com/abhisek/mindcheck/internal/reflection"
	"github.com/abhisek/mindcheck/internal/report"
	"github.com/abhisek/mindcheck/internal/screens/result"
	"github.com/abhisek/mindcheck/internal/speech"
	"github.com/abhisek/mindcheck/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	predictor, err := loadPredictor(cmd)
	if err != nil {
		return err
	}
	defer predictor.Close()

	svc := buildServices(ctx, st)
	skip, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(app.Options{
		Assessor:    predictor,
		Services:    svc,
		Status:      serviceStatus(svc),
		SkipWelcome: skip,
	})
}

// buildServices wires the optional collaborators. Missing LLM or speech
// configuration disables the feature with a notice on stderr.
func buildServices(ctx context.Context, st *store.Store) result.Services {
	svc := result.Services{
		Assessments: st.AssessmentRepo(),
		Events:      st.EventRepo(),
		ReportDir:   report.DefaultDir(),
		AudioDir:    speech.DefaultDir(),
	}

	if r, err := newReflector(ctx, st.EventRepo()); err != nil {
		notice("LLM provider not configured:", err)
		notice("Reflections will be unavailable.")
	} else {
		svc.Reflector = r
	}

	synth, err := speech.New(ctx, speech.ConfigFromEnv())
	switch {
	case errors.Is(err, speech.ErrUnavailable):
		notice("Text-to-speech not configured; the speak action is disabled.")
	case err != nil:
		notice("Text-to-speech unavailable:", err)
	default:
		svc.Speech = synth
	}
	return svc
}

// newReflector builds a reflection service from the resolved LLM config.
func newReflector(ctx context.Context, events store.EventRepo) (*reflection.Service, error) {
	cfg, ok := llm.Resolve()
	if !ok {
		return nil, errors.New("no API key found")
	}
	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		return nil, err
	}
	return reflection.NewService(provider, reflection.DefaultConfig()), nil
}

func serviceStatus(svc result.Services) string {
	var parts []string
	if svc.Reflector != nil {
		parts = append(parts, "ai")
	}
	if svc.Speech != nil {
		parts = append(parts, "tts")
	}
	if len(parts) == 0 {
		return "offline  "
	}
	return strings.Join(parts, " · ") + "  "
}
