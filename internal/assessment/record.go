package assessment

import (
	"context"
	"fmt"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/store"
)

// Record converts a submitted flow into its stored form.
func Record(f *Flow) (*store.Assessment, error) {
	out := f.Outcome()
	if out == nil {
		return nil, ErrWrongPhase
	}
	defaulted := make([]string, 0, len(out.Result.Encoding.Defaulted))
	for _, d := range out.Result.Encoding.Defaulted {
		defaulted = append(defaulted, d.String())
	}
	return &store.Assessment{
		ID:           f.ID(),
		CreatedAt:    f.StartedAt(),
		Name:         f.Intake().Name,
		Email:        f.Intake().Email,
		Answers:      f.Response(),
		Label:        int(out.Result.Prediction.Label),
		Probability:  out.Result.Prediction.Probability,
		ModelVersion: out.Result.ModelVersion,
		Defaulted:    defaulted,
	}, nil
}

// Save stores a submitted flow and appends a completion event. events may
// be nil.
func Save(ctx context.Context, repo store.AssessmentRepo, events store.EventRepo, f *Flow) (*store.Assessment, error) {
	rec, err := Record(f)
	if err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	if events != nil {
		_ = events.AppendEvent(ctx, store.EventData{
			Kind:         store.EventAssessmentCompleted,
			AssessmentID: rec.ID,
			Detail:       fmt.Sprintf("risk=%s model=%s", advice.RiskOf(model.Label(rec.Label)), rec.ModelVersion),
		})
	}
	return rec, nil
}

// AdviceFor returns the advice shown for a stored assessment.
func AdviceFor(a *store.Assessment) advice.Advice {
	return advice.For(model.Label(a.Label))
}
