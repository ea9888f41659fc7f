// Package assessment drives one questionnaire run from intake to result.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/survey"
)

// Phase represents the current phase of an assessment.
type Phase int

const (
	PhaseIntake    Phase = iota // Collecting name and email
	PhaseQuestions              // Answering one question at a time
	PhaseReview                 // All questions answered, awaiting submit
	PhaseResult                 // Prediction available
)

func (p Phase) String() string {
	switch p {
	case PhaseIntake:
		return "intake"
	case PhaseQuestions:
		return "questions"
	case PhaseReview:
		return "review"
	case PhaseResult:
		return "result"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	ErrWrongPhase       = errors.New("operation not valid in this phase")
	ErrUnknownOption    = errors.New("answer is not an option of the current question")
	ErrAtFirstQuestion  = errors.New("already at the first question")
	ErrAlreadySubmitted = errors.New("assessment already submitted")
)

// Assessor produces a prediction for a response. *model.Predictor
// implements it.
type Assessor interface {
	Assess(ctx context.Context, resp *survey.Response) (model.Result, error)
}

// Outcome is the result of a submitted assessment.
type Outcome struct {
	Result model.Result
	Advice advice.Advice
}

// Flow tracks one assessment. It is not safe for concurrent use.
type Flow struct {
	id        string
	intake    Intake
	phase     Phase
	index     int
	resp      *survey.Response
	outcome   *Outcome
	startedAt time.Time
}

// New starts an assessment in the intake phase.
func New() *Flow {
	return &Flow{
		id:        uuid.New().String(),
		phase:     PhaseIntake,
		resp:      survey.NewResponse(),
		startedAt: time.Now(),
	}
}

// NewFromResponse starts an assessment with a prepared response and moves
// straight to review. Unanswered questions are left to the encoder's
// defaults.
func NewFromResponse(name, email string, resp *survey.Response) (*Flow, error) {
	f := New()
	if err := f.SetIntake(name, email); err != nil {
		return nil, err
	}
	if resp != nil {
		f.resp = resp.Clone()
	}
	f.index = survey.Count()
	f.phase = PhaseReview
	return f, nil
}

func (f *Flow) ID() string                 { return f.id }
func (f *Flow) Intake() Intake             { return f.intake }
func (f *Flow) Phase() Phase               { return f.phase }
func (f *Flow) Index() int                 { return f.index }
func (f *Flow) StartedAt() time.Time       { return f.startedAt }
func (f *Flow) Response() *survey.Response { return f.resp }
func (f *Flow) Outcome() *Outcome          { return f.outcome }

// SetIntake validates the intake and moves to the first question.
func (f *Flow) SetIntake(name, email string) error {
	if f.phase != PhaseIntake {
		return ErrWrongPhase
	}
	in, err := NewIntake(name, email)
	if err != nil {
		return err
	}
	f.intake = in
	f.index = 0
	f.phase = PhaseQuestions
	return nil
}

// Current returns the question being asked.
func (f *Flow) Current() (survey.Question, bool) {
	if f.phase != PhaseQuestions {
		return survey.Question{}, false
	}
	return survey.At(f.index)
}

// Selected returns the recorded answer for the current question.
func (f *Flow) Selected() (string, bool) {
	q, ok := f.Current()
	if !ok {
		return "", false
	}
	return f.resp.Answer(q.Field)
}

// Progress returns the number of questions passed and the total.
func (f *Flow) Progress() (int, int) {
	return f.index, survey.Count()
}

// Answer records an answer for the current question and advances. After
// the last question the flow moves to review.
func (f *Flow) Answer(option string) error {
	q, ok := f.Current()
	if !ok {
		return ErrWrongPhase
	}
	if !q.HasOption(option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	if err := f.resp.SetField(q.Field, option); err != nil {
		return err
	}
	f.index++
	if f.index >= survey.Count() {
		f.index = survey.Count()
		f.phase = PhaseReview
	}
	return nil
}

// Back returns to the previous question, keeping its answer.
func (f *Flow) Back() error {
	switch f.phase {
	case PhaseReview:
		f.index = survey.Count() - 1
		f.phase = PhaseQuestions
		return nil
	case PhaseQuestions:
		if f.index == 0 {
			return ErrAtFirstQuestion
		}
		f.index--
		return nil
	}
	return ErrWrongPhase
}

// Submit runs the assessor on a frozen copy of the response and moves to
// the result. The copy replaces the response only when assessment succeeds,
// so a failed submit leaves the answers editable.
func (f *Flow) Submit(ctx context.Context, a Assessor) (*Outcome, error) {
	switch f.phase {
	case PhaseResult:
		return nil, ErrAlreadySubmitted
	case PhaseReview:
	default:
		return nil, ErrWrongPhase
	}

	snap := f.resp.Clone()
	snap.Freeze()
	res, err := a.Assess(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("assess: %w", err)
	}
	f.resp = snap
	f.outcome = &Outcome{
		Result: res,
		Advice: advice.For(res.Prediction.Label),
	}
	f.phase = PhaseResult
	return f.outcome, nil
}
