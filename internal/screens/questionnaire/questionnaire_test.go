package questionnaire

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screens/result"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/survey"
)

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func down() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyDown} }
func left() tea.KeyPressMsg  { return tea.KeyPressMsg{Code: tea.KeyLeft} }

func newTestScreen(t *testing.T) (*Screen, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	p, err := model.Load("", model.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	s := New(p, result.Services{Assessments: st.AssessmentRepo(), Events: st.EventRepo(), ReportDir: t.TempDir()})
	s.Init()
	return s, st
}

// fillIntake types the intake fields and submits the form.
func fillIntake(s *Screen, name, email string) tea.Cmd {
	s.name.SetValue(name)
	s.email.SetValue(email)
	s.Update(enter()) // name -> email
	_, cmd := s.Update(enter())
	return cmd
}

func TestIntakeWarnsWhenIncomplete(t *testing.T) {
	s, _ := newTestScreen(t)
	fillIntake(s, "Ana", "")

	assert.Equal(t, assessment.PhaseIntake, s.flow.Phase())
	assert.Equal(t, assessment.IntakeWarning, s.warning)
	assert.Contains(t, s.View(100, 40), assessment.IntakeWarning)
}

func TestFullRunReplacesWithResult(t *testing.T) {
	s, st := newTestScreen(t)
	ctx := context.Background()

	cmd := fillIntake(s, "Ana", "ana@example.com")
	require.Equal(t, assessment.PhaseQuestions, s.flow.Phase())
	require.NotNil(t, cmd)
	cmd() // appends the started event

	// Pick the second option of the first question, the first of the rest.
	s.Update(down())
	s.Update(enter())
	for s.flow.Phase() == assessment.PhaseQuestions {
		s.Update(enter())
	}
	require.Equal(t, assessment.PhaseReview, s.flow.Phase())
	ans, _ := s.flow.Response().Answer(survey.FieldGender)
	assert.Equal(t, "Female", ans)
	assert.Equal(t, survey.Count(), s.flow.Response().Len())

	_, cmd = s.Update(enter())
	require.NotNil(t, cmd)
	assert.True(t, s.submit.Busy)

	_, cmd = s.Update(cmd())
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &result.ResultScreen{}, replace.Screen)

	rec, err := st.AssessmentRepo().Get(ctx, s.flow.ID())
	require.NoError(t, err)
	assert.Equal(t, "Ana", rec.Name)

	events, err := st.EventRepo().QueryEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, store.EventAssessmentStarted, events[0].Kind)
	assert.Equal(t, store.EventAssessmentCompleted, events[1].Kind)
}

func TestBackKeepsPreviousAnswer(t *testing.T) {
	s, _ := newTestScreen(t)
	fillIntake(s, "Ana", "ana@example.com")

	s.Update(down())
	s.Update(enter()) // Gender = Female
	assert.Equal(t, 1, s.flow.Index())

	s.Update(left())
	assert.Equal(t, 0, s.flow.Index())
	assert.Equal(t, 1, s.choice.Selected, "recorded answer should be preselected")

	// Back at the first question is a no-op.
	s.Update(left())
	assert.Equal(t, 0, s.flow.Index())
}

func TestReviewBackReturnsToLastQuestion(t *testing.T) {
	s, _ := newTestScreen(t)
	fillIntake(s, "Ana", "ana@example.com")
	for s.flow.Phase() == assessment.PhaseQuestions {
		s.Update(enter())
	}

	s.Update(left())
	assert.Equal(t, assessment.PhaseQuestions, s.flow.Phase())
	assert.Equal(t, survey.Count()-1, s.flow.Index())
}

func TestSaveFailureStillShowsResult(t *testing.T) {
	s, st := newTestScreen(t)
	fillIntake(s, "Ana", "ana@example.com")
	for s.flow.Phase() == assessment.PhaseQuestions {
		s.Update(enter())
	}
	require.NoError(t, st.Close())

	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	msg := cmd()
	sub, ok := msg.(submittedMsg)
	require.True(t, ok)
	require.Error(t, sub.Err)
	require.NotNil(t, sub.Record)
	assert.Equal(t, s.flow.ID(), sub.Record.ID)

	_, cmd = s.Update(msg)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Contains(t, replace.Screen.View(100, 200), "not saved to history")
}
