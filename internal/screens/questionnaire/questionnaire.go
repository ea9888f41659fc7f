// Package questionnaire is the screen that takes the user from intake
// through every question to submission.
package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/screens/result"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/survey"
	"github.com/abhisek/mindcheck/internal/ui/components"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// submittedMsg carries the assessment after prediction. Record is set and
// Err non-nil when prediction succeeded but saving failed.
type submittedMsg struct {
	Record *store.Assessment
	Err    error
}

// Screen runs one assessment.
type Screen struct {
	flow     *assessment.Flow
	assessor assessment.Assessor
	svc      result.Services

	name   components.TextInput
	email  components.TextInput
	choice components.Choice
	submit components.Button

	warning string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a questionnaire screen. svc.Assessments is required.
func New(a assessment.Assessor, svc result.Services) *Screen {
	s := &Screen{
		flow:     assessment.New(),
		assessor: a,
		svc:      svc,
		name:     components.NewTextInput("Name", "Enter your name", 200),
		email:    components.NewTextInput("Email", "Enter your email", 254),
	}
	s.submit = components.NewButton("Submit & Predict", true, s.submitCmd)
	s.submit.BusyLabel = "Predicting..."
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *Screen) Title() string {
	switch s.flow.Phase() {
	case assessment.PhaseIntake:
		return "Welcome"
	case assessment.PhaseReview:
		return "Review"
	}
	return "Assessment"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.flow.Phase() {
	case assessment.PhaseIntake:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Cancel"},
		}
	case assessment.PhaseQuestions:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Next"},
			{Key: "←", Description: "Previous"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit & Predict"},
		{Key: "←", Description: "Change answers"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(submittedMsg); ok {
		return s.handleSubmitted(m)
	}

	switch s.flow.Phase() {
	case assessment.PhaseIntake:
		return s.updateIntake(msg)
	case assessment.PhaseQuestions:
		return s.updateQuestion(msg)
	case assessment.PhaseReview:
		return s.updateReview(msg)
	}
	return s, nil
}

func (s *Screen) updateIntake(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.toggleField()
		case "enter":
			if s.name.Focused() {
				return s, s.toggleField()
			}
			return s, s.startQuestions()
		}
	}

	var cmd tea.Cmd
	if s.name.Focused() {
		s.name, cmd = s.name.Update(msg)
	} else {
		s.email, cmd = s.email.Update(msg)
	}
	return s, cmd
}

func (s *Screen) toggleField() tea.Cmd {
	if s.name.Focused() {
		s.name.Blur()
		return s.email.Focus()
	}
	s.email.Blur()
	return s.name.Focus()
}

func (s *Screen) startQuestions() tea.Cmd {
	if err := s.flow.SetIntake(s.name.Value(), s.email.Value()); err != nil {
		s.warning = assessment.Warning(err)
		return nil
	}
	s.warning = ""
	s.name.Blur()
	s.email.Blur()
	s.loadChoice()

	events, id := s.svc.Events, s.flow.ID()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_ = events.AppendEvent(context.Background(), store.EventData{
			Kind:         store.EventAssessmentStarted,
			AssessmentID: id,
		})
		return nil
	}
}

// loadChoice shows the current question with its recorded answer, if
// any, preselected.
func (s *Screen) loadChoice() {
	q, ok := s.flow.Current()
	if !ok {
		return
	}
	pre := -1
	if ans, ok := s.flow.Selected(); ok {
		pre = q.OptionIndex(ans)
	}
	s.choice = components.NewChoice(q.Text, q.Options, pre)
}

func (s *Screen) updateQuestion(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "left", "backspace", "h":
			if err := s.flow.Back(); err == nil {
				s.loadChoice()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if opt, ok := s.choice.Chosen(); ok {
		if err := s.flow.Answer(opt); err != nil {
			s.warning = err.Error()
			s.choice.Reset()
			return s, cmd
		}
		s.warning = ""
		s.loadChoice()
	}
	return s, cmd
}

func (s *Screen) updateReview(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && !s.submit.Busy {
		switch kmsg.String() {
		case "left", "backspace", "h":
			if err := s.flow.Back(); err == nil {
				s.loadChoice()
			}
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.submit, cmd = s.submit.Update(msg)
	return s, cmd
}

func (s *Screen) submitCmd() tea.Cmd {
	s.submit.Busy = true
	s.warning = ""
	flow, a, svc := s.flow, s.assessor, s.svc
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := flow.Submit(ctx, a); err != nil {
			return submittedMsg{Err: err}
		}
		rec, err := assessment.Save(ctx, svc.Assessments, svc.Events, flow)
		if err != nil {
			// The prediction stands; show it unsaved.
			rec, _ = assessment.Record(flow)
		}
		return submittedMsg{Record: rec, Err: err}
	}
}

func (s *Screen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	s.submit.Busy = false
	if msg.Record == nil {
		s.warning = fmt.Sprintf("An error occurred: %v", msg.Err)
		if errors.Is(msg.Err, assessment.ErrAlreadySubmitted) {
			s.submit.Active = false
		}
		return s, nil
	}
	next := result.New(msg.Record, s.svc)
	if msg.Err != nil {
		next.Warn(fmt.Sprintf("This result was not saved to history: %v", msg.Err))
	}
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.flow.Phase() {
	case assessment.PhaseIntake:
		body = s.viewIntake(cw)
	case assessment.PhaseQuestions:
		body = s.viewQuestion(cw)
	default:
		body = s.viewReview(cw)
	}
	if s.warning != "" {
		body += "\n\n" + lipgloss.NewStyle().Width(cw).Render(theme.Warning.Render(s.warning))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *Screen) viewIntake(cw int) string {
	intro := theme.Title.Width(cw).Render("Mental Health Assessment") + "\n\n" +
		lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(
			"Answer a few questions about you and your workplace. "+
				"This is a screening aid, not a diagnosis.")
	return intro + "\n\n" +
		components.Card(s.name.View()+"\n\n"+s.email.View(), cw)
}

func (s *Screen) viewQuestion(cw int) string {
	done, total := s.flow.Progress()
	return components.NewProgressBar(done, total, cw).View() + "\n\n" +
		components.Card(s.choice.View(), cw)
}

func (s *Screen) viewReview(cw int) string {
	resp := s.flow.Response()
	answered := resp.Len()
	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("All %d questions answered", answered)))
	b.WriteString("\n\n")
	for _, q := range survey.Questions() {
		ans, _ := resp.Answer(q.Field)
		b.WriteString(theme.Hint.Render(q.Text))
		b.WriteString("  ")
		b.WriteString(theme.Body.Render(ans))
		b.WriteString("\n")
	}
	return components.Card(b.String(), cw) + "\n\n" +
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s.submit.View())
}
