package result

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/reflection"
	"github.com/abhisek/mindcheck/internal/report"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/speech"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/ui/components"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// Reflector produces an optional supportive note. *reflection.Service
// implements it.
type Reflector interface {
	Generate(ctx context.Context, in reflection.Input) (string, error)
}

// Services are the collaborators of the result screen. Only Assessments
// is required.
type Services struct {
	Assessments store.AssessmentRepo
	Events      store.EventRepo
	Reflector   Reflector
	Speech      speech.Synthesizer
	ReportDir   string
	AudioDir    string
}

type reflectionMsg struct {
	Text string
	Err  error
}

type spokenMsg struct {
	Path string
	Err  error
}

type exportedMsg struct {
	Path string
	Err  error
}

// ResultScreen shows the prediction and recommendations of one
// assessment.
type ResultScreen struct {
	svc        Services
	rec        *store.Assessment
	adv        advice.Advice
	reflecting bool
	speaking   bool
	exporting  bool
	status     string
	statusErr  bool
	scroll     int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result screen for a stored assessment.
func New(rec *store.Assessment, svc Services) *ResultScreen {
	return &ResultScreen{
		svc: svc,
		rec: rec,
		adv: assessment.AdviceFor(rec),
	}
}

// Warn shows text in the status line as an error.
func (s *ResultScreen) Warn(text string) *ResultScreen {
	s.status = text
	s.statusErr = true
	return s
}

func (s *ResultScreen) Init() tea.Cmd {
	if s.rec.Reflection != "" || s.svc.Reflector == nil {
		return nil
	}
	s.reflecting = true
	rec, svc := s.rec, s.svc
	risk := s.adv.Risk
	return func() tea.Msg {
		ctx := context.Background()
		text, err := svc.Reflector.Generate(ctx, reflection.Input{Risk: risk, Answers: rec.Answers})
		if err != nil {
			return reflectionMsg{Err: err}
		}
		if svc.Assessments != nil {
			_ = svc.Assessments.SetReflection(ctx, rec.ID, text)
		}
		return reflectionMsg{Text: text}
	}
}

func (s *ResultScreen) Title() string {
	return "Your Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.svc.Speech != nil {
		hints = append(hints, layout.KeyHint{Key: "s", Description: "Speak"})
	}
	return append(hints,
		layout.KeyHint{Key: "p", Description: "Save PDF"},
		layout.KeyHint{Key: "Enter", Description: "Home"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reflectionMsg:
		s.reflecting = false
		if msg.Err == nil {
			s.rec.Reflection = msg.Text
		}
		return s, nil

	case spokenMsg:
		s.speaking = false
		s.report(msg.Path, "Saved audio to", msg.Err)
		return s, nil

	case exportedMsg:
		s.exporting = false
		s.report(msg.Path, "Saved report to", msg.Err)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "s":
			return s, s.speak()
		case "p":
			return s, s.export()
		case "enter":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) report(path, what string, err error) {
	if err != nil {
		s.status = fmt.Sprintf("An error occurred: %v", err)
		s.statusErr = true
		return
	}
	s.status = what + " " + path
	s.statusErr = false
}

func (s *ResultScreen) speak() tea.Cmd {
	if s.svc.Speech == nil {
		s.status = "Text-to-speech is not configured."
		s.statusErr = true
		return nil
	}
	if s.speaking {
		return nil
	}
	s.speaking = true
	s.status = "Generating audio..."
	s.statusErr = false

	svc, rec, text := s.svc, s.rec, s.adv.Spoken()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		path, err := speech.SpeakTo(ctx, svc.Speech, svc.AudioDir, rec.ID, text)
		logEvent(ctx, svc.Events, rec.ID, path, err, store.EventSpeechRendered, store.EventSpeechFailed)
		return spokenMsg{Path: path, Err: err}
	}
}

func (s *ResultScreen) export() tea.Cmd {
	if s.exporting {
		return nil
	}
	s.exporting = true
	s.status = "Writing report..."
	s.statusErr = false

	svc, rec := s.svc, s.rec
	return func() tea.Msg {
		path, err := report.Export(svc.ReportDir, rec)
		if err == nil {
			logEvent(context.Background(), svc.Events, rec.ID, path, nil, store.EventReportExported, "")
		}
		return exportedMsg{Path: path, Err: err}
	}
}

func logEvent(ctx context.Context, events store.EventRepo, id, path string, err error, okKind, failKind string) {
	if events == nil {
		return
	}
	data := store.EventData{Kind: okKind, AssessmentID: id, Detail: path}
	if err != nil {
		data.Kind, data.Detail = failKind, err.Error()
	}
	_ = events.AppendEvent(ctx, data)
}

func (s *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := s.body(cw)

	lines := strings.Split(body, "\n")
	avail := height - 2
	if avail < 1 {
		avail = 1
	}
	if maxScroll := len(lines) - avail; s.scroll > maxScroll {
		if maxScroll < 0 {
			maxScroll = 0
		}
		s.scroll = maxScroll
	}
	end := s.scroll + avail
	if end > len(lines) {
		end = len(lines)
	}
	visible := strings.Join(lines[s.scroll:end], "\n")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}

func (s *ResultScreen) body(cw int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(theme.RiskStyle(s.adv.Risk).Render(s.adv.Headline)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", s.rec.Name, s.rec.CreatedAt.Format("Jan 02, 2006 15:04"))))
	b.WriteString("\n\n")

	b.WriteString(components.Card(section("Prediction Result", dropHeadline(s.adv)), cw))
	b.WriteString("\n")
	b.WriteString(components.Card(section("Recommendations", s.adv.Recommendations), cw))
	b.WriteString("\n")

	switch {
	case s.rec.Reflection != "":
		b.WriteString(components.Card(section("Reflection", s.rec.Reflection), cw))
		b.WriteString("\n")
	case s.reflecting:
		b.WriteString(theme.Hint.Render("  Writing a short reflection..."))
		b.WriteString("\n")
	}

	if s.status != "" {
		b.WriteString("\n")
		style := theme.Notice
		if s.statusErr {
			style = theme.Failure
		}
		b.WriteString(lipgloss.NewStyle().Width(cw).Render(style.Render(s.status)))
		b.WriteString("\n")
	}
	return b.String()
}

func section(heading, text string) string {
	return theme.Heading.Render(heading) + "\n" +
		theme.Body.Render(strings.Join(advice.Lines(text), "\n"))
}

// dropHeadline removes the headline line, which is already shown above
// the cards.
func dropHeadline(a advice.Advice) string {
	lines := advice.Lines(a.Prediction)
	if len(lines) > 0 && lines[0] == a.Headline {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}
