package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/screens/result"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// pageSize is how many assessments are loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Assessments []*store.Assessment
	Err         error
}

// HistoryScreen lists past assessments.
type HistoryScreen struct {
	svc         result.Services
	assessments []*store.Assessment
	selected    int
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(svc result.Services) *HistoryScreen {
	return &HistoryScreen{svc: svc}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.svc.Assessments
	return func() tea.Msg {
		list, err := repo.List(context.Background(), store.ListOpts{Limit: pageSize})
		return historyLoadedMsg{Assessments: list, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.assessments = msg.Assessments
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.assessments)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.assessments) {
				next := result.New(s.assessments[s.selected], s.svc)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.assessments) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments yet. Take your first one from the home screen.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, a := range s.assessments {
		risk := advice.RiskOf(model.Label(a.Label))

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := style.Render(fmt.Sprintf("%s%s  %-24s", prefix, a.CreatedAt.Format("Jan 02, 2006 15:04"), truncate(a.Name, 24))) +
			"  " + theme.RiskStyle(risk).Render(fmt.Sprintf("%-4s risk", risk)) +
			probability(a.Probability)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func probability(p float64) string {
	if p < 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  p=%.2f", p))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
