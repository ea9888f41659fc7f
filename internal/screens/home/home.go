package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/screens/history"
	"github.com/abhisek/mindcheck/internal/screens/questionnaire"
	"github.com/abhisek/mindcheck/internal/screens/result"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/ui/components"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

const title = "m i n d c h e c k"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// HomeScreen is the main menu.
type HomeScreen struct {
	svc    result.Services
	menu   components.Menu
	last   *store.Assessment
	total  int
	mascot MascotVariant
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen. The latest assessment is read
// synchronously so the summary is ready on first render.
func New(a assessment.Assessor, svc result.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	h.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "START ASSESSMENT",
			Hint:  "21 short questions, about five minutes",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: questionnaire.New(a, svc)}
				}
			},
			Disabled: a == nil || svc.Assessments == nil,
		},
		{
			Label: "HISTORY",
			Hint:  "Review and export past results",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(svc)}
				}
			},
		},
		{
			Label:  "EXIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	})
	h.refresh()
	return h
}

// refresh reloads the summary after an assessment is saved or deleted.
func (h *HomeScreen) refresh() {
	h.last, h.total = nil, 0
	if h.svc.Assessments != nil {
		ctx := context.Background()
		h.last, _ = h.svc.Assessments.Latest(ctx)
		if list, err := h.svc.Assessments.List(ctx, store.ListOpts{}); err == nil {
			h.total = len(list)
		}
	}

	var risk *advice.Risk
	if h.last != nil {
		r := advice.RiskOf(model.Label(h.last.Label))
		risk = &r
	}
	h.mascot = variantFor(risk)
	h.menu.SetDisabled(1, h.total == 0)
}

// Resume runs when the user comes back from a questionnaire or history.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := height < 24

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Title.Render(title)),
	}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(h.mascot)))
	}
	sections = append(sections,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.summary()),
		h.menu.View(cw, buttonWidth),
	)

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) summary() string {
	if h.last == nil {
		return theme.Hint.Render("A quick workplace mental health check-in.")
	}
	risk := advice.RiskOf(model.Label(h.last.Label))
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Last check %s: ", h.last.CreatedAt.Format("Jan 02"))) +
		theme.RiskStyle(risk).Render(string(risk)+" risk") +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  ·  %d total", h.total))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
