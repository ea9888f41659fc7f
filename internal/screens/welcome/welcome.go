// Package welcome is the splash shown on start-up.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

const (
	frame = 100 * time.Millisecond

	// The heart appears alone, starts to beat at beatAt, the name
	// follows at bannerAt and the splash moves on by itself at doneAt.
	beatAt   = 500 * time.Millisecond
	bannerAt = 1500 * time.Millisecond
	doneAt   = 6 * time.Second
)

const tagline = "Take a moment to check in with yourself."

var heart = []string{
	" ▄▀▀▄ ▄▀▀▄",
	" █   ▀   █",
	"  ▀▄   ▄▀",
	"    ▀▄▀",
}

type tickMsg struct{}

// WelcomeScreen animates for a few seconds, then replaces itself with the
// screen built by next. Any key skips ahead.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(frame, func(time.Time) tea.Msg { return tickMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.elapsed += frame
		if w.elapsed >= doneAt {
			return w, w.leave()
		}
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave builds the next screen exactly once.
func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	next := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	art := append([]string(nil), heart...)
	if w.elapsed >= beatAt {
		dot := "·"
		if (w.elapsed/frame)%2 == 1 {
			dot = "•"
		}
		dot = lipgloss.NewStyle().Foreground(theme.Secondary).Render(dot)
		art[1] = dot + " " + art[1] + " " + dot
	}
	lines := []string{lipgloss.NewStyle().Foreground(theme.Error).Render(strings.Join(art, "\n"))}

	if w.elapsed >= bannerAt {
		lines = append(lines,
			"",
			RenderBanner(width),
			"",
			theme.Body.Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
