// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindcheck/internal/ui/layout"
)

// Screen is one page of the app. View draws only the area between the
// header and the footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is notified when the screens above it are popped, so it can
// reload data that changed in the meantime.
type Resumer interface {
	Resume() tea.Cmd
}
