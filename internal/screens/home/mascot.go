package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle   MascotVariant = iota // No assessment yet
	MascotSteady                      // Last result was low risk
	MascotCaring                      // Last result was high risk
)

const mascotIdle = `╭─────╮
│ ◠ ◠ │
│  ‿  │
╰─────╯`

const mascotSteady = `╭─────╮
│ ◠ ◠ │
│  ◡  │ ✓
╰─────╯`

const mascotCaring = `╭─────╮
│ ◕ ◕ │
│  ‿  │ ♥
╰─────╯`

// variantFor picks the mascot for the most recent risk, if any.
func variantFor(last *advice.Risk) MascotVariant {
	switch {
	case last == nil:
		return MascotIdle
	case *last == advice.RiskHigh:
		return MascotCaring
	default:
		return MascotSteady
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotSteady:
		art, fg = mascotSteady, theme.Success
	case MascotCaring:
		art, fg = mascotCaring, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
