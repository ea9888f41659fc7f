package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// maxContentWidth keeps question text at a readable line length.
const maxContentWidth = 72

// ContentWidth is the inner width shared by every framed section of a
// screen, so cards and menus line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), maxContentWidth)
}

// Frame centres content inside a rounded border filling the area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card is a left-aligned bordered box of content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}

type buttonState int

const (
	buttonIdle buttonState = iota
	buttonSelected
	buttonDisabled
)

func menuButton(label string, state buttonState, width int) string {
	s := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Text)

	switch state {
	case buttonSelected:
		s = s.Bold(true).Background(theme.Primary).Foreground(theme.BgCard).BorderForeground(theme.Primary)
		label = "▸ " + label
	case buttonDisabled:
		s = s.Foreground(theme.TextDim)
	}
	return s.Render(label)
}
