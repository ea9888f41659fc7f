// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/advice"
)

// Palette. Accents are muted so a high-risk result never reads as an alarm.
var (
	Primary   color.Color = lipgloss.Color("#8B93D8") // lavender
	Secondary color.Color = lipgloss.Color("#7FB8A4") // sage
	Accent    color.Color = lipgloss.Color("#E3A76F") // apricot
	Success   color.Color = lipgloss.Color("#8CC084") // leaf
	Error     color.Color = lipgloss.Color("#D9777F") // clay
	Text      color.Color = lipgloss.Color("#ECEFF4")
	TextDim   color.Color = lipgloss.Color("#9AA3B5")
	BgCard    color.Color = lipgloss.Color("#242A38")
	Border    color.Color = lipgloss.Color("#3B4457")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// Text styles.
var (
	Title   = fg(Primary).Bold(true).Align(lipgloss.Center)
	Body    = fg(Text)
	Hint    = fg(TextDim).Italic(true)
	Heading = fg(Secondary).Bold(true)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)

	Warning = fg(Accent).Bold(true)
	Failure = fg(Error).Bold(true)
	Notice  = fg(Success)
)

// Buttons. The inactive border keeps both states the same height.
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).Foreground(BgCard).Bold(true).
			Padding(0, 2)
	ButtonInactive = fg(Text).
			Border(lipgloss.RoundedBorder()).BorderForeground(Border).
			Padding(0, 2)
)

// RiskStyle returns the headline style for a risk level.
func RiskStyle(r advice.Risk) lipgloss.Style {
	if r == advice.RiskHigh {
		return Warning
	}
	return Notice.Bold(true)
}
