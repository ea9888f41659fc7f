package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// ProgressBar shows how far through the questionnaire the user is.
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar for done of total steps.
func NewProgressBar(done, total, width int) ProgressBar {
	return ProgressBar{Done: done, Total: total, Width: width}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// View renders "Question n of m" followed by the bar.
func (p ProgressBar) View() string {
	step := p.Done + 1
	if step > p.Total {
		step = p.Total
	}
	label := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Question %d of %d", step, p.Total)) + "  "

	barWidth := p.Width - lipgloss.Width(label) - 6 // "  100%"
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	return label +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", int(p.Fraction()*100)))
}
