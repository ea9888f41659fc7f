package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// Choice is a single-choice selector. Submitted is set when the user
// confirms an option with Enter; the caller reads ChosenIndex and calls
// Reset before showing the next question.
type Choice struct {
	Question    string
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewChoice creates a selector with the cursor on preselect, or on the
// first option when preselect is out of range.
func NewChoice(question string, options []string, preselect int) Choice {
	if preselect < 0 || preselect >= len(options) {
		preselect = 0
	}
	return Choice{
		Question:    question,
		Options:     options,
		Selected:    preselect,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Digit keys jump to
// the matching option.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
		c.ChosenIndex = c.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected = i
			}
		}
	}

	return c, nil
}

// Chosen returns the confirmed option.
func (c Choice) Chosen() (string, bool) {
	if !c.Submitted || c.ChosenIndex < 0 || c.ChosenIndex >= len(c.Options) {
		return "", false
	}
	return c.Options[c.ChosenIndex], true
}

// Reset clears the submission so the selector accepts input again.
func (c *Choice) Reset() {
	c.Submitted = false
	c.ChosenIndex = -1
}

// View renders the question and its numbered options.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)
		if i == c.Selected {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
