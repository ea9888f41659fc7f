package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// Button is a styled button pressed with Enter or its shortcut key.
type Button struct {
	Label     string
	BusyLabel string
	Shortcut  string
	Active    bool
	Busy      bool
	OnPress   func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events. A busy button ignores presses.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.Busy || b.OnPress == nil {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		key := kmsg.String()
		if key == "enter" || (b.Shortcut != "" && key == b.Shortcut) {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Busy && b.BusyLabel != "" {
		label = b.BusyLabel
	}
	label = "  ▸ " + label + " "
	if b.Active && !b.Busy {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
