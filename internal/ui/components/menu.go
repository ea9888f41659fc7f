package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// MenuItem is one button of a Menu. Hint is shown below the menu while
// the item is selected.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. Selection skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// SetDisabled toggles item i, moving the selection off it if needed.
func (m *Menu) SetDisabled(i int, disabled bool) {
	m.Items[i].Disabled = disabled
	if disabled && m.Selected == i {
		if !m.step(1) {
			m.step(-1)
		}
	}
}

// step moves the selection to the next enabled item in direction dir and
// reports whether it moved.
func (m *Menu) step(dir int) bool {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return true
		}
	}
	return false
}

func (m Menu) current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Update moves with arrows, j/k or tab and fires the selected action on
// enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		m.step(-1)
	case "down", "j", "tab":
		m.step(1)
	case "enter":
		if it, ok := m.current(); ok && !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

// View renders buttons of buttonWidth centred in cw.
func (m Menu) View(cw, buttonWidth int) string {
	rows := make([]string, len(m.Items))
	for i, it := range m.Items {
		state := buttonIdle
		switch {
		case it.Disabled:
			state = buttonDisabled
		case i == m.Selected:
			state = buttonSelected
		}
		rows[i] = menuButton(it.Label, state, buttonWidth)
	}

	block := strings.Join(rows, "\n")
	if it, ok := m.current(); ok && it.Hint != "" && !it.Disabled {
		block += "\n\n" + theme.Hint.Render(it.Hint)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}
