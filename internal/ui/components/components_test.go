package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestChoiceNavigationAndSubmit(t *testing.T) {
	c := NewChoice("Do you work remotely?", []string{"No", "Yes"}, -1)
	if c.Selected != 0 {
		t.Fatalf("expected cursor on first option, got %d", c.Selected)
	}

	c, _ = c.Update(press(tea.KeyDown))
	c, _ = c.Update(press(tea.KeyDown))
	if c.Selected != 1 {
		t.Errorf("cursor should stop at last option, got %d", c.Selected)
	}
	if _, ok := c.Chosen(); ok {
		t.Error("nothing should be chosen before Enter")
	}

	c, _ = c.Update(press(tea.KeyEnter))
	got, ok := c.Chosen()
	if !ok || got != "Yes" {
		t.Errorf("Chosen() = %q, %v; want Yes, true", got, ok)
	}

	// Input is ignored until Reset.
	c, _ = c.Update(press(tea.KeyUp))
	if c.Selected != 1 {
		t.Error("submitted choice should ignore navigation")
	}
	c.Reset()
	if _, ok := c.Chosen(); ok {
		t.Error("Reset should clear the submission")
	}
}

func TestChoiceDigitShortcut(t *testing.T) {
	c := NewChoice("Q", []string{"a", "b", "c"}, 0)
	c, _ = c.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if c.Selected != 2 {
		t.Errorf("expected digit 3 to select index 2, got %d", c.Selected)
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if c.Selected != 2 {
		t.Errorf("out of range digit should be ignored, got %d", c.Selected)
	}
}

func TestChoicePreselect(t *testing.T) {
	c := NewChoice("Q", []string{"a", "b", "c"}, 2)
	if c.Selected != 2 {
		t.Errorf("expected preselected index 2, got %d", c.Selected)
	}
	if !strings.Contains(c.View(), "▸ 3)  c") {
		t.Errorf("view should mark the selected option:\n%s", c.View())
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var fired string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			fired = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Start", Action: action("start")},
		{Label: "History", Disabled: true},
		{Label: "Exit", Action: action("exit")},
	})

	m, _ = m.Update(press(tea.KeyDown))
	if m.Selected != 2 {
		t.Fatalf("expected disabled item to be skipped, selected %d", m.Selected)
	}
	m, _ = m.Update(press(tea.KeyEnter))
	if fired != "exit" {
		t.Errorf("expected exit action, got %q", fired)
	}
}

func TestMenuSetDisabledMovesSelection(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Start", Disabled: true}, {Label: "History"}, {Label: "Exit"}})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m.SetDisabled(1, true)
	if m.Selected != 2 {
		t.Errorf("expected selection to move to Exit, got %d", m.Selected)
	}
	if strings.Contains(m.View(60, 20), "▸ History") {
		t.Error("disabled item rendered as selected")
	}

	m.SetDisabled(1, false)
	m, _ = m.Update(press(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("re-enabled item should be reachable, got %d", m.Selected)
	}
}

func TestButtonBusyIgnoresPress(t *testing.T) {
	pressed := 0
	b := NewButton("Submit", true, func() tea.Cmd {
		pressed++
		return nil
	})
	b.Shortcut = "s"

	b, _ = b.Update(press(tea.KeyEnter))
	b, _ = b.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if pressed != 2 {
		t.Fatalf("expected two presses, got %d", pressed)
	}

	b.Busy = true
	b.BusyLabel = "Working"
	b, _ = b.Update(press(tea.KeyEnter))
	if pressed != 2 {
		t.Error("busy button should ignore presses")
	}
	if !strings.Contains(b.View(), "Working") {
		t.Error("busy button should show its busy label")
	}
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 21, 0},
		{21, 21, 1},
		{30, 21, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar(tt.done, tt.total, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if !strings.Contains(NewProgressBar(20, 21, 60).View(), "Question 21 of 21") {
		t.Error("expected step label in view")
	}
}
