package welcome

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
)

type homeStub struct{}

func (h *homeStub) Init() tea.Cmd                           { return nil }
func (h *homeStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return h, nil }
func (h *homeStub) View(int, int) string                    { return "home" }
func (h *homeStub) Title() string                           { return "Home" }

func newWelcome() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &homeStub{}
	}), &built
}

// advance sends n ticks and returns the last command.
func advance(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg{})
	}
	return cmd
}

func requireReplace(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected a ReplaceScreenMsg")
	assert.Equal(t, "Home", msg.Screen.Title())
}

func TestStages(t *testing.T) {
	w, _ := newWelcome()
	assert.NotContains(t, w.View(80, 24), tagline)
	assert.NotRegexp(t, "[·•]", w.View(80, 24))

	advance(w, int(beatAt/frame))
	assert.Regexp(t, "[·•]", w.View(80, 24), "heart starts beating")
	assert.NotContains(t, w.View(80, 24), tagline)

	advance(w, int((bannerAt-beatAt)/frame))
	view := w.View(80, 24)
	assert.Contains(t, view, tagline)
	assert.Contains(t, view, "press any key")
}

func TestKeySkipsSplash(t *testing.T) {
	w, built := newWelcome()
	advance(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	requireReplace(t, cmd)
	assert.Equal(t, 1, *built)

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'x'})
	assert.Nil(t, cmd, "a second key must not build another screen")
	assert.Equal(t, 1, *built)
}

func TestSplashMovesOnByItself(t *testing.T) {
	w, built := newWelcome()
	n := int(doneAt / frame)

	assert.NotNil(t, advance(w, n-1), "still ticking")
	assert.Zero(t, *built)

	requireReplace(t, advance(w, 1))
	assert.Equal(t, 1, *built)
}

func TestTicksStopAfterLeaving(t *testing.T) {
	w, _ := newWelcome()
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	_, cmd := w.Update(tickMsg{})
	assert.Nil(t, cmd)
	assert.Empty(t, w.Title())
}

func TestBannerWidths(t *testing.T) {
	assert.Contains(t, RenderBanner(30), "M I N D C H E C K")
	assert.Contains(t, RenderBanner(80), "█▄ ▄█")
}
