package welcome

import "github.com/abhisek/mindcheck/internal/ui/theme"

const banner = `
 █▄ ▄█ █ █▄ █ █▀▄ █▀▀ █ █ █▀▀ █▀▀ █▄▀
 █ ▀ █ █ █ ▀█ █▄▀ █▄▄ █▀█ ██▄ █▄▄ █ █`

// RenderBanner draws the block-letter name, or spaced capitals when the
// terminal is narrower than the art.
func RenderBanner(width int) string {
	if width < 44 {
		return theme.Selected.Render("M I N D C H E C K")
	}
	return theme.Selected.Render(banner)
}
