package cli

import (
	"os"

	"github.com/dmitrijs2005/tripkeeper/internal/client/services"
	"golang.org/x/term"
)

// photoRowHeight is the height of one feed line in the units the scroll
// threshold is expressed in.
const photoRowHeight = 24.0

const defaultRows = 24

// terminalSize is a test seam for term.GetSize.
var terminalSize = term.GetSize

// terminalRows returns the number of feed lines that fit on screen, leaving
// room for the footer and prompt.
func terminalRows() int {
	fd := int(os.Stdout.Fd())
	rows := defaultRows
	if term.IsTerminal(fd) {
		if _, h, err := terminalSize(fd); err == nil && h > 0 {
			rows = h
		}
	}
	return max(rows-3, 1)
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// viewport maps the feed window onto the scroll geometry the feed expects.
func (a *App) viewport(loaded int) services.Viewport {
	return services.Viewport{
		ScrollTop:    a.scrollTop,
		ClientHeight: float64(a.rows()) * photoRowHeight,
		ScrollHeight: float64(loaded) * photoRowHeight,
	}
}

// window returns the half-open range of feed lines currently on screen.
func (a *App) window(loaded int) (int, int) {
	first := min(int(a.scrollTop/photoRowHeight), loaded)
	last := min(first+a.rows(), loaded)
	return first, last
}

// scrollDown moves the window by one screen, stopping at the end of the
// loaded content.
func (a *App) scrollDown(loaded int) {
	v := a.viewport(loaded)
	bottom := max(v.ScrollHeight-v.ClientHeight, 0)
	a.scrollTop = min(a.scrollTop+v.ClientHeight, bottom)
}
