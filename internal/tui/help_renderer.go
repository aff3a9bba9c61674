package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// overlayMinWidth keeps the help overlay readable on narrow terminals.
const overlayMinWidth = 40

// helpRenderer styles the help overlay markdown for the terminal. Glamour
// renderers are bound to one wrap width, so the renderer is rebuilt whenever
// a resize changes the overlay width.
type helpRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render returns the overlay markdown as ANSI-styled text wrapped to the
// given width. On any renderer failure the raw markdown comes back so the
// overlay never goes blank.
func (r *helpRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(width, overlayMinWidth)

	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}
