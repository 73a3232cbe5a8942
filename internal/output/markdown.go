package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const minWrapWidth = 24

// Markdown renders task descriptions for the terminal and recreates its
// renderer when the wrap width changes.
type Markdown struct {
	width    int
	renderer *glamour.TermRenderer
}

// Render converts markdown into ANSI-styled text wrapped at width. On renderer
// errors the trimmed input is returned as is.
func (m *Markdown) Render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(width, minWrapWidth)
	if m.renderer == nil || m.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(markdownStyle),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		m.renderer = renderer
		m.width = wrapWidth
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}
