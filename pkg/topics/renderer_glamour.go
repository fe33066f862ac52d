package topics

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// GlamourRenderer uses the glamour library for rich markdown rendering
type GlamourRenderer struct {
	Style string // Style name: "dark", "light", "notty", or "auto"
	Width int    // Terminal width (0 = auto-detect)
}

// NewGlamourRenderer creates a markdown renderer with auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}
	return &GlamourRenderer{
		Style: style,
		Width: 0,
	}
}

// Render converts markdown to terminal output, falling back to the
// plain source on any rendering failure.
func (r *GlamourRenderer) Render(content string) string {
	var options []glamour.TermRendererOption

	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStandardStyle(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}

	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
