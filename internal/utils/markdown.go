package utils

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	StyleAuto  = "auto"
	StyleNoTTY = "notty"
)

// MarkdownRenderer renders answers for the terminal. Models usually reply in
// markdown (lists, bold warnings), so answers go through glamour.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer resolves "auto" once, up front: querying the terminal
// after the UI has taken it over is unreliable.
func NewMarkdownRenderer(style string, width int) (*MarkdownRenderer, error) {
	if style == StyleAuto {
		if lipgloss.HasDarkBackground() {
			style = "dark"
		} else {
			style = "light"
		}
	}
	r := &MarkdownRenderer{style: style}
	if err := r.Resize(width); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize rebuilds the renderer for a new wrap width.
func (r *MarkdownRenderer) Resize(width int) error {
	if width < 20 {
		width = 20
	}
	if r.renderer != nil && width == r.width {
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	r.renderer = renderer
	r.width = width
	return nil
}

func (r *MarkdownRenderer) Width() int {
	return r.width
}

// Render returns text unchanged if glamour fails on it.
func (r *MarkdownRenderer) Render(text string) string {
	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
