package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// RenderMarkdown renders a note for display at the given width. plain selects
// the unstyled style used for plain-text export; it is also used whenever the
// terminal has no colors.
func RenderMarkdown(body string, width int, plain bool) (string, error) {
	style, profile := "dark", lipgloss.ColorProfile()
	if plain || profile == termenv.Ascii {
		style, profile = "notty", termenv.Ascii
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(max(width, 10)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(body)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
