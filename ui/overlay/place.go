package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// resetSequence stops background styling from bleeding into the panel.
const resetSequence = "\x1b[0m"

// Origin converts a placement into the top-left cell of a panel of the given
// size. The panel is kept inside the viewport when it can be.
func Origin(p Placement, panel Size, vp Viewport) (x, y int) {
	x = vp.Width - p.Right - panel.Width
	if p.Top != nil {
		y = *p.Top
	} else if p.Bottom != nil {
		y = vp.Height - *p.Bottom - panel.Height
	}
	x = clampOrigin(x, panel.Width, vp.Width)
	y = clampOrigin(y, panel.Height, vp.Height)
	return x, y
}

func clampOrigin(v, extent, limit int) int {
	if v+extent > limit {
		v = limit - extent
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Measure returns the rendered size of a panel.
func Measure(panel string) Size {
	return Size{Width: lipgloss.Width(panel), Height: lipgloss.Height(panel)}
}

// PlaceOverlay paints panel over background at the placement's coordinates.
// Background cells outside the panel keep their styling.
func PlaceOverlay(background, panel string, p Placement, vp Viewport) string {
	panelLines := strings.Split(panel, "\n")
	size := Measure(panel)
	x, y := Origin(p, size, vp)

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < vp.Height {
		bgLines = append(bgLines, "")
	}

	for i, line := range panelLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = compositeRow(bgLines[row], line, x, size.Width)
	}

	return strings.Join(bgLines, "\n")
}

// compositeRow replaces the cells [startX, startX+width) of bgLine with
// panelLine.
func compositeRow(bgLine, panelLine string, startX, width int) string {
	var b strings.Builder

	bgWidth := ansi.StringWidth(bgLine)
	left := ansi.Truncate(bgLine, startX, "")
	b.WriteString(left)
	if strings.Contains(left, "\x1b") {
		b.WriteString(resetSequence)
	}
	if leftWidth := ansi.StringWidth(left); leftWidth < startX {
		b.WriteString(strings.Repeat(" ", startX-leftWidth))
	}

	b.WriteString(panelLine)
	if pad := width - ansi.StringWidth(panelLine); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	if rightStart := startX + width; bgWidth > rightStart {
		b.WriteString(ansi.Cut(bgLine, rightStart, bgWidth))
	}
	return b.String()
}
