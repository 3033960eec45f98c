package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tooltipChrome is the border around a tooltip's single text row.
const tooltipChrome = 2

// Tooltip is a non-interactive hint placed next to its anchor. It takes no
// keyboard focus, so it only has a position controller.
type Tooltip struct {
	text     string
	width    int
	visible  bool
	position *PositionController
}

// NewTooltip creates a hidden tooltip.
func NewTooltip(name string, surface Surface, opts ...PositionOption) *Tooltip {
	opts = append([]PositionOption{WithChrome(tooltipChrome)}, opts...)
	return &Tooltip{
		position: NewPositionController(name, surface, opts...),
	}
}

// SetWidth caps the tooltip width. Longer text wraps. Zero means no cap.
func (t *Tooltip) SetWidth(width int) {
	t.width = width
}

// Show displays text next to the anchor and returns the measure command.
func (t *Tooltip) Show(text string) tea.Cmd {
	t.text = text
	t.visible = true
	return t.position.Activate(1)
}

// Hide removes the tooltip.
func (t *Tooltip) Hide() {
	t.visible = false
	t.position.Deactivate()
}

// Visible reports whether the tooltip is showing.
func (t *Tooltip) Visible() bool {
	return t.visible
}

// Text returns the tooltip's text.
func (t *Tooltip) Text() string {
	return t.text
}

// Update forwards layout events to the position controller.
func (t *Tooltip) Update(msg tea.Msg) bool {
	return t.position.Update(msg)
}

// Placement returns where the tooltip should be drawn.
func (t *Tooltip) Placement() (Placement, bool) {
	return t.position.Placement()
}

// Phase returns the placement phase of the tooltip.
func (t *Tooltip) Phase() Phase {
	return t.position.Phase()
}

// Render renders the tooltip.
func (t *Tooltip) Render() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	if t.width > 0 {
		boxStyle = boxStyle.Width(t.width)
	}
	return boxStyle.Render(t.text)
}
