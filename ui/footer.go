package ui

import (
	"strings"

	"notedeck/keys"
	"notedeck/ui/overlay"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var separator = " • "

var exportButtonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("62")).
	Padding(0, 1)

var exportButtonFocusStyle = exportButtonStyle.
	Background(lipgloss.Color("205")).
	Bold(true)

const exportButtonLabel = "Export"

// footerOptions are the key hints, most important first. Hints that do not fit
// are dropped from the end.
var footerOptions = []keys.KeyName{
	keys.KeyExport, keys.KeyUp, keys.KeyDown, keys.KeyFilter,
	keys.KeyFocusFooter, keys.KeyRefresh, keys.KeyQuit,
}

// actionOptions are drawn in the accent color.
var actionOptions = map[keys.KeyName]bool{
	keys.KeyExport: true,
}

// Footer is the bottom bar: key hints on the left and the export button on
// the right. The button is a trigger for the export menu and can hold focus.
type Footer struct {
	options       []keys.KeyName
	width, height int
	focused       bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

// NewFooter creates a footer.
func NewFooter() *Footer {
	return &Footer{
		options: footerOptions,
		keyDown: -1,
	}
}

func (f *Footer) Keydown(name keys.KeyName) {
	f.keyDown = name
}

func (f *Footer) ClearKeydown() {
	f.keyDown = -1
}

// SetSize sets the footer dimensions. With two or more rows a rule is drawn
// above the hints.
func (f *Footer) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetFocused marks the export button as holding keyboard focus.
func (f *Footer) SetFocused(focused bool) {
	f.focused = focused
}

// Focused reports whether the export button holds focus.
func (f *Footer) Focused() bool {
	return f.focused
}

// ButtonWidth returns the rendered width of the export button.
func (f *Footer) ButtonWidth() int {
	return lipgloss.Width(exportButtonStyle.Render(exportButtonLabel))
}

// ButtonRect returns the export button's rectangle for a footer whose first
// row is top.
func (f *Footer) ButtonRect(top int) overlay.AnchorRect {
	w := min(f.ButtonWidth(), f.width)
	return overlay.Rect(f.width-w, top+max(f.height, 1)-1, w, 1)
}

// ButtonContains reports whether the cell (x, y) is on the export button.
func (f *Footer) ButtonContains(x, y, top int) bool {
	r := f.ButtonRect(top)
	return y >= r.Top && y < r.Bottom && x >= r.Left && x < r.Right
}

// fitOptions returns how many hints fit into width cells.
func (f *Footer) fitOptions(width int) int {
	used := 0
	for i, k := range f.options {
		help := keys.GlobalkeyBindings[k].Help()
		w := runewidth.StringWidth(help.Key) + 1 + runewidth.StringWidth(help.Desc)
		if i > 0 {
			w += runewidth.StringWidth(separator)
		}
		if used+w > width {
			return i
		}
		used += w
	}
	return len(f.options)
}

func (f *Footer) hints(width int) string {
	var s strings.Builder
	n := f.fitOptions(width)
	for i, k := range f.options[:n] {
		binding := keys.GlobalkeyBindings[k]

		var (
			localKeyStyle  = keyStyle
			localDescStyle = descStyle
		)
		if actionOptions[k] {
			localKeyStyle = actionGroupStyle
			localDescStyle = actionGroupStyle
		}
		if f.keyDown == k {
			localKeyStyle = localKeyStyle.Underline(true)
			localDescStyle = localDescStyle.Underline(true)
		}

		if i > 0 {
			s.WriteString(sepStyle.Render(separator))
		}
		s.WriteString(localKeyStyle.Render(binding.Help().Key))
		s.WriteString(" ")
		s.WriteString(localDescStyle.Render(binding.Help().Desc))
	}
	return s.String()
}

// ButtonStyle returns the export button's current style.
func (f *Footer) ButtonStyle() lipgloss.Style {
	if f.focused {
		return exportButtonFocusStyle
	}
	return exportButtonStyle
}

func (f *Footer) String() string {
	button := f.ButtonStyle().Render(exportButtonLabel)
	buttonWidth := lipgloss.Width(button)

	// One cell of margin on the left and one between hints and button.
	hintsWidth := max(f.width-buttonWidth-2, 0)
	hints := " " + f.hints(hintsWidth)
	gap := max(f.width-lipgloss.Width(hints)-buttonWidth, 0)
	line := hints + strings.Repeat(" ", gap) + button

	if f.height < 2 {
		return line
	}
	rule := sepStyle.Render(strings.Repeat("─", max(f.width, 0)))
	return lipgloss.JoinVertical(lipgloss.Left, rule, line)
}
