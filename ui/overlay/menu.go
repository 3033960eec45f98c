package overlay

import (
	"fmt"
	"strings"

	"notedeck/keys"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// ExportFormat identifies an export action.
type ExportFormat string

const (
	ExportMarkdown  ExportFormat = "markdown"
	ExportPlain     ExportFormat = "plain"
	ExportCopyPath  ExportFormat = "copy-path"
	ExportCopyTitle ExportFormat = "copy-title"
)

// MenuItem is one selectable row of the export menu.
type MenuItem struct {
	Format ExportFormat
	Label  string
}

// DefaultExportItems are the actions offered for a note.
var DefaultExportItems = []MenuItem{
	{Format: ExportMarkdown, Label: "Export as Markdown"},
	{Format: ExportPlain, Label: "Export as plain text"},
	{Format: ExportCopyPath, Label: "Copy path"},
	{Format: ExportCopyTitle, Label: "Copy title"},
}

// ExportRequestedMsg is emitted when the user picks an export action.
type ExportRequestedMsg struct {
	Format ExportFormat
}

// menuChrome is the height the menu adds around its rows: two border lines,
// the title, a blank line, another blank line and the hint line. A title that
// wraps makes the rendered menu taller than this.
const menuChrome = 6

const defaultMenuWidth = 34

// MenuOption configures an ExportMenu.
type MenuOption func(*ExportMenu)

// WithItems replaces the default menu rows.
func WithItems(items []MenuItem) MenuOption {
	return func(m *ExportMenu) {
		m.items = items
	}
}

// WithVimKeys enables j/k in the menu.
func WithVimKeys(enabled bool) MenuOption {
	return func(m *ExportMenu) {
		m.keys = keys.NewNavKeyMap(enabled)
	}
}

// WithPositionOptions passes options through to the menu's PositionController.
func WithPositionOptions(opts ...PositionOption) MenuOption {
	return func(m *ExportMenu) {
		m.positionOpts = append(m.positionOpts, opts...)
	}
}

// ExportMenu is the floating list of export actions opened from a note row or
// the footer's export button.
type ExportMenu struct {
	Dismissed bool
	Selected  ExportFormat

	name  string
	title string
	items []MenuItem
	width int
	keys  keys.NavKeyMap

	nav          *Navigator
	position     *PositionController
	positionOpts []PositionOption
}

var menuBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7aa2f7")).
	Padding(0, 1)

// NewExportMenu creates a closed export menu.
func NewExportMenu(name string, surface Surface, pointer *FocusPointer, opts ...MenuOption) *ExportMenu {
	m := &ExportMenu{
		name:  name,
		title: "Export",
		items: DefaultExportItems,
		width: defaultMenuWidth,
		keys:  keys.NewNavKeyMap(false),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.nav = NewNavigator(name, surface, pointer, WithKeyMap(m.keys))
	posOpts := append([]PositionOption{WithChrome(menuChrome)}, m.positionOpts...)
	m.position = NewPositionController(name, surface, posOpts...)
	return m
}

// SetTitle sets the heading shown above the rows, usually the note title.
func (m *ExportMenu) SetTitle(title string) {
	m.title = title
}

// SetWidth sets the outer width of the menu, borders excluded.
func (m *ExportMenu) SetWidth(width int) {
	if width > 0 {
		m.width = width
	}
}

// Open shows the menu, focuses its first row and returns the command that
// delivers the measured placement pass.
func (m *ExportMenu) Open() (tea.Cmd, error) {
	if err := m.nav.Open(len(m.items)); err != nil {
		return nil, err
	}
	m.Dismissed = false
	m.Selected = ""
	return m.position.Activate(len(m.items)), nil
}

// Close hides the menu and returns focus to the trigger. It is used for
// dismissals the menu does not see as keys, such as a click outside it.
func (m *ExportMenu) Close() {
	m.nav.Close()
	m.position.Deactivate()
	m.Dismissed = true
}

// IsOpen reports whether the menu is showing.
func (m *ExportMenu) IsOpen() bool {
	return m.nav.IsOpen()
}

// FocusedIndex returns the focused row.
func (m *ExportMenu) FocusedIndex() (int, bool) {
	return m.nav.FocusedIndex()
}

// Items returns the menu rows.
func (m *ExportMenu) Items() []MenuItem {
	return m.items
}

// Placement returns where the menu should be drawn.
func (m *ExportMenu) Placement() (Placement, bool) {
	return m.position.Placement()
}

// Phase returns the placement phase of the menu.
func (m *ExportMenu) Phase() Phase {
	return m.position.Phase()
}

// Update forwards layout events to the position controller. It returns true
// when the placement moved.
func (m *ExportMenu) Update(msg tea.Msg) bool {
	return m.position.Update(msg)
}

// HandleKeyPress processes a key press. closed is true when the menu is no
// longer showing; cmd carries the selection, if any.
func (m *ExportMenu) HandleKeyPress(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	if !m.nav.IsOpen() {
		return false, nil
	}

	out := m.nav.HandleKey(msg)
	if out.Closed {
		m.position.Deactivate()
		m.Dismissed = true
		return true, nil
	}
	if out.Handled {
		return false, nil
	}

	idx, focused := m.nav.FocusedIndex()
	switch {
	case key.Matches(msg, m.keys.Select):
		if !focused {
			return false, nil
		}
		format := m.items[idx].Format
		m.Close()
		m.Selected = format
		return true, func() tea.Msg { return ExportRequestedMsg{Format: format} }
	case key.Matches(msg, m.keys.Next):
		// Tab between rows; the ends are wrapped by the navigator.
		if focused {
			m.nav.Sync(idx + 1)
		} else {
			m.nav.Sync(0)
		}
	case key.Matches(msg, m.keys.Prev):
		if focused {
			m.nav.Sync(idx - 1)
		} else {
			m.nav.Sync(len(m.items) - 1)
		}
	}
	return false, nil
}

// Render renders the export menu.
func (m *ExportMenu) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))

	// Two cells of padding and two of prefix.
	labelWidth := max(m.width-4, 1)

	var content strings.Builder
	content.WriteString(titleStyle.Render(m.title))
	content.WriteString("\n\n")

	idx, focused := m.nav.FocusedIndex()
	for i, item := range m.items {
		prefix := "  "
		style := normalStyle
		if focused && i == idx {
			prefix = "> "
			style = selectedStyle
		}
		content.WriteString(prefix)
		content.WriteString(style.Render(truncate.StringWithTail(item.Label, uint(labelWidth), "…")))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(hintStyle.Render(fmt.Sprintf("%s %s  %s %s",
		m.keys.Select.Help().Key, m.keys.Select.Help().Desc,
		m.keys.Close.Help().Key, m.keys.Close.Help().Desc)))

	return m.BoxStyle().Render(content.String())
}

// BoxStyle returns the style of the menu's outer box.
func (m *ExportMenu) BoxStyle() lipgloss.Style {
	return menuBoxStyle.Width(m.width)
}
