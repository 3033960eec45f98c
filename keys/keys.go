// Package keys defines the key bindings shared by the app and its overlays.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyExport
	KeyFocusFooter
	KeyEnter
	KeyRefresh
	KeyFilter
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map of key strings to their
// corresponding key names.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"pgup":   KeyPageUp,
	"pgdown": KeyPageDown,
	"e":      KeyExport,
	"tab":    KeyFocusFooter,
	"enter":  KeyEnter,
	"r":      KeyRefresh,
	"/":      KeyFilter,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to key binding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	KeyExport: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	KeyFocusFooter: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "footer"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "open"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	KeyFilter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NavKeyMap holds the bindings an open overlay listens to.
type NavKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Close  key.Binding
	Select key.Binding
}

// NewNavKeyMap returns the overlay bindings. With vim enabled, j and k move
// the focus as well as the arrow keys.
func NewNavKeyMap(vim bool) NavKeyMap {
	up := []string{"up"}
	down := []string{"down"}
	if vim {
		up = append(up, "k")
		down = append(down, "j")
	}
	return NavKeyMap{
		Up:     key.NewBinding(key.WithKeys(up...), key.WithHelp("↑", "previous")),
		Down:   key.NewBinding(key.WithKeys(down...), key.WithHelp("↓", "next")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
	}
}

// ShortHelp returns the bindings shown in an overlay's hint line.
func (k NavKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close}
}
