package overlay

import (
	"fmt"

	"notedeck/keys"
	"notedeck/log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Outcome reports what the navigator did with a key. When Handled is true the
// navigator has suppressed the key's default action and the host must not
// process it further.
type Outcome struct {
	Handled bool
	// Closed is true when the key dismissed the overlay.
	Closed bool
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithKeyMap replaces the default navigation bindings.
func WithKeyMap(km keys.NavKeyMap) NavigatorOption {
	return func(n *Navigator) {
		n.keys = km
	}
}

// WithOnClose sets the callback used when the navigator dismisses the overlay
// on its own (Escape).
func WithOnClose(fn func()) NavigatorOption {
	return func(n *Navigator) {
		n.onClose = fn
	}
}

// Navigator is the keyboard controller of an open overlay: roving focus over
// its items with clamped arrow keys, Tab trapped at both ends, and Escape to
// dismiss and hand focus back to the trigger. It only listens while open.
type Navigator struct {
	name    string
	surface Surface
	pointer *FocusPointer
	onClose func()
	keys    keys.NavKeyMap

	open      bool
	itemCount int
	focused   int
	hasFocus  bool
}

// NewNavigator creates a closed navigator.
func NewNavigator(name string, surface Surface, pointer *FocusPointer, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		name:    name,
		surface: surface,
		pointer: pointer,
		keys:    keys.NewNavKeyMap(false),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Open activates the navigator and focuses the first item. It fails if another
// overlay owns the focus pointer.
func (n *Navigator) Open(itemCount int) error {
	if n.pointer != nil {
		if err := n.pointer.Acquire(n.name); err != nil {
			return fmt.Errorf("open %s: %w", n.name, err)
		}
	}
	n.open = true
	n.itemCount = max(itemCount, 0)
	n.hasFocus = false
	if n.itemCount > 0 {
		n.focus(0)
	}
	log.OverlayTrace(n.name, "navigator open with %d items", n.itemCount)
	return nil
}

// Close tears the navigator down and returns focus to the trigger. It is safe
// to call on a closed navigator.
func (n *Navigator) Close() {
	if !n.open {
		return
	}
	n.open = false
	n.hasFocus = false
	n.focused = 0
	n.itemCount = 0

	if !n.surface.RestoreFocus() {
		log.OverlayTrace(n.name, "trigger gone, focus not restored")
	}
	if n.pointer != nil {
		n.pointer.Release(n.name)
	}
}

// IsOpen reports whether the navigator is listening for keys.
func (n *Navigator) IsOpen() bool {
	return n.open
}

// FocusedIndex returns the focused item. ok is false when nothing is focused.
func (n *Navigator) FocusedIndex() (index int, ok bool) {
	return n.focused, n.open && n.hasFocus
}

// Sync records focus that moved without the navigator, e.g. native Tab
// traversal or a mouse hover. Out of range indices are ignored.
func (n *Navigator) Sync(index int) {
	if !n.open || index < 0 || index >= n.itemCount {
		return
	}
	n.focus(index)
}

// HandleKey applies a key to the open overlay.
func (n *Navigator) HandleKey(msg tea.KeyMsg) Outcome {
	if !n.open {
		return Outcome{}
	}

	switch {
	case key.Matches(msg, n.keys.Close):
		log.InputTrace("%s: esc", n.name)
		onClose := n.onClose
		n.Close()
		if onClose != nil {
			onClose()
		}
		return Outcome{Handled: true, Closed: true}

	case key.Matches(msg, n.keys.Down):
		if n.itemCount == 0 {
			return Outcome{Handled: true}
		}
		next := -1
		if n.hasFocus {
			next = n.focused
		}
		n.focus(min(next+1, n.itemCount-1))
		return Outcome{Handled: true}

	case key.Matches(msg, n.keys.Up):
		if n.itemCount == 0 {
			return Outcome{Handled: true}
		}
		prev := n.itemCount
		if n.hasFocus {
			prev = n.focused
		}
		n.focus(max(prev-1, 0))
		return Outcome{Handled: true}

	case key.Matches(msg, n.keys.Next):
		if n.itemCount == 0 || !n.hasFocus || n.focused != n.itemCount-1 {
			return Outcome{}
		}
		n.focus(0)
		return Outcome{Handled: true}

	case key.Matches(msg, n.keys.Prev):
		if n.itemCount == 0 || !n.hasFocus || n.focused != 0 {
			return Outcome{}
		}
		n.focus(n.itemCount - 1)
		return Outcome{Handled: true}
	}

	return Outcome{}
}

func (n *Navigator) focus(index int) {
	n.focused = index
	n.hasFocus = true
	n.surface.MoveFocus(index)
}
