package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
)

// fakeSurface is an in-memory Surface. Its fields can be changed between
// events to simulate layout changes.
type fakeSurface struct {
	anchor     AnchorRect
	anchorGone bool
	viewport   Viewport

	measured   Size
	unmeasured bool

	triggerGone bool

	focusMoves  []int
	restored    int
	anchorReads int
}

func newFakeSurface(anchor AnchorRect, vp Viewport) *fakeSurface {
	return &fakeSurface{anchor: anchor, viewport: vp}
}

func (f *fakeSurface) AnchorRect() (AnchorRect, bool) {
	f.anchorReads++
	return f.anchor, !f.anchorGone
}

func (f *fakeSurface) ViewportSize() Viewport {
	return f.viewport
}

func (f *fakeSurface) MeasureOverlay() (Size, bool) {
	return f.measured, !f.unmeasured
}

func (f *fakeSurface) MoveFocus(index int) {
	f.focusMoves = append(f.focusMoves, index)
}

func (f *fakeSurface) RestoreFocus() bool {
	if f.triggerGone {
		return false
	}
	f.restored++
	return true
}

// runCmd executes cmd and returns its message, or nil.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
