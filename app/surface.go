package app

import (
	"notedeck/log"
	"notedeck/ui/overlay"
)

var (
	_ overlay.Surface = menuSurface{}
	_ overlay.Surface = tooltipSurface{}
)

// menuSurface is the export menu's view of the page. The anchor is the note
// row or the footer button, whichever opened the menu.
type menuSurface struct {
	m *home
}

func (s menuSurface) AnchorRect() (overlay.AnchorRect, bool) {
	m := s.m
	if m.menuTrigger == triggerButton {
		return m.footer.ButtonRect(m.constraints.FooterTop()), m.width > 0
	}

	idx, ok := m.list.IndexOf(m.menuNote.Path)
	if !ok {
		return overlay.AnchorRect{}, false
	}
	row, ok := m.list.RowOf(idx)
	if !ok {
		return overlay.AnchorRect{}, false
	}
	return overlay.Rect(0, m.constraints.ListTop()+row, m.constraints.ListWidth, 1), true
}

func (s menuSurface) ViewportSize() overlay.Viewport {
	return s.m.viewport()
}

func (s menuSurface) MeasureOverlay() (overlay.Size, bool) {
	if !s.m.menu.IsOpen() {
		return overlay.Size{}, false
	}
	return overlay.Measure(s.m.menu.Render()), true
}

func (s menuSurface) MoveFocus(index int) {
	log.InputTrace("export menu focus %d", index)
	s.m.queue(s.m.setFocus(focusMenu))
}

// RestoreFocus hands focus back to the trigger. A note row is gone when the
// note was deleted or filtered out while the menu was open.
func (s menuSurface) RestoreFocus() bool {
	m := s.m
	if m.menuTrigger == triggerButton {
		m.queue(m.setFocus(focusFooter))
		return true
	}

	m.queue(m.setFocus(focusList))
	idx, ok := m.list.IndexOf(m.menuNote.Path)
	if !ok {
		return false
	}
	m.list.Select(idx)
	m.noteChanged()
	return true
}

// tooltipSurface anchors the export hint on the footer button. The hint never
// takes focus.
type tooltipSurface struct {
	m *home
}

func (s tooltipSurface) AnchorRect() (overlay.AnchorRect, bool) {
	return s.m.footer.ButtonRect(s.m.constraints.FooterTop()), s.m.width > 0
}

func (s tooltipSurface) ViewportSize() overlay.Viewport {
	return s.m.viewport()
}

func (s tooltipSurface) MeasureOverlay() (overlay.Size, bool) {
	if !s.m.tooltip.Visible() {
		return overlay.Size{}, false
	}
	return overlay.Measure(s.m.tooltip.Render()), true
}

func (s tooltipSurface) MoveFocus(int) {}

func (s tooltipSurface) RestoreFocus() bool {
	return true
}
