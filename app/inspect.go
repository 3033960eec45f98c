package app

import (
	"notedeck/inspect"
	"notedeck/ui/overlay"
)

// snapshot captures the layout and overlay state for NOTEDECK_INSPECT.
func (m *home) snapshot() *inspect.Snapshot {
	c := m.constraints
	s := inspect.NewSnapshot().
		WithTerminal(m.width, m.height).
		WithAppState(inspect.AppStateInfo{
			Focus:         m.focus.String(),
			NoteCount:     m.list.Len(),
			SelectedIndex: m.list.SelectedIndex(),
			Filter:        m.list.Filter(),
			ErrorMessage:  m.status.Text(),
		}).
		WithLayout(c, m.degradation)

	p, placed := m.menu.Placement()
	idx, focused := m.menu.FocusedIndex()
	s.AddOverlay(menuName, m.menu.IsOpen(), m.menu.Phase(), p, placed, idx, focused)

	p, placed = m.tooltip.Placement()
	s.AddOverlay(tooltipName, m.tooltip.Visible(), m.tooltip.Phase(), p, placed, 0, false)

	root := inspect.NewNode("App").WithBounds(0, 0, m.width, m.height)
	list := inspect.NewNode("NoteList").
		WithRect(overlay.Rect(0, c.ListTop(), c.ListWidth, c.ListHeight)).
		WithFocus(m.focus == focusList || m.focus == focusFilter).
		WithState("offset", m.list.Offset()).
		WithState("total", m.list.Total())
	for idx := m.list.Offset(); idx < m.list.Len(); idx++ {
		full, shown, ok := m.list.RowTruncation(idx)
		if !ok {
			break
		}
		if shown < full {
			row, _ := m.list.RowOf(idx)
			list.AddChild(inspect.NewNode("NoteRow").
				WithRect(overlay.Rect(0, c.ListTop()+row, c.ListWidth, 1)).
				WithTruncation(full, shown, true))
		}
	}
	root.AddChild(list)
	root.AddChild(inspect.NewNode("Detail").
		WithRect(overlay.Rect(c.ListWidth, c.ListTop(), c.DetailWidth, c.DetailHeight)).
		WithVisible(c.ShowDetail))
	root.AddChild(inspect.NewNode("Status").
		WithRect(overlay.Rect(0, c.StatusTop(), m.width, c.StatusHeight)).
		WithContent(m.status.Text()))
	root.AddChild(inspect.NewNode("Footer").
		WithRect(overlay.Rect(0, c.FooterTop(), c.FooterWidth, c.FooterHeight)).
		AddChild(inspect.NewNode("ExportButton").
			WithRect(m.footer.ButtonRect(c.FooterTop())).
			WithFocus(m.focus == focusFooter).
			WithStyles(inspect.ExtractStyleInfo(m.footer.ButtonStyle(), "exportButton"))))

	if p, ok := m.menu.Placement(); ok && m.menu.IsOpen() {
		size := overlay.Measure(m.menu.Render())
		x, y := overlay.Origin(p, size, m.viewport())
		root.AddChild(inspect.NewNode("ExportMenu").
			WithID(menuName).
			WithBounds(x, y, size.Width, size.Height).
			WithFocus(m.focus == focusMenu).
			WithState("side", p.Side.String()).
			WithStyles(inspect.ExtractStyleInfo(m.menu.BoxStyle(), "menuBox")))
	}

	return s.WithComponents(root)
}
