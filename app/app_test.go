package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notedeck/config"
	"notedeck/inspect"
	"notedeck/notes"
	"notedeck/testing/harness"
	"notedeck/testing/snapshot"
	"notedeck/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeNotes creates n notes. note-00 is the newest, so the list shows them
// in file name order.
func writeNotes(t *testing.T, dir string, n int) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("note-%02d.md", i))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("# Note %02d\n\nbody %d\n", i, i)), 0644))
		mtime := base.Add(-time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
}

type testApp struct {
	*harness.Harness
	m         *home
	dir       string
	statePath string
	copied    []string
}

func newTestApp(t *testing.T, noteCount, width, height int) *testApp {
	t.Helper()
	dir := t.TempDir()
	writeNotes(t, dir, noteCount)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.DefaultConfig()
	cfg.NotesDir = dir
	statePath := filepath.Join(t.TempDir(), config.StateFileName)
	m, err := newHome(ctx, Options{
		Config: cfg,
		State:  config.LoadStateFrom(statePath),
	})
	require.NoError(t, err)

	ta := &testApp{m: m, dir: dir, statePath: statePath}
	m.copy = func(s string) error {
		ta.copied = append(ta.copied, s)
		return nil
	}
	ta.Harness = harness.New(t, m, width, height)
	return ta
}

func (ta *testApp) selectIndex(t *testing.T, idx int) {
	t.Helper()
	for i := 0; i < idx; i++ {
		ta.PressSpecial(tea.KeyDown)
	}
	require.Equal(t, idx, ta.m.list.SelectedIndex())
}

func (ta *testApp) placement(t *testing.T) overlay.Placement {
	t.Helper()
	p, ok := ta.m.menu.Placement()
	require.True(t, ok, "menu has no placement")
	return p
}

func TestMenuOpensAboveLowRow(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.selectIndex(t, 19)

	row, ok := ta.m.list.SelectedRow()
	require.True(t, ok)
	require.Equal(t, 21, ta.m.constraints.ListTop()+row)

	ta.PressKey("e")

	require.True(t, ta.m.menu.IsOpen())
	assert.Equal(t, focusMenu, ta.m.focus)
	assert.Equal(t, overlay.PhaseMeasured, ta.m.menu.Phase())

	p := ta.placement(t)
	assert.Equal(t, overlay.SideAbove, p.Side)
	require.NotNil(t, p.Bottom)
	assert.Nil(t, p.Top)
	assert.Equal(t, 24-21+1, *p.Bottom)
	assert.Equal(t, 0, p.Right)

	idx, focused := ta.m.menu.FocusedIndex()
	assert.True(t, focused)
	assert.Equal(t, 0, idx)
	assert.Contains(t, snapshot.StripANSI(ta.View()), "Export as Markdown")
}

func TestMenuOpensBelowFirstRow(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.PressKey("e")

	p := ta.placement(t)
	assert.Equal(t, overlay.SideBelow, p.Side)
	require.NotNil(t, p.Top)
	assert.Equal(t, 2+1+1, *p.Top, "row 2 ends at 3, plus the gap")

	_, row := snapshot.Find(ta.View(), "Note 00")
	assert.Equal(t, 2, row)
}

func TestEscapeRestoresFocus(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.selectIndex(t, 3)
	ta.PressKey("e")
	require.Equal(t, focusMenu, ta.m.focus)

	ta.PressSpecial(tea.KeyEsc)

	assert.False(t, ta.m.menu.IsOpen())
	assert.Equal(t, overlay.PhaseIdle, ta.m.menu.Phase())
	assert.Equal(t, focusList, ta.m.focus)
	assert.Equal(t, 3, ta.m.list.SelectedIndex())
	assert.False(t, ta.m.pointer.Held())
	assert.NotContains(t, snapshot.StripANSI(ta.View()), "Export as Markdown")
}

func TestMenuTrapsListKeys(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.PressKey("e")

	ta.PressSpecial(tea.KeyDown)
	ta.PressSpecial(tea.KeyDown)

	idx, _ := ta.m.menu.FocusedIndex()
	assert.Equal(t, 2, idx)
	assert.Equal(t, 0, ta.m.list.SelectedIndex(), "the list does not move while the menu is open")

	// Tab past the last row wraps to the first.
	ta.PressSpecial(tea.KeyDown)
	ta.PressSpecial(tea.KeyTab)
	idx, _ = ta.m.menu.FocusedIndex()
	assert.Equal(t, 0, idx)
}

func TestFooterButtonOpensMenu(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)

	ta.PressSpecial(tea.KeyTab)
	require.Equal(t, focusFooter, ta.m.focus)
	assert.True(t, ta.m.tooltip.Visible())
	assert.Equal(t, overlay.PhaseMeasured, ta.m.tooltip.Phase())

	ta.PressSpecial(tea.KeyEnter)
	require.True(t, ta.m.menu.IsOpen())
	assert.Equal(t, triggerButton, ta.m.menuTrigger)
	assert.False(t, ta.m.tooltip.Visible(), "the hint hides while the menu has focus")

	button := ta.m.footer.ButtonRect(ta.m.constraints.FooterTop())
	p := ta.placement(t)
	assert.Equal(t, overlay.SideAbove, p.Side)
	assert.Equal(t, 24-button.Top+1, *p.Bottom)
	assert.Equal(t, 80-button.Right, p.Right)

	ta.PressSpecial(tea.KeyEsc)
	assert.Equal(t, focusFooter, ta.m.focus)
}

func TestClickOnButtonOpensMenu(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	button := ta.m.footer.ButtonRect(ta.m.constraints.FooterTop())

	ta.Click(button.Left, button.Top)

	require.True(t, ta.m.menu.IsOpen())
	assert.Equal(t, triggerButton, ta.m.menuTrigger)
}

func TestSelectExportsToClipboard(t *testing.T) {
	ta := newTestApp(t, 5, 80, 24)
	ta.selectIndex(t, 1)
	ta.PressKey("e")

	harness.NewKeySequence("down", "down", "enter").Play(ta.Harness)

	assert.False(t, ta.m.menu.IsOpen())
	assert.Equal(t, focusList, ta.m.focus)
	require.Len(t, ta.copied, 1)
	assert.Equal(t, filepath.Join(ta.dir, "note-01.md"), ta.copied[0])
	assert.Equal(t, "Copied path to clipboard", ta.m.status.Text())
	assert.Equal(t, string(overlay.ExportCopyPath), ta.m.appState.GetLastExportFormat())
}

func TestExportMarkdown(t *testing.T) {
	ta := newTestApp(t, 5, 80, 24)
	ta.PressKey("e")
	ta.PressSpecial(tea.KeyEnter)

	require.Len(t, ta.copied, 1)
	assert.Equal(t, "# Note 00\n\nbody 0\n", ta.copied[0])
}

func TestExportFailureShowsError(t *testing.T) {
	ta := newTestApp(t, 5, 80, 24)
	ta.m.copy = func(string) error { return fmt.Errorf("no clipboard") }

	ta.PressKey("e")
	ta.PressSpecial(tea.KeyEnter)

	assert.Contains(t, ta.m.status.Text(), "no clipboard")
	assert.Empty(t, ta.m.appState.GetLastExportFormat())
}

func TestExportText(t *testing.T) {
	dir := t.TempDir()
	writeNotes(t, dir, 1)
	n := notes.Note{Path: filepath.Join(dir, "note-00.md"), Title: "Note 00"}

	text, err := exportText(n, overlay.ExportCopyTitle)
	require.NoError(t, err)
	assert.Equal(t, "Note 00", text)

	text, err = exportText(n, overlay.ExportPlain)
	require.NoError(t, err)
	assert.Contains(t, text, "body 0")

	_, err = exportText(n, overlay.ExportFormat("pdf"))
	assert.ErrorContains(t, err, "unknown export format")

	_, err = exportText(notes.Note{Path: filepath.Join(dir, "missing.md")}, overlay.ExportMarkdown)
	assert.Error(t, err)
}

func TestClickOutsideClosesMenu(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.selectIndex(t, 19)
	ta.PressKey("e")
	require.True(t, ta.m.menu.IsOpen())

	// Inside the menu: stays open.
	size := overlay.Measure(ta.m.menu.Render())
	x, y := overlay.Origin(ta.placement(t), size, ta.m.viewport())
	ta.Click(x+1, y+1)
	require.True(t, ta.m.menu.IsOpen())

	ta.Click(2, 3)
	assert.False(t, ta.m.menu.IsOpen())
	assert.Equal(t, focusList, ta.m.focus)
	assert.Equal(t, 19, ta.m.list.SelectedIndex(), "the dismissing click does not select a row")
}

func TestWheelScrollMovesMenu(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.selectIndex(t, 19)
	ta.PressKey("e")
	require.Equal(t, 4, *ta.placement(t).Bottom)

	ta.Wheel(5, 5, 1)

	assert.Equal(t, 1, ta.m.list.Offset())
	p := ta.placement(t)
	assert.Equal(t, overlay.SideAbove, p.Side)
	assert.Equal(t, 5, *p.Bottom, "the row moved up one line")

	ta.Wheel(5, 5, -1)
	assert.Equal(t, 4, *ta.placement(t).Bottom)
}

func TestResizeRecomputesPlacement(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.selectIndex(t, 19)
	ta.PressKey("e")

	ta.Drain(ta.Resize(100, 30))

	require.True(t, ta.m.menu.IsOpen())
	p := ta.placement(t)
	anchor, ok := menuSurface{ta.m}.AnchorRect()
	require.True(t, ok)
	assert.Equal(t, 100-anchor.Right, p.Right)
	assert.Equal(t, overlay.ComputePlacement(anchor, overlay.Measure(ta.m.menu.Render()), overlay.Viewport{Width: 100, Height: 30}, overlay.TerminalGaps), p)
}

func TestDeletedNoteWhileMenuOpen(t *testing.T) {
	ta := newTestApp(t, 5, 80, 24)
	ta.selectIndex(t, 2)
	ta.PressKey("e")
	before := ta.placement(t)

	require.NoError(t, os.Remove(filepath.Join(ta.dir, "note-02.md")))
	ta.Send(notesChangedMsg{event: notes.Event{Type: notes.EventRemoved}})

	// The anchor is gone, so the last placement stays.
	assert.Equal(t, before, ta.placement(t))

	ta.PressSpecial(tea.KeyEsc)
	assert.False(t, ta.m.menu.IsOpen())
	assert.Equal(t, focusList, ta.m.focus)
	assert.Equal(t, 4, ta.m.list.Len())
}

func TestOpenMenuWithoutNotes(t *testing.T) {
	ta := newTestApp(t, 0, 80, 24)
	ta.PressKey("e")

	assert.False(t, ta.m.menu.IsOpen())
	assert.Equal(t, errNoNote.Error(), ta.m.status.Text())
}

func TestMenuHintShownOnce(t *testing.T) {
	ta := newTestApp(t, 5, 80, 24)

	ta.PressKey("e")
	assert.Contains(t, ta.m.status.Text(), "esc closes")
	assert.True(t, ta.m.appState.GetHintsSeen()&config.HintExportMenu != 0)

	ta.PressSpecial(tea.KeyEsc)
	ta.m.status.Clear()
	ta.PressKey("e")
	assert.Empty(t, ta.m.status.Text())
}

func TestSnapshotDescribesOverlays(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	ta.selectIndex(t, 19)
	ta.PressKey("e")

	s := ta.m.snapshot()
	assert.Equal(t, "menu", s.AppState.Focus)

	info, ok := s.Overlay(menuName)
	require.True(t, ok)
	assert.True(t, info.Open)
	assert.Equal(t, overlay.PhaseMeasured.String(), info.Phase)
	require.NotNil(t, info.Placement)
	assert.Equal(t, overlay.SideAbove, info.Placement.Side)
	assert.Equal(t, 0, info.FocusedIndex)

	hint, ok := s.Overlay(tooltipName)
	require.True(t, ok)
	assert.False(t, hint.Open)
	assert.Equal(t, -1, hint.FocusedIndex)

	menu := s.Components.Find("ExportMenu")
	require.NotNil(t, menu)
	assert.True(t, menu.Focused)
	require.NotNil(t, menu.Styles)
	assert.Equal(t, "rounded", menu.Styles.Border)
	assert.Equal(t, []string{"menuBox"}, menu.Styles.AppliedStyles)

	button := s.Components.Find("ExportButton")
	require.NotNil(t, button)
	require.NotNil(t, button.Styles)
	assert.False(t, button.Styles.Bold, "the button is not focused")

	status := s.Components.Find("Status")
	require.NotNil(t, status)
	assert.Contains(t, status.Content, "esc closes")
	assert.Nil(t, s.Components.Find("NoteRow"), "short titles are not cut")

	path := filepath.Join(t.TempDir(), "inspect.json")
	require.NoError(t, inspect.WriteSnapshotToPath(s, path))
	read, err := inspect.ReadSnapshot(path)
	require.NoError(t, err)
	assert.Len(t, read.Overlays, 2)
}

func TestViewAtCommonSizes(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		ta := newTestApp(t, 30, size.Width, size.Height)
		ta.PressKey("e")

		view := ta.View()
		assert.LessOrEqual(t, snapshot.Lines(view), size.Height)
		assert.LessOrEqual(t, snapshot.Width(view), size.Width)
		assert.Contains(t, snapshot.StripANSI(view), "Export as Markdown")
	})
}

func TestFilterFollowsAnchor(t *testing.T) {
	ta := newTestApp(t, 30, 80, 24)
	harness.NewKeySequence("/", "2", "9").Play(ta.Harness)

	assert.Equal(t, focusFilter, ta.m.focus)
	assert.Contains(t, ta.m.status.Text(), "type to filter")
	require.Equal(t, 1, ta.m.list.Len())

	ta.PressSpecial(tea.KeyEnter)
	assert.Equal(t, focusList, ta.m.focus)

	ta.PressKey("e")
	require.True(t, ta.m.menu.IsOpen())
	assert.Equal(t, "Note 29", ta.m.menuNote.Title)
	p := ta.placement(t)
	assert.Equal(t, overlay.SideBelow, p.Side)
}

func TestSnapshotReportsTruncatedRows(t *testing.T) {
	ta := newTestApp(t, 3, 80, 24)
	long := strings.Repeat("long title ", 12)
	path := filepath.Join(ta.dir, "long.md")
	require.NoError(t, os.WriteFile(path, []byte("# "+long+"\n"), 0644))
	ta.PressKey("r")

	s := ta.m.snapshot()
	row := s.Components.Find("NoteRow")
	require.NotNil(t, row)
	require.NotNil(t, row.Truncated)
	assert.Equal(t, len(strings.TrimSpace(long)), row.Truncated.OriginalLength)
	assert.Less(t, row.Truncated.DisplayLength, row.Truncated.OriginalLength)
	assert.True(t, row.Truncated.Ellipsis)
	assert.Equal(t, 2, row.Bounds.Y, "the newest note is the first row")
}

func TestHintSeenByAnotherInstance(t *testing.T) {
	ta := newTestApp(t, 5, 80, 24)

	other := config.LoadStateFrom(ta.statePath)
	require.NoError(t, other.SetHintsSeen(config.HintExportMenu))
	later := time.Now().Add(time.Second)
	require.NoError(t, os.Chtimes(ta.statePath, later, later))

	ta.PressKey("e")
	require.True(t, ta.m.menu.IsOpen())
	assert.Empty(t, ta.m.status.Text())
	assert.True(t, ta.m.appState.HintSeen(config.HintExportMenu))
}
