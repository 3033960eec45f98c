package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notedeck/config"
	"notedeck/inspect"
	"notedeck/keys"
	"notedeck/log"
	"notedeck/notes"
	"notedeck/ui"
	"notedeck/ui/layout"
	"notedeck/ui/overlay"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay names, used as focus owners and in traces.
const (
	menuName    = "export"
	tooltipName = "export-hint"
)

// preferredMenuWidth is the export menu width before clamping to the terminal.
const preferredMenuWidth = 34

const exportHint = "Export the selected note (↵)"

var errNoNote = errors.New("no note selected")

// Options configure the browser.
type Options struct {
	// NotesDir overrides Config.NotesDir when set.
	NotesDir string
	Config   *config.Config
	State    config.AppState
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, opts Options) error {
	h, err := newHome(ctx, opts)
	if err != nil {
		return err
	}
	defer h.close()

	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse wheel and clicks
	)
	_, err = p.Run()
	return err
}

type focus int

const (
	focusList focus = iota
	// focusFooter is set when the footer's export button holds focus.
	focusFooter
	// focusMenu is set while the export menu is open.
	focusMenu
	// focusFilter is set while the list filter prompt is edited.
	focusFilter
)

func (f focus) String() string {
	switch f {
	case focusList:
		return "list"
	case focusFooter:
		return "footer"
	case focusMenu:
		return "menu"
	case focusFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// trigger is the element that opened the export menu.
type trigger int

const (
	triggerRow trigger = iota
	triggerButton
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config
	// appState stores persistent application state like seen hints
	appState config.AppState
	catalog  *notes.Catalog
	watcher  *notes.Watcher

	// -- Layout --

	width, height int
	constraints   layout.Constraints
	degradation   layout.Degradation

	// -- State --

	focus focus
	// pending collects commands produced while focus moves inside overlay
	// callbacks, which cannot return commands themselves.
	pending []tea.Cmd
	// statusSeq identifies the latest status message so an older hide timer
	// does not clear a newer message.
	statusSeq int

	// -- UI Components --

	list   *ui.NoteList
	detail *ui.Detail
	status *ui.StatusLine
	footer *ui.Footer

	// pointer is the single keyboard focus owner shared by the overlays.
	pointer     *overlay.FocusPointer
	menu        *overlay.ExportMenu
	menuTrigger trigger
	// menuNote is the note the open menu acts on.
	menuNote notes.Note
	tooltip  *overlay.Tooltip

	// copy writes export output. It is the system clipboard outside tests.
	copy func(string) error
}

func newHome(ctx context.Context, opts Options) (*home, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.LoadConfig()
	}
	state := opts.State
	if state == nil {
		state = config.LoadState()
	}
	dir := cfg.NotesDir
	if opts.NotesDir != "" {
		dir = opts.NotesDir
	}

	h := &home{
		ctx:       ctx,
		appConfig: cfg,
		appState:  state,
		catalog:   notes.NewCatalog(dir),
		list:      ui.NewNoteList(),
		detail:    ui.NewDetail(dir),
		status:    ui.NewStatusLine(),
		footer:    ui.NewFooter(),
		pointer:   overlay.NewFocusPointer(),
		copy:      clipboard.WriteAll,
	}

	posOpts := []overlay.PositionOption{
		overlay.WithGaps(overlay.Gaps{Above: cfg.GapAbove, Below: cfg.GapBelow}),
		overlay.WithRowHeight(cfg.RowHeight),
	}
	h.menu = overlay.NewExportMenu(menuName, menuSurface{h}, h.pointer,
		overlay.WithVimKeys(cfg.VimKeys),
		overlay.WithPositionOptions(posOpts...),
	)
	h.tooltip = overlay.NewTooltip(tooltipName, tooltipSurface{h}, posOpts...)

	ns, err := h.catalog.Load()
	if err != nil {
		return nil, err
	}
	h.list.SetNotes(ns)
	h.noteChanged()
	return h, nil
}

func (m *home) close() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Close(); err != nil {
		log.WarningLog.Printf("failed to close notes watcher: %v", err)
	}
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.constraints = layout.ComputeConstraints(msg.Width, msg.Height)
	m.degradation = layout.ComputeDegradation(m.constraints)
	c := m.constraints

	m.list.SetSize(c.ListWidth, c.ListHeight)
	m.list.SetDegradation(m.degradation)
	m.detail.SetSize(c.DetailWidth, c.DetailHeight)
	m.status.SetSize(msg.Width)
	m.footer.SetSize(c.FooterWidth, c.FooterHeight)
	m.menu.SetWidth(m.menuWidth())
	m.tooltip.SetWidth(0)

	log.LayoutTrace("resize %dx%d mode=%s list=%dx%d footerTop=%d",
		msg.Width, msg.Height, c.Mode, c.ListWidth, c.ListHeight, c.FooterTop())

	// Frame timings are per terminal size.
	log.GetProfiler().LogStats()
	log.GetProfiler().Reset()
}

func (m *home) menuWidth() int {
	w, _ := layout.ComputeOverlaySize(m.width, m.height, preferredMenuWidth, 0)
	return w
}

func (m *home) viewport() overlay.Viewport {
	return overlay.Viewport{Width: m.width, Height: m.height}
}

func (m *home) Init() tea.Cmd {
	w, err := notes.Watch(m.catalog.Dir())
	if err != nil {
		log.WarningLog.Printf("not watching notes directory: %v", err)
		return nil
	}
	m.watcher = w
	return m.waitForNoteEvent()
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if inspect.IsEnabled() {
		if err := inspect.WriteSnapshot(m.snapshot()); err != nil {
			log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
		}
	}
	return model, cmd
}

func (m *home) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideStatusMsg:
		if msg.seq == m.statusSeq {
			m.status.Clear()
		}
		return m, nil
	case keyupMsg:
		m.footer.ClearKeydown()
		return m, nil
	case notesChangedMsg:
		log.InfoLog.Printf("notes changed: %s %s", msg.event.Type, msg.event.Path)
		return m, tea.Batch(m.reload(), m.waitForNoteEvent())
	case overlay.ExportRequestedMsg:
		return m, m.export(msg.Format)
	case exportDoneMsg:
		return m, m.handleExportDone(msg)
	case overlay.ScrollMsg:
		m.forwardToOverlays(msg)
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		// Layout first so the overlays read the new anchor rectangles.
		m.updateHandleWindowSizeEvent(msg)
		m.forwardToOverlays(msg)
		return m, nil
	case error:
		return m, m.handleError(msg)
	default:
		// Deferred measure passes of the overlays.
		m.forwardToOverlays(msg)
	}
	return m, nil
}

func (m *home) forwardToOverlays(msg tea.Msg) {
	if m.menu.Update(msg) {
		p, _ := m.menu.Placement()
		log.OverlayTrace(menuName, "moved to %s", p)
	}
	m.tooltip.Update(msg)
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	log.GetProfiler().LogStats()
	if m.menu.IsOpen() {
		m.menu.Close()
	}
	return m, tea.Quit
}

// queue keeps a command produced outside Update's return path.
func (m *home) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *home) flushPending() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// setFocus moves keyboard focus between the page components. The export hint
// follows the footer button's focus.
func (m *home) setFocus(f focus) tea.Cmd {
	prev := m.focus
	m.focus = f
	m.footer.SetFocused(f == focusFooter)

	if f != focusFooter {
		m.tooltip.Hide()
		return nil
	}
	if prev != focusFooter && m.appConfig.ShowTooltips {
		return m.tooltip.Show(exportHint)
	}
	return nil
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.handleQuit()
	}

	// An open menu traps every key.
	if m.menu.IsOpen() {
		closed, cmd := m.menu.HandleKeyPress(msg)
		if closed {
			log.InputTrace("export menu closed, focus back on %s", m.focus)
		}
		return m, tea.Batch(cmd, m.flushPending())
	}

	if m.focus == focusFilter {
		if !m.list.HandleFilterKey(msg) {
			m.setFocus(focusList)
		}
		m.noteChanged()
		return m, ui.ScrollCmd()
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		if msg.Type == tea.KeyEsc && m.focus == focusFooter {
			m.setFocus(focusList)
		}
		return m, nil
	}
	highlight := m.keydownCallback(name)

	switch name {
	case keys.KeyUp, keys.KeyDown, keys.KeyPageUp, keys.KeyPageDown:
		m.setFocus(focusList)
		var scrolled bool
		switch name {
		case keys.KeyUp:
			scrolled = m.list.Up()
		case keys.KeyDown:
			scrolled = m.list.Down()
		case keys.KeyPageUp:
			scrolled = m.list.PageUp()
		case keys.KeyPageDown:
			scrolled = m.list.PageDown()
		}
		m.noteChanged()
		if scrolled {
			return m, tea.Batch(highlight, ui.ScrollCmd())
		}
		return m, highlight
	case keys.KeyExport:
		return m, tea.Batch(highlight, m.openMenu(triggerRow))
	case keys.KeyEnter:
		t := triggerRow
		if m.focus == focusFooter {
			t = triggerButton
		}
		return m, tea.Batch(highlight, m.openMenu(t))
	case keys.KeyFocusFooter:
		if m.focus == focusFooter {
			return m, tea.Batch(highlight, m.setFocus(focusList))
		}
		return m, tea.Batch(highlight, m.setFocus(focusFooter))
	case keys.KeyRefresh:
		return m, tea.Batch(highlight, m.reload())
	case keys.KeyFilter:
		m.setFocus(focusFilter)
		m.list.StartFilter()
		return m, tea.Batch(highlight, m.showHintOnce(config.HintFilter, "type to filter • ↵ keeps • esc clears"))
	case keys.KeyQuit:
		return m.handleQuit()
	}
	return m, highlight
}

// openMenu opens the export menu for the selected note, anchored on its row or
// on the footer button.
func (m *home) openMenu(t trigger) tea.Cmd {
	n, ok := m.list.Selected()
	if !ok {
		return m.handleError(errNoNote)
	}
	if t == triggerRow {
		// The wheel may have scrolled the selected row out of view.
		if _, visible := m.list.SelectedRow(); !visible {
			m.list.Select(m.list.SelectedIndex())
		}
	}

	m.menuTrigger = t
	m.menuNote = n
	m.menu.SetTitle(n.Title)
	m.menu.SetWidth(m.menuWidth())

	cmd, err := m.menu.Open()
	if err != nil {
		return m.handleError(err)
	}

	hint := m.showHintOnce(config.HintExportMenu, "↑/↓ move • tab cycles • esc closes")
	return tea.Batch(cmd, hint, m.flushPending())
}

// showHintOnce shows text on the status line the first time hint is needed.
// Another instance may have shown it already.
func (m *home) showHintOnce(hint uint32, text string) tea.Cmd {
	if _, err := m.appState.RefreshFromDisk(); err != nil {
		log.WarningLog.Printf("failed to refresh state: %v", err)
	}
	if m.appState.HintSeen(hint) {
		return nil
	}
	if err := m.appState.SetHintsSeen(m.appState.GetHintsSeen() | hint); err != nil {
		log.WarningLog.Printf("failed to save hint state: %v", err)
	}
	return m.setStatus(ui.StatusInfo, text)
}

func (m *home) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if m.inList(msg.X, msg.Y) && m.list.ScrollBy(delta) {
			log.InputTrace("wheel scrolled list to offset %d", m.list.Offset())
		}
		// The list has moved; open overlays follow their anchor.
		m.forwardToOverlays(msg)
		return nil
	case tea.MouseButtonLeft:
		if m.menu.IsOpen() {
			if !m.menuContains(msg.X, msg.Y) {
				m.menu.Close()
			}
			return m.flushPending()
		}
		if m.footer.ButtonContains(msg.X, msg.Y, m.constraints.FooterTop()) {
			return m.openMenu(triggerButton)
		}
		if m.inList(msg.X, msg.Y) {
			if idx, ok := m.list.IndexAt(msg.Y - m.constraints.ListTop()); ok {
				m.list.Select(idx)
				m.noteChanged()
				return m.setFocus(focusList)
			}
		}
	}
	return nil
}

func (m *home) inList(x, y int) bool {
	top := m.constraints.ListTop()
	return x < m.constraints.ListWidth && y >= top && y < top+m.constraints.ListHeight
}

// menuContains reports whether the cell (x, y) is inside the open menu.
func (m *home) menuContains(x, y int) bool {
	p, ok := m.menu.Placement()
	if !ok {
		return false
	}
	size := overlay.Measure(m.menu.Render())
	x0, y0 := overlay.Origin(p, size, m.viewport())
	return x >= x0 && x < x0+size.Width && y >= y0 && y < y0+size.Height
}

// reload re-reads the catalog. Rows may shift, so open overlays are told the
// list moved.
func (m *home) reload() tea.Cmd {
	ns, err := m.catalog.Load()
	if err != nil {
		return m.handleError(err)
	}
	m.list.SetNotes(ns)
	m.noteChanged()
	return ui.ScrollCmd()
}

// noteChanged updates the detail pane for the selected note.
func (m *home) noteChanged() {
	m.detail.SetNote(m.list.Selected())
}

func (m *home) waitForNoteEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return notesChangedMsg{event: ev}
	}
}

type keyupMsg struct{}

// keydownCallback clears the footer hint highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.footer.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideStatusMsg clears the status line unless a newer message replaced it.
type hideStatusMsg struct {
	seq int
}

// notesChangedMsg carries a change from the notes watcher.
type notesChangedMsg struct {
	event notes.Event
}

// setStatus shows a message and returns the command that hides it after
// three seconds.
func (m *home) setStatus(kind ui.StatusKind, text string) tea.Cmd {
	m.status.Set(kind, text)
	m.statusSeq++
	seq := m.statusSeq
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(3 * time.Second):
		}
		return hideStatusMsg{seq: seq}
	}
}

// handleError handles all errors which get bubbled up to the app. It logs the
// error and shows it on the status line for three seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	return m.setStatus(ui.StatusErr, err.Error())
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.Primary)

func (m *home) renderHeader() string {
	var line string
	if m.constraints.ShowMinWarning {
		line = ui.StatusStyles.Warning.Render(fmt.Sprintf(" %s terminal too small (%dx%d)", ui.IconWarning, m.width, m.height))
	} else {
		line = headerStyle.Render(" notedeck") + ui.TextStyles.Muted.Render("  "+m.catalog.Dir())
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.constraints.HeaderHeight).
		MaxHeight(m.constraints.HeaderHeight).
		MaxWidth(m.width).
		Render(line)
}

func (m *home) View() string {
	stop := log.GetProfiler().StartRender("app")
	start := time.Now()
	defer func() {
		stop()
		log.GetProfiler().RecordFrame(time.Since(start))
	}()

	body := m.list.String()
	if m.constraints.ShowDetail {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.detail.String())
	}

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.status.String(),
		m.footer.String(),
	)

	log.RenderTrace("app", "%dx%d focus=%s menu=%s", m.width, m.height, m.focus, m.menu.Phase())

	vp := m.viewport()
	if m.tooltip.Visible() {
		if p, ok := m.tooltip.Placement(); ok {
			mainView = overlay.PlaceOverlay(mainView, m.tooltip.Render(), p, vp)
		}
	}
	if m.menu.IsOpen() {
		if p, ok := m.menu.Placement(); ok {
			mainView = overlay.PlaceOverlay(mainView, m.menu.Render(), p, vp)
		}
	}
	return mainView
}
