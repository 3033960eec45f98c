package ui

import (
	"fmt"
	"strings"

	"notedeck/notes"
	"notedeck/ui/layout"
	"notedeck/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"
)

// ListSource names the note list in overlay.ScrollMsg.
const ListSource = "notes"

var mainTitle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230"))

var rowStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var selectedRowStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#dde4f0")).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#1a1a1a"})

var rowTimeStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

// NoteList is the scrollable list of notes. It is a scroll container: its
// first line is a title bar and the rows below it move when the list scrolls.
type NoteList struct {
	all   []notes.Note
	items []notes.Note

	selectedIdx int
	offset      int

	width, height  int
	showTimestamps bool
	showIndicators bool

	filter    string
	filtering bool
}

// NewNoteList creates an empty list.
func NewNoteList() *NoteList {
	return &NoteList{
		showTimestamps: true,
		showIndicators: true,
	}
}

// SetSize sets the height and width of the list.
func (l *NoteList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// SetDegradation applies the layout's feature flags.
func (l *NoteList) SetDegradation(d layout.Degradation) {
	l.showTimestamps = d.ShouldShowTimestamp()
	l.showIndicators = d.ShouldShowScrollIndicators()
}

// SetNotes replaces the list content. The selected note stays selected if it
// is still present.
func (l *NoteList) SetNotes(ns []notes.Note) {
	var keep string
	if n, ok := l.Selected(); ok {
		keep = n.Path
	}
	l.all = ns
	l.applyFilter(keep)
}

// Len returns the number of visible (filtered) notes.
func (l *NoteList) Len() int {
	return len(l.items)
}

// Total returns the number of notes before filtering.
func (l *NoteList) Total() int {
	return len(l.all)
}

// Offset returns the index of the first visible row.
func (l *NoteList) Offset() int {
	return l.offset
}

// Selected returns the selected note.
func (l *NoteList) Selected() (notes.Note, bool) {
	if len(l.items) == 0 {
		return notes.Note{}, false
	}
	return l.items[l.selectedIdx], true
}

// SelectedIndex returns the index of the selected note.
func (l *NoteList) SelectedIndex() int {
	return l.selectedIdx
}

// IndexOf returns the index of the note at path among the visible notes.
func (l *NoteList) IndexOf(path string) (int, bool) {
	for i, n := range l.items {
		if n.Path == path {
			return i, true
		}
	}
	return 0, false
}

// Select selects the note at idx. Noop if the index is out of bounds.
func (l *NoteList) Select(idx int) bool {
	if idx < 0 || idx >= len(l.items) {
		return false
	}
	l.selectedIdx = idx
	return l.ensureVisible()
}

// SelectedRow returns the line of the selected note inside the list, counting
// the title bar as line 0. ok is false when the note is scrolled out of view or
// the list is empty.
func (l *NoteList) SelectedRow() (row int, ok bool) {
	if len(l.items) == 0 {
		return 0, false
	}
	return l.RowOf(l.selectedIdx)
}

// RowOf returns the line of the note at idx inside the list.
func (l *NoteList) RowOf(idx int) (row int, ok bool) {
	if idx < l.offset || idx >= l.offset+l.visibleRows() || idx >= len(l.items) {
		return 0, false
	}
	return 1 + idx - l.offset, true
}

// IndexAt returns the note shown on line row of the list.
func (l *NoteList) IndexAt(row int) (int, bool) {
	if row < 1 || row > l.visibleRows() {
		return 0, false
	}
	idx := l.offset + row - 1
	if idx >= len(l.items) {
		return 0, false
	}
	return idx, true
}

// Up selects the previous note. It returns true if the list scrolled.
func (l *NoteList) Up() bool {
	if len(l.items) == 0 || l.selectedIdx == 0 {
		return false
	}
	l.selectedIdx--
	return l.ensureVisible()
}

// Down selects the next note. It returns true if the list scrolled.
func (l *NoteList) Down() bool {
	if len(l.items) == 0 || l.selectedIdx >= len(l.items)-1 {
		return false
	}
	l.selectedIdx++
	return l.ensureVisible()
}

// PageUp moves the selection one page up.
func (l *NoteList) PageUp() bool {
	if len(l.items) == 0 {
		return false
	}
	l.selectedIdx = max(l.selectedIdx-max(l.visibleRows(), 1), 0)
	return l.ensureVisible()
}

// PageDown moves the selection one page down.
func (l *NoteList) PageDown() bool {
	if len(l.items) == 0 {
		return false
	}
	l.selectedIdx = min(l.selectedIdx+max(l.visibleRows(), 1), len(l.items)-1)
	return l.ensureVisible()
}

// ScrollBy moves the visible window without changing the selection, as the
// mouse wheel does. The selected row may leave the view.
func (l *NoteList) ScrollBy(delta int) bool {
	before := l.offset
	l.offset += delta
	l.clampOffset()
	return l.offset != before
}

// ScrollCmd reports a scroll of the list to the rest of the program.
func ScrollCmd() tea.Cmd {
	return func() tea.Msg {
		return overlay.ScrollMsg{Source: ListSource}
	}
}

// Filtering reports whether the filter prompt is being edited.
func (l *NoteList) Filtering() bool {
	return l.filtering
}

// Filter returns the current filter query.
func (l *NoteList) Filter() string {
	return l.filter
}

// StartFilter opens the filter prompt.
func (l *NoteList) StartFilter() {
	l.filtering = true
}

// ClearFilter removes the filter and shows every note.
func (l *NoteList) ClearFilter() {
	l.filtering = false
	if l.filter == "" {
		return
	}
	l.filter = ""
	l.applyFilter(l.selectedPath())
}

// HandleFilterKey edits the filter query. It returns false once the prompt
// is closed, either accepted with enter or cleared with esc.
func (l *NoteList) HandleFilterKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter:
		l.filtering = false
	case tea.KeyEsc:
		l.ClearFilter()
	case tea.KeyBackspace:
		if r := []rune(l.filter); len(r) > 0 {
			l.filter = string(r[:len(r)-1])
			l.applyFilter(l.selectedPath())
		}
	case tea.KeySpace:
		l.filter += " "
		l.applyFilter(l.selectedPath())
	case tea.KeyRunes:
		l.filter += string(msg.Runes)
		l.applyFilter(l.selectedPath())
	}
	return l.filtering
}

func (l *NoteList) selectedPath() string {
	if n, ok := l.Selected(); ok {
		return n.Path
	}
	return ""
}

func (l *NoteList) applyFilter(keep string) {
	if l.filter == "" {
		l.items = l.all
	} else {
		titles := make([]string, len(l.all))
		for i, n := range l.all {
			titles[i] = n.Title
		}
		matches := fuzzy.Find(l.filter, titles)
		l.items = make([]notes.Note, 0, len(matches))
		for _, m := range matches {
			l.items = append(l.items, l.all[m.Index])
		}
	}

	l.selectedIdx = 0
	for i, n := range l.items {
		if n.Path == keep {
			l.selectedIdx = i
			break
		}
	}
	l.ensureVisible()
}

func (l *NoteList) visibleRows() int {
	return max(l.height-1, 0)
}

// ensureVisible scrolls so the selection is on screen. It returns true if
// the offset changed.
func (l *NoteList) ensureVisible() bool {
	before := l.offset
	rows := l.visibleRows()
	if l.selectedIdx < l.offset {
		l.offset = l.selectedIdx
	} else if rows > 0 && l.selectedIdx >= l.offset+rows {
		l.offset = l.selectedIdx - rows + 1
	}
	l.clampOffset()
	return l.offset != before
}

func (l *NoteList) clampOffset() {
	l.offset = min(l.offset, max(len(l.items)-l.visibleRows(), 0))
	l.offset = max(l.offset, 0)
}

func (l *NoteList) titleBar() string {
	var b strings.Builder
	b.WriteString(mainTitle.Render(" Notes "))

	if l.filtering || l.filter != "" {
		b.WriteString(" /")
		b.WriteString(l.filter)
		if l.filtering {
			b.WriteString("▏")
		}
	}

	if l.showIndicators && len(l.items) > l.visibleRows() && l.visibleRows() > 0 {
		last := min(l.offset+l.visibleRows(), len(l.items))
		b.WriteString(TextStyles.Muted.Render(fmt.Sprintf(" %d-%d/%d", l.offset+1, last, len(l.items))))
	}
	return truncate.String(b.String(), uint(max(l.width, 0)))
}

// titleWidth returns the cells left for a row's title and the time column
// drawn beside it.
func (l *NoteList) titleWidth(n notes.Note) (int, string) {
	const prefixWidth = 2
	timeText := ""
	if l.showTimestamps {
		timeText = " " + FormatRelativeTime(n.ModTime) + " "
	}
	avail := l.width - prefixWidth - lipgloss.Width(timeText)
	if avail < 4 {
		timeText = ""
		avail = l.width - prefixWidth
	}
	return max(avail, 0), timeText
}

// RowTruncation reports how a visible note's title is cut. ok is false when
// the note at idx is not on screen.
func (l *NoteList) RowTruncation(idx int) (titleWidth, shown int, ok bool) {
	if _, visible := l.RowOf(idx); !visible {
		return 0, 0, false
	}
	avail, _ := l.titleWidth(l.items[idx])
	titleWidth = lipgloss.Width(l.items[idx].Title)
	return titleWidth, min(titleWidth, avail), true
}

func (l *NoteList) renderRow(n notes.Note, selected bool) string {
	prefix := "  "
	style := rowStyle
	if selected {
		prefix = "> "
		style = selectedRowStyle
	}

	avail, timeText := l.titleWidth(n)
	title := truncate.StringWithTail(n.Title, uint(avail), "…")
	pad := max(avail-lipgloss.Width(title), 0)

	body := style.Render(prefix + title + strings.Repeat(" ", pad))
	if timeText == "" {
		return body
	}
	return body + rowTimeStyle.Background(style.GetBackground()).Render(timeText)
}

func (l *NoteList) String() string {
	var b strings.Builder
	b.WriteString(l.titleBar())

	rows := l.visibleRows()
	if len(l.items) == 0 && rows > 0 {
		b.WriteString("\n")
		msg := "  No notes"
		if l.filter != "" {
			msg = "  No matches"
		}
		b.WriteString(TextStyles.Muted.Render(msg))
	}
	for i := l.offset; i < len(l.items) && i < l.offset+rows; i++ {
		b.WriteString("\n")
		b.WriteString(l.renderRow(l.items[i], i == l.selectedIdx))
	}

	return lipgloss.Place(l.width, l.height, lipgloss.Left, lipgloss.Top, b.String())
}
