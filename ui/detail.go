package ui

import (
	"fmt"
	"strings"

	"notedeck/log"
	"notedeck/notes"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// previewLimit caps how much of a note the detail pane reads.
const previewLimit = 16 * 1024

var detailTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

var detailPaneStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(Border).
	PaddingLeft(1)

// Detail is the pane beside the list showing the selected note.
type Detail struct {
	dir           string
	width, height int

	note    notes.Note
	hasNote bool

	preview    string
	previewKey string
	previewErr error
}

// NewDetail creates a detail pane for notes under dir.
func NewDetail(dir string) *Detail {
	return &Detail{dir: dir}
}

// SetSize sets the pane dimensions.
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetNote sets the note shown. ok is false when nothing is selected.
func (d *Detail) SetNote(n notes.Note, ok bool) {
	d.note = n
	d.hasNote = ok
}

// innerWidth is the text width inside the border and padding.
func (d *Detail) innerWidth() int {
	return max(d.width-2, 0)
}

func (d *Detail) refreshPreview() {
	key := fmt.Sprintf("%s|%d|%d", d.note.Path, d.note.ModTime.UnixNano(), d.innerWidth())
	if key == d.previewKey {
		return
	}
	d.previewKey = key
	d.preview = ""
	d.previewErr = nil

	body, err := notes.ReadBody(d.note.Path, previewLimit)
	if err != nil {
		d.previewErr = err
		log.WarningLog.Printf("could not read note preview: %v", err)
		return
	}
	d.preview, d.previewErr = RenderMarkdown(body, d.innerWidth(), false)
	if d.previewErr != nil {
		log.WarningLog.Printf("could not render note preview: %v", d.previewErr)
	}
}

func (d *Detail) String() string {
	if d.width <= 0 || d.height <= 0 {
		return ""
	}

	inner := d.innerWidth()
	var lines []string
	if !d.hasNote {
		lines = append(lines, TextStyles.Muted.Render("No note selected"))
	} else {
		d.refreshPreview()
		lines = append(lines,
			detailTitleStyle.Render(truncate.StringWithTail(d.note.Title, uint(inner), "…")),
			TextStyles.Muted.Render(truncate.StringWithTail(d.note.Name(d.dir), uint(inner), "…")),
			TextStyles.Secondary.Render(truncate.String("Modified "+FormatModified(d.note.ModTime), uint(inner))),
			TextStyles.Secondary.Render(fmt.Sprintf("Size %d bytes", d.note.Size)),
			"",
		)
		if d.previewErr != nil {
			lines = append(lines, StatusStyles.Error.Render(IconError+" preview unavailable"))
		} else {
			for _, line := range strings.Split(d.preview, "\n") {
				lines = append(lines, truncate.String(line, uint(inner)))
			}
		}
	}

	if len(lines) > d.height {
		lines = lines[:d.height]
	}
	content := lipgloss.Place(inner, d.height, lipgloss.Left, lipgloss.Top, strings.Join(lines, "\n"))
	return detailPaneStyle.Render(content)
}
