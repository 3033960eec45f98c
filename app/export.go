package app

import (
	"fmt"

	"notedeck/log"
	"notedeck/notes"
	"notedeck/ui"
	"notedeck/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
)

// plainExportWidth is the wrap width of plain-text exports.
const plainExportWidth = 80

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	format overlay.ExportFormat
	note   notes.Note
	err    error
}

// exportText produces the text an export format copies.
func exportText(n notes.Note, format overlay.ExportFormat) (string, error) {
	switch format {
	case overlay.ExportMarkdown:
		return notes.ReadBody(n.Path, 0)
	case overlay.ExportPlain:
		body, err := notes.ReadBody(n.Path, 0)
		if err != nil {
			return "", err
		}
		return ui.RenderMarkdown(body, plainExportWidth, true)
	case overlay.ExportCopyPath:
		return n.Path, nil
	case overlay.ExportCopyTitle:
		return n.Title, nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

// export copies the menu's note in the chosen format. File and clipboard
// access run off the update loop.
func (m *home) export(format overlay.ExportFormat) tea.Cmd {
	n := m.menuNote
	write := m.copy
	return func() tea.Msg {
		text, err := exportText(n, format)
		if err == nil {
			log.Debug("export %s as %s: %d bytes", n.Path, format, len(text))
			err = write(text)
		}
		return exportDoneMsg{format: format, note: n, err: err}
	}
}

func (m *home) handleExportDone(msg exportDoneMsg) tea.Cmd {
	if msg.err != nil {
		return m.handleError(fmt.Errorf("failed to export %s: %w", msg.note.Title, msg.err))
	}

	if err := m.appState.SetLastExportFormat(string(msg.format)); err != nil {
		log.WarningLog.Printf("failed to save export format: %v", err)
	}
	log.InfoLog.Printf("exported %s as %s", msg.note.Path, msg.format)
	return m.setStatus(ui.StatusOK, exportStatus(msg.format, msg.note))
}

func exportStatus(format overlay.ExportFormat, n notes.Note) string {
	switch format {
	case overlay.ExportMarkdown:
		return fmt.Sprintf("Copied %q as markdown", n.Title)
	case overlay.ExportPlain:
		return fmt.Sprintf("Copied %q as plain text", n.Title)
	case overlay.ExportCopyPath:
		return "Copied path to clipboard"
	default:
		return "Copied title to clipboard"
	}
}
