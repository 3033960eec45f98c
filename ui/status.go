package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// StatusKind selects the icon and color of a status message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusWarn
	StatusErr
)

// StatusLine is the single row above the footer that shows the outcome of the
// last action.
type StatusLine struct {
	width int
	kind  StatusKind
	text  string
}

func NewStatusLine() *StatusLine {
	return &StatusLine{}
}

func (s *StatusLine) SetSize(width int) {
	s.width = width
}

// Set replaces the message.
func (s *StatusLine) Set(kind StatusKind, text string) {
	s.kind = kind
	s.text = text
}

// SetError shows err as an error message.
func (s *StatusLine) SetError(err error) {
	s.Set(StatusErr, err.Error())
}

func (s *StatusLine) Clear() {
	s.text = ""
}

// Text returns the current message without styling.
func (s *StatusLine) Text() string {
	return s.text
}

func (s *StatusLine) String() string {
	if s.text == "" || s.width <= 0 {
		return lipgloss.NewStyle().Width(max(s.width, 0)).Render("")
	}

	var line string
	switch s.kind {
	case StatusOK:
		line = StatusStyles.Success.Render(IconSuccess + " " + s.text)
	case StatusWarn:
		line = StatusStyles.Warning.Render(IconWarning + " " + s.text)
	case StatusErr:
		line = StatusStyles.Error.Render(IconError + " " + s.text)
	default:
		line = TextStyles.Secondary.Render(s.text)
	}
	line = truncate.StringWithTail(" "+line, uint(s.width), "…")
	return lipgloss.NewStyle().Width(s.width).MaxHeight(1).Render(line)
}
