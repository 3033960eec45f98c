package ui

import (
	"errors"
	"strings"
	"testing"

	"notedeck/testing/snapshot"

	"github.com/stretchr/testify/assert"
)

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name string
		kind StatusKind
		text string
		want string
	}{
		{"info", StatusInfo, "Reloaded", " Reloaded"},
		{"ok", StatusOK, "Copied path", " + Copied path"},
		{"warn", StatusWarn, "No matches", " ! No matches"},
		{"error", StatusErr, "boom", " × boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatusLine()
			s.SetSize(40)
			s.Set(tt.kind, tt.text)

			out := s.String()
			assert.Equal(t, 40, snapshot.Width(out))
			assert.Equal(t, tt.want, strings.TrimRight(snapshot.StripANSI(out), " "))
		})
	}
}

func TestStatusLineTruncatesAndClears(t *testing.T) {
	s := NewStatusLine()
	s.SetSize(10)
	s.SetError(errors.New("a very long failure message"))

	out := s.String()
	assert.Equal(t, 1, snapshot.Lines(out))
	assert.LessOrEqual(t, snapshot.Width(out), 10)
	assert.Contains(t, snapshot.StripANSI(out), "…")

	s.Clear()
	assert.Equal(t, "", s.Text())
	assert.Equal(t, strings.Repeat(" ", 10), snapshot.StripANSI(s.String()))
}
