// Package harness provides test utilities for Bubble Tea models.
// It wraps models and provides methods for simulating user input.
package harness

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// cmdTimeout bounds how long Drain waits for a single command. Commands that
// block longer, like tickers or file watchers, are dropped.
const cmdTimeout = 50 * time.Millisecond

// maxDrainSteps stops Drain from looping on commands that keep producing
// more commands.
const maxDrainSteps = 64

// Harness wraps a tea.Model for testing
type Harness struct {
	t      *testing.T
	model  tea.Model
	width  int
	height int
}

// New creates a new Harness for testing the given model. Rendering uses the
// ASCII color profile so views can be compared as plain text.
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	lipgloss.SetColorProfile(termenv.Ascii)
	h := &Harness{
		t:      t,
		model:  model,
		width:  width,
		height: height,
	}
	// Initialize with window size
	h.Drain(h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height}))
	return h
}

// SendMsg sends a tea.Msg to the model and updates it
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// Send delivers msg and then drains the resulting commands.
func (h *Harness) Send(msg tea.Msg) {
	h.Drain(h.SendMsg(msg))
}

// Drain runs cmd and feeds every message it produces back into the model,
// the way the Bubble Tea runtime would. Batches are expanded; commands that do
// not return within a short timeout are dropped.
func (h *Harness) Drain(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxDrainSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := runWithTimeout(next)
		if !ok || msg == nil {
			continue
		}
		if batch, isBatch := msg.(tea.BatchMsg); isBatch {
			queue = append(queue, batch...)
			continue
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			continue
		}
		queue = append(queue, h.SendMsg(msg))
	}
}

func runWithTimeout(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// SendKey sends a key press message
func (h *Harness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a special key (Enter, Tab, etc.)
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// PressKey sends a rune key and drains the resulting commands.
func (h *Harness) PressKey(key string) {
	h.Drain(h.SendKey(key))
}

// PressSpecial sends a special key and drains the resulting commands.
func (h *Harness) PressSpecial(keyType tea.KeyType) {
	h.Drain(h.SendSpecialKey(keyType))
}

// Wheel scrolls the mouse wheel at (x, y). Positive steps scroll down.
func (h *Harness) Wheel(x, y, steps int) {
	button := tea.MouseButtonWheelDown
	if steps < 0 {
		button = tea.MouseButtonWheelUp
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
	}
}

// Click presses and releases the left mouse button at (x, y).
func (h *Harness) Click(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

// Resize simulates a terminal resize
func (h *Harness) Resize(width, height int) tea.Cmd {
	h.width = width
	h.height = height
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View returns the current rendered view
func (h *Harness) View() string {
	return h.model.View()
}

// Model returns the underlying model (for type assertions)
func (h *Harness) Model() tea.Model {
	return h.model
}

// Width returns the current width
func (h *Harness) Width() int {
	return h.width
}

// Height returns the current height
func (h *Harness) Height() int {
	return h.height
}

// CommonSizes contains common terminal sizes for testing
var CommonSizes = []TerminalSize{
	{Name: "minimum", Width: 80, Height: 24},
	{Name: "compact", Width: 100, Height: 30},
	{Name: "standard", Width: 120, Height: 40},
	{Name: "large", Width: 200, Height: 50},
	{Name: "wide", Width: 200, Height: 24},
	{Name: "tall", Width: 80, Height: 60},
}

// TerminalSize represents a terminal size for testing
type TerminalSize struct {
	Name   string
	Width  int
	Height int
}

// RunWithSizes runs a test function for each terminal size
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs a test function for all common terminal sizes
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}

// KeySequence represents a sequence of key presses
type KeySequence []tea.Msg

// NewKeySequence creates a key sequence from string input. The names "up",
// "down", "tab", "shift+tab", "enter" and "esc" become special keys.
func NewKeySequence(keys ...string) KeySequence {
	var seq KeySequence
	for _, key := range keys {
		switch key {
		case "up":
			seq = append(seq, tea.KeyMsg{Type: tea.KeyUp})
		case "down":
			seq = append(seq, tea.KeyMsg{Type: tea.KeyDown})
		case "tab":
			seq = append(seq, tea.KeyMsg{Type: tea.KeyTab})
		case "shift+tab":
			seq = append(seq, tea.KeyMsg{Type: tea.KeyShiftTab})
		case "enter":
			seq = append(seq, tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			seq = append(seq, tea.KeyMsg{Type: tea.KeyEsc})
		default:
			seq = append(seq, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		}
	}
	return seq
}

// Play sends all messages in the sequence to the harness, draining the
// commands each one produces.
func (seq KeySequence) Play(h *Harness) {
	for _, msg := range seq {
		h.Send(msg)
	}
}
