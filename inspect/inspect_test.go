package inspect

import (
	"path/filepath"
	"testing"

	"notedeck/ui/layout"
	"notedeck/ui/overlay"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	c := layout.ComputeConstraints(80, 24)
	d := layout.ComputeDegradation(c)
	bottom := 5
	p := overlay.Placement{Side: overlay.SideAbove, Bottom: &bottom, Right: 0}

	snap := NewSnapshot().
		WithTerminal(80, 24).
		WithAppState(AppStateInfo{Focus: "menu", NoteCount: 3, SelectedIndex: 2}).
		WithLayout(c, d).
		AddOverlay("export", true, overlay.PhaseMeasured, p, true, 1, true).
		AddOverlay("tooltip", false, overlay.PhaseIdle, overlay.Placement{}, false, 0, false).
		WithComponents(NewNode("App").AddChild(NewNode("NoteList").WithRect(overlay.Rect(0, 1, 80, 21))))

	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, WriteSnapshotToPath(snap, path))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, "compact", got.Layout.Mode)
	assert.True(t, got.Layout.Degradation.HideDetail)

	export, ok := got.Overlay("export")
	require.True(t, ok)
	assert.Equal(t, "measured", export.Phase)
	require.NotNil(t, export.Placement)
	assert.True(t, p.Equal(*export.Placement))
	assert.Equal(t, 1, export.FocusedIndex)

	tooltip, ok := got.Overlay("tooltip")
	require.True(t, ok)
	assert.Nil(t, tooltip.Placement)
	assert.Equal(t, -1, tooltip.FocusedIndex)

	_, ok = got.Overlay("missing")
	assert.False(t, ok)

	list := got.Components.Find("NoteList")
	require.NotNil(t, list)
	assert.Equal(t, Bounds{X: 0, Y: 1, Width: 80, Height: 21}, list.Bounds)
}

func TestSnapshotToText(t *testing.T) {
	c := layout.ComputeConstraints(120, 40)
	top := 4
	text := NewSnapshot().
		WithTerminal(120, 40).
		WithLayout(c, layout.ComputeDegradation(c)).
		AddOverlay("export", true, overlay.PhaseEstimated, overlay.Placement{Side: overlay.SideBelow, Top: &top}, true, 0, true).
		WithComponents(NewNode("App").AddChild(NewNode("Footer").WithID("footer").WithVisible(false))).
		ToText()

	assert.Contains(t, text, "Terminal: 120x40")
	assert.Contains(t, text, "Mode: standard")
	assert.Contains(t, text, "export: open, estimated")
	assert.Contains(t, text, `"side":"below"`)
	assert.Contains(t, text, "focus=0")
	assert.Contains(t, text, "Footer [footer]")
	assert.Contains(t, text, "hidden")
}

func TestExtractStyleInfo(t *testing.T) {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	info := ExtractStyleInfo(style, "menu")
	assert.Equal(t, "62", info.Foreground)
	assert.True(t, info.Bold)
	assert.Equal(t, "rounded", info.Border)
	assert.Equal(t, "241", info.BorderColor)
	assert.Equal(t, []int{0, 1, 0, 1}, info.Padding)
	assert.Equal(t, []string{"menu"}, info.AppliedStyles)

	plain := ExtractStyleInfo(lipgloss.NewStyle())
	assert.Empty(t, plain.Border)
	assert.Nil(t, plain.Padding)
}

func TestWriteSnapshotDisabled(t *testing.T) {
	if IsEnabled() {
		t.Skip("inspection enabled in the environment")
	}
	assert.NoError(t, WriteSnapshot(NewSnapshot()))
	assert.Equal(t, "", GetInspectFile())
}
