package overlay

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTooltipShowHide(t *testing.T) {
	s := newFakeSurface(Rect(60, 23, 10, 1), Viewport{Width: 80, Height: 24})
	tip := NewTooltip("hint", s)
	assert.False(t, tip.Visible())

	cmd := tip.Show("Export this note (e)")
	require.NotNil(t, cmd)
	assert.True(t, tip.Visible())
	assert.Equal(t, "Export this note (e)", tip.Text())

	p, ok := tip.Placement()
	require.True(t, ok)
	assert.Equal(t, SideAbove, p.Side)
	assert.Equal(t, 80-70, p.Right)
	assert.Equal(t, 24-23+1, *p.Bottom)

	s.measured = Measure(tip.Render())
	assert.Equal(t, 3, s.measured.Height)
	tip.Update(runCmd(cmd))
	assert.Equal(t, PhaseMeasured, tip.Phase())

	tip.Hide()
	assert.False(t, tip.Visible())
	_, ok = tip.Placement()
	assert.False(t, ok)
	assert.Empty(t, s.focusMoves, "tooltips never take focus")
}

func TestTooltipWraps(t *testing.T) {
	s := newFakeSurface(Rect(60, 23, 10, 1), Viewport{Width: 80, Height: 24})
	tip := NewTooltip("hint", s)
	tip.SetWidth(12)
	cmd := tip.Show("Export this note to a file")

	s.measured = Measure(tip.Render())
	assert.Greater(t, s.measured.Height, 3)
	assert.Contains(t, ansi.Strip(tip.Render()), "Export")

	tip.Update(runCmd(cmd))
	p, _ := tip.Placement()
	assert.Equal(t, SideAbove, p.Side)
}
