package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClassicTerminal80x24 verifies all behavior at the classic terminal size,
// where the export menu has the least room to open above a low row.
func TestClassicTerminal80x24(t *testing.T) {
	width := 80
	height := 24

	t.Run("mode is compact", func(t *testing.T) {
		assert.Equal(t, LayoutCompact, DetermineMode(width, height))
	})

	t.Run("constraints are valid", func(t *testing.T) {
		c := ComputeConstraints(width, height)

		assert.False(t, c.ShowMinWarning, "80x24 should not show warning")
		assert.False(t, c.ShowDetail, "80x24 has no room for the detail pane")

		assert.Positive(t, c.ListWidth, "ListWidth")
		assert.Positive(t, c.ListHeight, "ListHeight")
		assert.Positive(t, c.FooterHeight, "FooterHeight")

		totalHeight := c.HeaderHeight + c.ListHeight + c.StatusHeight + c.FooterHeight
		assert.Equal(t, height, totalHeight, "rows should fill the terminal")
	})

	t.Run("degradation flags are set correctly", func(t *testing.T) {
		d := ComputeDegradation(ComputeConstraints(width, height))

		// At 80x24:
		// - width 80 < 100: HideDetail = true
		// - width 80 >= 70: timestamps stay
		// - compact mode: SingleLineFooter = true, CompactHeader = true
		// - height 24 >= 20: scroll indicators stay
		assert.True(t, d.HideDetail)
		assert.True(t, d.ShouldShowTimestamp())
		assert.True(t, d.SingleLineFooter)
		assert.True(t, d.CompactHeader)
		assert.True(t, d.ShouldShowScrollIndicators())
		assert.False(t, d.ShowMinWarning)
	})

	t.Run("export menu fits", func(t *testing.T) {
		w, h := ComputeOverlaySize(width, height, 34, 10)
		assert.Equal(t, 34, w)
		assert.Equal(t, 10, h)
	})
}
