package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineMode(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   LayoutMode
	}{
		{"full mode - large terminal", 150, 50, LayoutFull},
		{"full mode - exact thresholds", 140, 45, LayoutFull},
		{"standard mode", 120, 35, LayoutStandard},
		{"standard mode - exact thresholds", 100, 30, LayoutStandard},
		{"compact mode - classic terminal", 80, 24, LayoutCompact},
		{"compact mode - exact minimum", 60, 15, LayoutCompact},
		{"minimal mode - below minimum width", 50, 30, LayoutMinimal},
		{"minimal mode - below minimum height", 100, 10, LayoutMinimal},
		{"wide but short", 150, 20, LayoutCompact}, // height-based
		{"tall but narrow", 70, 60, LayoutCompact}, // width-based
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineMode(tt.width, tt.height)
			assert.Equal(t, tt.want, got, "DetermineMode(%d, %d)", tt.width, tt.height)
		})
	}
}

func TestComputeConstraints(t *testing.T) {
	tests := []struct {
		name           string
		width          int
		height         int
		wantMode       LayoutMode
		wantListWidth  int
		wantListHeight int
		wantDetail     bool
		wantMinWarning bool
	}{
		{"standard terminal", 120, 35, LayoutStandard, 72, 30, true, false},
		{"full terminal", 160, 50, LayoutFull, 88, 45, true, false},
		{"list width is capped", 200, 50, LayoutFull, 90, 45, true, false},
		{"classic terminal has no detail pane", 80, 24, LayoutCompact, 80, 21, false, false},
		{"below minimum", 50, 10, LayoutMinimal, 50, 7, false, true},
		{"no room for content", 50, 2, LayoutMinimal, 50, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComputeConstraints(tt.width, tt.height)
			assert.Equal(t, tt.wantMode, c.Mode)
			assert.Equal(t, tt.wantListWidth, c.ListWidth, "ListWidth")
			assert.Equal(t, tt.wantListHeight, c.ListHeight, "ListHeight")
			assert.Equal(t, tt.wantDetail, c.ShowDetail, "ShowDetail")
			assert.Equal(t, tt.wantMinWarning, c.ShowMinWarning, "ShowMinWarning")

			if c.ShowDetail {
				assert.Equal(t, tt.width, c.ListWidth+c.DetailWidth)
				assert.Equal(t, c.ListHeight, c.DetailHeight)
			} else {
				assert.Zero(t, c.DetailWidth)
			}
			assert.Equal(t, tt.width, c.FooterWidth)
		})
	}
}

func TestConstraintRows(t *testing.T) {
	for _, size := range [][2]int{{80, 24}, {120, 35}, {160, 50}, {60, 15}} {
		c := ComputeConstraints(size[0], size[1])
		assert.Equal(t, c.HeaderHeight, c.ListTop())
		assert.Equal(t, c.ListTop()+c.ListHeight, c.StatusTop())
		assert.Equal(t, size[1], c.FooterTop()+c.FooterHeight, "footer ends on the last row at %v", size)
	}
}

func TestComputeOverlaySize(t *testing.T) {
	tests := []struct {
		name                 string
		termW, termH         int
		prefW, prefH         int
		wantWidth, wantHight int
	}{
		{"preferred fits", 80, 24, 34, 10, 34, 10},
		{"capped by max width", 200, 60, 70, 10, OverlayMaxWidth, 10},
		{"raised to minimum", 200, 60, 5, 1, OverlayMinWidth, OverlayMinHeight},
		{"narrow terminal", 30, 10, 34, 10, 26, 6},
		{"tiny terminal never goes below one cell", 10, 4, 34, 10, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ComputeOverlaySize(tt.termW, tt.termH, tt.prefW, tt.prefH)
			assert.Equal(t, tt.wantWidth, w, "width")
			assert.Equal(t, tt.wantHight, h, "height")
		})
	}
}

func TestComputeDegradation(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		check  func(t *testing.T, d Degradation)
	}{
		{
			name:   "full terminal keeps everything",
			width:  160,
			height: 50,
			check: func(t *testing.T, d Degradation) {
				assert.False(t, d.HideDetail)
				assert.True(t, d.ShouldShowTimestamp())
				assert.False(t, d.SingleLineFooter)
				assert.True(t, d.ShouldShowScrollIndicators())
				assert.False(t, d.CompactHeader)
			},
		},
		{
			name:   "narrow terminal drops timestamps",
			width:  65,
			height: 30,
			check: func(t *testing.T, d Degradation) {
				assert.True(t, d.HideDetail)
				assert.False(t, d.ShouldShowTimestamp())
			},
		},
		{
			name:   "short terminal drops scroll indicators",
			width:  120,
			height: 18,
			check: func(t *testing.T, d Degradation) {
				assert.False(t, d.ShouldShowScrollIndicators())
				assert.True(t, d.SingleLineFooter)
				assert.True(t, d.CompactHeader)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ComputeDegradation(ComputeConstraints(tt.width, tt.height)))
		})
	}
}

func TestLayoutModeString(t *testing.T) {
	assert.Equal(t, "full", LayoutFull.String())
	assert.Equal(t, "standard", LayoutStandard.String())
	assert.Equal(t, "compact", LayoutCompact.String())
	assert.Equal(t, "minimal", LayoutMinimal.String())
	assert.Equal(t, "unknown", LayoutMode(42).String())
}
