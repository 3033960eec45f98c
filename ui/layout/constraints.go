package layout

// Constraints holds the computed layout constraints for all components.
// Rows stack top to bottom: header, list (with the detail pane beside it),
// status line, footer.
type Constraints struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Computed mode
	Mode LayoutMode

	HeaderHeight int

	ListWidth    int
	ListHeight   int
	DetailWidth  int
	DetailHeight int

	StatusHeight int

	FooterWidth  int
	FooterHeight int

	// Layout flags
	ShowDetail     bool
	ShowMinWarning bool // Terminal is below minimum size
}

// ComputeConstraints calculates layout constraints for the given terminal dimensions.
func ComputeConstraints(width, height int) Constraints {
	c := Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
	}

	c.Mode = DetermineMode(width, height)
	if width < MinWidth || height < MinHeight {
		// Still compute a layout for partial display.
		c.ShowMinWarning = true
	}

	c.HeaderHeight = HeaderHeight
	if c.Mode >= LayoutCompact {
		c.HeaderHeight = HeaderHeightCompact
	}
	c.StatusHeight = StatusHeight
	c.FooterHeight = computeFooterHeight(c.Mode)
	c.FooterWidth = width

	contentHeight := max(height-c.HeaderHeight-c.StatusHeight-c.FooterHeight, 0)

	c.ShowDetail = width >= DetailMinTerminalWidth && c.Mode != LayoutMinimal
	if c.ShowDetail {
		c.ListWidth = computeListWidth(width, c.Mode)
		c.DetailWidth = width - c.ListWidth
		c.DetailHeight = contentHeight
	} else {
		c.ListWidth = width
	}
	c.ListHeight = contentHeight

	return c
}

// ListTop is the first terminal row of the note list.
func (c Constraints) ListTop() int {
	return c.HeaderHeight
}

// StatusTop is the row of the status line.
func (c Constraints) StatusTop() int {
	return c.HeaderHeight + c.ListHeight
}

// FooterTop is the first row of the footer.
func (c Constraints) FooterTop() int {
	return c.StatusTop() + c.StatusHeight
}

// computeListWidth calculates the list pane width when the detail pane is shown.
func computeListWidth(totalWidth int, mode LayoutMode) int {
	var targetPercent float32
	switch mode {
	case LayoutFull:
		targetPercent = 0.55
	default:
		targetPercent = 0.60
	}

	computed := int(float32(totalWidth) * targetPercent)
	return clamp(computed, ListMinWidth, ListMaxWidth)
}

// computeFooterHeight calculates the footer height based on mode.
func computeFooterHeight(mode LayoutMode) int {
	switch mode {
	case LayoutFull, LayoutStandard:
		return FooterStandardHeight
	default:
		return FooterMinHeight
	}
}

// ComputeOverlaySize calculates constrained overlay dimensions.
func ComputeOverlaySize(termWidth, termHeight int, preferredWidth, preferredHeight int) (int, int) {
	maxW := termWidth - OverlayMargin*2
	maxH := termHeight - OverlayMargin*2

	w := clamp(preferredWidth, OverlayMinWidth, min(maxW, OverlayMaxWidth))
	h := clamp(preferredHeight, OverlayMinHeight, min(maxH, OverlayMaxHeight))

	return max(w, 1), max(h, 1)
}

// Helper functions

// clamp bounds value to [minVal, maxVal]. When the range is empty maxVal
// wins, so a tiny terminal never gets a panel wider than itself.
func clamp(value, minVal, maxVal int) int {
	if value > maxVal {
		return maxVal
	}
	if value < minVal {
		return min(minVal, maxVal)
	}
	return value
}
