package layout

// Degradation holds flags indicating which UI features should be hidden or simplified.
// Features are listed in order of degradation priority (first to hide).
type Degradation struct {
	HideDetail           bool // No detail pane beside the list (width < 100)
	HideTimestamps       bool // Drop the relative time column (width < 70)
	SingleLineFooter     bool // Key hints without the rule above them
	HideScrollIndicators bool // Remove "more above/below" hints (height < 20)
	CompactHeader        bool // Title without the blank line below it

	ShowMinWarning bool // Terminal too small warning (below MinWidth/MinHeight)
}

// Threshold constants for degradation
const (
	TimestampHideWidth    = 70
	ScrollIndicatorHeight = 20
)

// ComputeDegradation calculates which UI features should be degraded.
func ComputeDegradation(c Constraints) Degradation {
	return Degradation{
		HideDetail:           !c.ShowDetail,
		HideTimestamps:       c.TerminalWidth < TimestampHideWidth,
		SingleLineFooter:     c.FooterHeight < FooterStandardHeight,
		HideScrollIndicators: c.TerminalHeight < ScrollIndicatorHeight,
		CompactHeader:        c.HeaderHeight < HeaderHeight,
		ShowMinWarning:       c.ShowMinWarning,
	}
}

// ShouldShowTimestamp returns true if list rows carry their modified time.
func (d Degradation) ShouldShowTimestamp() bool {
	return !d.HideTimestamps
}

// ShouldShowScrollIndicators returns true if the list marks hidden rows.
func (d Degradation) ShouldShowScrollIndicators() bool {
	return !d.HideScrollIndicators
}
