// Package layout provides responsive layout calculations for the TUI.
package layout

// LayoutMode represents the current layout mode based on terminal dimensions.
type LayoutMode int

const (
	// LayoutFull is for large terminals. The list gets a narrower share of the
	// width and the detail pane shows every field.
	LayoutFull LayoutMode = iota

	// LayoutStandard is the comfortable default with the detail pane.
	LayoutStandard

	// LayoutCompact drops the detail pane and shrinks the footer.
	LayoutCompact

	// LayoutMinimal is for terminals below minimum size.
	LayoutMinimal
)

// String returns the string representation of the layout mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutStandard:
		return "standard"
	case LayoutCompact:
		return "compact"
	case LayoutMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// DetermineMode picks the mode for the given dimensions. The more restrictive
// of the width and height modes wins.
func DetermineMode(width, height int) LayoutMode {
	w := modeFor(width, FullWidth, StandardWidth, MinWidth)
	h := modeFor(height, FullHeight, StandardHeight, MinHeight)
	if w > h {
		return w
	}
	return h
}

func modeFor(v, full, standard, minimum int) LayoutMode {
	switch {
	case v >= full:
		return LayoutFull
	case v >= standard:
		return LayoutStandard
	case v >= minimum:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}
