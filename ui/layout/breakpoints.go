package layout

// Width breakpoints
const (
	// MinWidth is the narrowest terminal the browser lays out normally.
	MinWidth = 60

	// StandardWidth is the threshold for standard layout.
	StandardWidth = 100

	// FullWidth is the threshold for full layout.
	FullWidth = 140
)

// Height breakpoints
const (
	// MinHeight is the shortest terminal the browser lays out normally.
	MinHeight = 15

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 30

	// FullHeight is the threshold for full layout.
	FullHeight = 45
)

// List and detail panes
const (
	// ListMinWidth is the minimum width of the note list when the detail pane
	// is shown next to it.
	ListMinWidth = 40

	// ListMaxWidth stops the list from stretching on very wide terminals.
	ListMaxWidth = 90

	// DetailMinTerminalWidth is the terminal width at which the detail pane
	// appears.
	DetailMinTerminalWidth = 100
)

// Fixed rows
const (
	// HeaderHeight is the title plus a blank line.
	HeaderHeight = 2

	// HeaderHeightCompact drops the blank line.
	HeaderHeightCompact = 1

	// StatusHeight is the status/error line above the footer.
	StatusHeight = 1

	// FooterMinHeight is the key hint line alone.
	FooterMinHeight = 1

	// FooterStandardHeight adds a rule above the hints.
	FooterStandardHeight = 2
)

// Overlay constraints
const (
	// OverlayMaxWidth is the maximum overlay width.
	OverlayMaxWidth = 48

	// OverlayMaxHeight is the maximum overlay height.
	OverlayMaxHeight = 20

	// OverlayMinWidth is the minimum overlay width.
	OverlayMinWidth = 20

	// OverlayMinHeight is the minimum overlay height.
	OverlayMinHeight = 3

	// OverlayMargin is the minimum margin from terminal edges.
	OverlayMargin = 2
)
