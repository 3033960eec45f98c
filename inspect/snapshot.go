package inspect

import (
	"fmt"
	"strings"
	"time"

	"notedeck/ui/layout"
	"notedeck/ui/overlay"
)

// Snapshot represents a complete UI state at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	// Terminal contains terminal dimensions.
	Terminal TerminalInfo `json:"terminal"`

	// AppState contains application state information.
	AppState AppStateInfo `json:"app_state"`

	// Layout contains layout configuration.
	Layout LayoutInfo `json:"layout"`

	// Overlays lists every overlay the app owns, open or not.
	Overlays []OverlayInfo `json:"overlays"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`

	// Breakpoints contains information about responsive breakpoints.
	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// Focus names the component holding keyboard focus ("list", "footer",
	// "menu", "filter").
	Focus string `json:"focus"`

	// NoteCount is the number of notes shown after filtering.
	NoteCount int `json:"note_count"`

	// SelectedIndex is the currently selected note index.
	SelectedIndex int `json:"selected_index"`

	// Filter is the active list filter.
	Filter string `json:"filter,omitempty"`

	// ErrorMessage is the current error message if any.
	ErrorMessage string `json:"error_message,omitempty"`
}

// OverlayInfo describes one overlay's positioning and focus state.
type OverlayInfo struct {
	Name  string `json:"name"`
	Open  bool   `json:"open"`
	Phase string `json:"phase"`

	// Placement is nil while the overlay is closed.
	Placement *overlay.Placement `json:"placement,omitempty"`

	// FocusedIndex is -1 when no item has focus.
	FocusedIndex int `json:"focused_index"`
}

// LayoutInfo contains layout configuration.
type LayoutInfo struct {
	// Mode is the current layout mode.
	Mode string `json:"mode"`

	// ListTop is the first row of the list.
	ListTop int `json:"list_top"`

	ListWidth    int `json:"list_width"`
	ListHeight   int `json:"list_height"`
	DetailWidth  int `json:"detail_width"`
	DetailHeight int `json:"detail_height"`

	// FooterTop is the first row of the footer.
	FooterTop    int `json:"footer_top"`
	FooterHeight int `json:"footer_height"`

	// Degradation contains active degradation flags.
	Degradation DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active UI degradation flags.
type DegradationInfo struct {
	HideDetail           bool `json:"hide_detail"`
	HideTimestamps       bool `json:"hide_timestamps"`
	SingleLineFooter     bool `json:"single_line_footer"`
	HideScrollIndicators bool `json:"hide_scroll_indicators"`
	CompactHeader        bool `json:"compact_header"`
	ShowMinWarning       bool `json:"show_min_warning"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	// Name is the breakpoint name.
	Name string `json:"name"`

	// Threshold is the dimension threshold.
	Threshold int `json:"threshold"`

	// Active indicates if this breakpoint is currently triggered.
	Active bool `json:"active"`

	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithAppState sets the application state.
func (s *Snapshot) WithAppState(state AppStateInfo) *Snapshot {
	s.AppState = state
	return s
}

// WithLayout sets layout info from constraints and degradation.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:         c.Mode.String(),
		ListTop:      c.ListTop(),
		ListWidth:    c.ListWidth,
		ListHeight:   c.ListHeight,
		DetailWidth:  c.DetailWidth,
		DetailHeight: c.DetailHeight,
		FooterTop:    c.FooterTop(),
		FooterHeight: c.FooterHeight,
		Degradation: DegradationInfo{
			HideDetail:           d.HideDetail,
			HideTimestamps:       d.HideTimestamps,
			SingleLineFooter:     d.SingleLineFooter,
			HideScrollIndicators: d.HideScrollIndicators,
			CompactHeader:        d.CompactHeader,
			ShowMinWarning:       d.ShowMinWarning,
		},
	}

	s.Breakpoints = []BreakpointInfo{
		{Name: "hide_detail", Threshold: layout.DetailMinTerminalWidth, Active: d.HideDetail, Dimension: "width"},
		{Name: "hide_timestamps", Threshold: layout.TimestampHideWidth, Active: d.HideTimestamps, Dimension: "width"},
		{Name: "hide_scroll_indicators", Threshold: layout.ScrollIndicatorHeight, Active: d.HideScrollIndicators, Dimension: "height"},
		{Name: "compact_width", Threshold: layout.StandardWidth, Active: c.TerminalWidth < layout.StandardWidth, Dimension: "width"},
		{Name: "compact_height", Threshold: layout.StandardHeight, Active: c.TerminalHeight < layout.StandardHeight, Dimension: "height"},
		{Name: "min_width", Threshold: layout.MinWidth, Active: c.TerminalWidth < layout.MinWidth, Dimension: "width"},
		{Name: "min_height", Threshold: layout.MinHeight, Active: c.TerminalHeight < layout.MinHeight, Dimension: "height"},
	}

	return s
}

// AddOverlay records an overlay's state.
func (s *Snapshot) AddOverlay(name string, open bool, phase overlay.Phase, p overlay.Placement, placed bool, focused int, hasFocus bool) *Snapshot {
	info := OverlayInfo{
		Name:         name,
		Open:         open,
		Phase:        phase.String(),
		FocusedIndex: -1,
	}
	if placed {
		info.Placement = &p
	}
	if hasFocus {
		info.FocusedIndex = focused
	}
	s.Overlays = append(s.Overlays, info)
	return s
}

// Overlay returns the recorded state of the named overlay.
func (s *Snapshot) Overlay(name string) (OverlayInfo, bool) {
	for _, o := range s.Overlays {
		if o.Name == name {
			return o, true
		}
	}
	return OverlayInfo{}, false
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	b.WriteString(fmt.Sprintf("Focus: %s\n", s.AppState.Focus))

	b.WriteString("\n--- Layout ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s\n", s.Layout.Mode))
	b.WriteString(fmt.Sprintf("List: %dx%d at row %d\n", s.Layout.ListWidth, s.Layout.ListHeight, s.Layout.ListTop))
	b.WriteString(fmt.Sprintf("Detail: %dx%d\n", s.Layout.DetailWidth, s.Layout.DetailHeight))
	b.WriteString(fmt.Sprintf("Footer: %d rows at row %d\n", s.Layout.FooterHeight, s.Layout.FooterTop))

	b.WriteString("\n--- Overlays ---\n")
	for _, o := range s.Overlays {
		state := "closed"
		if o.Open {
			state = "open"
		}
		b.WriteString(fmt.Sprintf("  %s: %s, %s", o.Name, state, o.Phase))
		if o.Placement != nil {
			b.WriteString(" " + o.Placement.String())
		}
		if o.FocusedIndex >= 0 {
			b.WriteString(fmt.Sprintf(" focus=%d", o.FocusedIndex))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%d,%d %dx%d)", node.Bounds.X, node.Bounds.Y, node.Bounds.Width, node.Bounds.Height))
	if !node.Visible {
		b.WriteString(" hidden")
	}

	if node.Truncated != nil {
		b.WriteString(fmt.Sprintf(" TRUNCATED(%d->%d)",
			node.Truncated.OriginalLength,
			node.Truncated.DisplayLength))
	}

	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
