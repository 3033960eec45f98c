package overlay

import (
	"encoding/json"
	"fmt"
)

// Side is the vertical side of the anchor an overlay opens on.
type Side int

const (
	SideAbove Side = iota
	SideBelow
)

// String returns the string representation of the side.
func (s Side) String() string {
	switch s {
	case SideAbove:
		return "above"
	case SideBelow:
		return "below"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "above":
		*s = SideAbove
	case "below":
		*s = SideBelow
	default:
		return fmt.Errorf("invalid side %q", string(b))
	}
	return nil
}

// AnchorRect is the trigger's bounding box in viewport cells.
type AnchorRect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect builds an AnchorRect from an origin and a size.
func Rect(x, y, width, height int) AnchorRect {
	return AnchorRect{
		Top:    y,
		Left:   x,
		Right:  x + width,
		Bottom: y + height,
		Width:  width,
		Height: height,
	}
}

// Size is an overlay's extent, either estimated or measured.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Viewport is the visible area the overlay must fit into.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Gaps are the fixed distances between the anchor and the overlay.
// Above is also the margin added to the overlay height when checking fit.
type Gaps struct {
	Above int `json:"above"`
	Below int `json:"below"`
}

// DefaultGaps are the gaps in logical pixels.
var DefaultGaps = Gaps{Above: 24, Below: 16}

// TerminalGaps are the gaps in terminal cells.
var TerminalGaps = Gaps{Above: 1, Below: 1}

// Placement is where an overlay is painted. Exactly one of Top and Bottom is
// set, matching Side. The overlay's right edge is Right cells from the
// viewport's right edge.
type Placement struct {
	Side   Side `json:"side"`
	Top    *int `json:"top,omitempty"`
	Bottom *int `json:"bottom,omitempty"`
	Right  int  `json:"right"`
}

// VerticalAnchor returns whichever of Top or Bottom is set.
func (p Placement) VerticalAnchor() int {
	if p.Top != nil {
		return *p.Top
	}
	if p.Bottom != nil {
		return *p.Bottom
	}
	return 0
}

// Equal reports whether two placements describe the same position.
func (p Placement) Equal(o Placement) bool {
	if p.Side != o.Side || p.Right != o.Right {
		return false
	}
	return intPtrEqual(p.Top, o.Top) && intPtrEqual(p.Bottom, o.Bottom)
}

// String returns a compact description used in traces.
func (p Placement) String() string {
	data, err := json.Marshal(p)
	if err != nil {
		return p.Side.String()
	}
	return string(data)
}

// ComputePlacement picks the side of the anchor with room for the overlay.
// Above wins when it fits, then below; when neither fits the side with strictly
// more space wins and a tie goes above.
func ComputePlacement(anchor AnchorRect, size Size, viewport Viewport, gaps Gaps) Placement {
	spaceAbove := anchor.Top
	spaceBelow := viewport.Height - anchor.Bottom
	needed := size.Height + gaps.Above

	var side Side
	switch {
	case spaceAbove >= needed:
		side = SideAbove
	case spaceBelow >= needed:
		side = SideBelow
	case spaceBelow > spaceAbove:
		side = SideBelow
	default:
		side = SideAbove
	}
	return PlaceOnSide(side, anchor, viewport, gaps)
}

// PlaceOnSide computes the coordinates for a side that has already been chosen.
func PlaceOnSide(side Side, anchor AnchorRect, viewport Viewport, gaps Gaps) Placement {
	p := Placement{
		Side:  side,
		Right: viewport.Width - anchor.Right,
	}
	if side == SideAbove {
		bottom := viewport.Height - anchor.Top + gaps.Above
		p.Bottom = &bottom
	} else {
		top := anchor.Bottom + gaps.Below
		p.Top = &top
	}
	return p
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
