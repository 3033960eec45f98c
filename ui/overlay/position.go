package overlay

import (
	"sync/atomic"

	"notedeck/log"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is where an open overlay is in its two-pass placement protocol.
type Phase int

const (
	// PhaseIdle means the overlay is closed and has no placement.
	PhaseIdle Phase = iota
	// PhaseEstimated means the placement was computed from the estimated size.
	PhaseEstimated
	// PhaseMeasured means the rendered size has been read back.
	PhaseMeasured
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEstimated:
		return "estimated"
	case PhaseMeasured:
		return "measured"
	default:
		return "unknown"
	}
}

// measureMsg is the deferred second pass scheduled by Activate. It carries the
// controller id and generation so a closed or re-opened overlay ignores it.
type measureMsg struct {
	controller int64
	generation int
}

var controllerIDs atomic.Int64

// PositionOption configures a PositionController.
type PositionOption func(*PositionController)

// WithGaps sets the anchor/overlay gaps.
func WithGaps(g Gaps) PositionOption {
	return func(c *PositionController) {
		c.gaps = g
	}
}

// WithRowHeight sets the per-item height used for the size estimate.
func WithRowHeight(h int) PositionOption {
	return func(c *PositionController) {
		if h > 0 {
			c.rowHeight = h
		}
	}
}

// WithChrome sets the fixed height the panel adds around its items (border,
// padding, title).
func WithChrome(h int) PositionOption {
	return func(c *PositionController) {
		if h >= 0 {
			c.chrome = h
		}
	}
}

// PositionController owns when an overlay's placement is recomputed: on
// activation with an estimated size, once more with the measured size, and on
// every resize or scroll while the overlay is open.
type PositionController struct {
	id      int64
	name    string
	surface Surface

	gaps      Gaps
	rowHeight int
	chrome    int

	// subscribed is true while the overlay is open. Resize and scroll
	// messages are ignored otherwise.
	subscribed bool
	generation int
	phase      Phase

	estimate Size
	measured Size

	placement    Placement
	hasPlacement bool

	// lastAnchor and lastViewport are the layout the placement was computed
	// from. The side only changes when one of them moves.
	lastAnchor   AnchorRect
	lastViewport Viewport

	trace *log.ComponentTrace
}

// NewPositionController creates a controller that reads layout from surface.
func NewPositionController(name string, surface Surface, opts ...PositionOption) *PositionController {
	c := &PositionController{
		id:        controllerIDs.Add(1),
		name:      name,
		surface:   surface,
		gaps:      TerminalGaps,
		rowHeight: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Estimate returns the size assumed before the overlay has been measured.
func (c *PositionController) Estimate(itemCount int) Size {
	if itemCount < 0 {
		itemCount = 0
	}
	return Size{Height: c.rowHeight*itemCount + c.chrome}
}

// Activate starts a new open cycle. The estimated placement is computed
// immediately; the returned command delivers the measured pass.
func (c *PositionController) Activate(itemCount int) tea.Cmd {
	c.generation++
	c.subscribed = true
	c.phase = PhaseEstimated
	c.estimate = c.Estimate(itemCount)
	c.measured = Size{}
	c.hasPlacement = false
	c.trace = log.TraceComponent("position:" + c.name)
	c.trace.Event("activate", c.estimate)

	c.recompute()

	msg := measureMsg{controller: c.id, generation: c.generation}
	return func() tea.Msg { return msg }
}

// Deactivate detaches the controller. A measure pass still in flight becomes a
// no-op and the placement is discarded.
func (c *PositionController) Deactivate() {
	if !c.subscribed && c.phase == PhaseIdle {
		return
	}
	c.subscribed = false
	c.generation++
	c.phase = PhaseIdle
	c.hasPlacement = false
	c.placement = Placement{}
	c.trace.Event("deactivate")
	c.trace = nil
}

// Active reports whether the controller is subscribed to layout events.
func (c *PositionController) Active() bool {
	return c.subscribed
}

// Phase returns the current placement phase.
func (c *PositionController) Phase() Phase {
	return c.phase
}

// Placement returns the latest placement. ok is false when the overlay is
// closed or the anchor has never been available during this cycle.
func (c *PositionController) Placement() (Placement, bool) {
	return c.placement, c.hasPlacement
}

// Update reacts to layout events. It returns true when the placement changed.
func (c *PositionController) Update(msg tea.Msg) bool {
	if !c.subscribed {
		return false
	}

	switch msg := msg.(type) {
	case measureMsg:
		if msg.controller != c.id || msg.generation != c.generation {
			return false
		}
		return c.applyMeasured()
	case tea.WindowSizeMsg:
		return c.recompute()
	case ScrollMsg:
		return c.recompute()
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress &&
			(msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
			return c.recompute()
		}
	}
	return false
}

// Recompute runs the calculator against the current layout.
func (c *PositionController) Recompute() bool {
	if !c.subscribed {
		return false
	}
	return c.recompute()
}

func (c *PositionController) size() Size {
	if c.phase == PhaseMeasured {
		return c.measured
	}
	return c.estimate
}

func (c *PositionController) recompute() bool {
	anchor, ok := c.surface.AnchorRect()
	if !ok {
		log.OverlayTrace(c.name, "anchor not mounted, skipping recompute")
		return false
	}
	vp := c.surface.ViewportSize()
	if c.hasPlacement && anchor == c.lastAnchor && vp == c.lastViewport {
		return false
	}
	c.lastAnchor, c.lastViewport = anchor, vp
	return c.store(ComputePlacement(anchor, c.size(), vp, c.gaps))
}

func (c *PositionController) applyMeasured() bool {
	size, ok := c.surface.MeasureOverlay()
	if !ok {
		return false
	}
	c.phase = PhaseMeasured
	c.measured = size
	c.trace.Event("measured", size)
	if size.Height == c.estimate.Height || !c.hasPlacement {
		return false
	}

	// The side chosen by the estimate pass holds for the rest of the open
	// cycle unless the anchor or the viewport moves. The measured size takes
	// over for those later passes.
	anchor, ok := c.surface.AnchorRect()
	if !ok {
		return false
	}
	vp := c.surface.ViewportSize()
	c.lastAnchor, c.lastViewport = anchor, vp
	return c.store(PlaceOnSide(c.placement.Side, anchor, vp, c.gaps))
}

func (c *PositionController) store(p Placement) bool {
	if c.hasPlacement && p.Equal(c.placement) {
		return false
	}
	c.placement = p
	c.hasPlacement = true
	log.OverlayTrace(c.name, "%s placement %s", c.phase, p)
	return true
}
