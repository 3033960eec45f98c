package overlay

// Surface is the host capability the overlay subsystem reads layout from and
// writes focus to. The app implements it against its own layout; tests use
// fakes.
type Surface interface {
	// AnchorRect returns the trigger's current rectangle. ok is false when the
	// trigger is not mounted.
	AnchorRect() (rect AnchorRect, ok bool)
	// ViewportSize returns the current viewport dimensions.
	ViewportSize() Viewport
	// MeasureOverlay returns the rendered overlay size. ok is false before the
	// overlay has been laid out.
	MeasureOverlay() (size Size, ok bool)
	// MoveFocus moves keyboard focus to the overlay item at index.
	MoveFocus(index int)
	// RestoreFocus returns keyboard focus to the trigger. It returns false if
	// the trigger is gone.
	RestoreFocus() bool
}

// ScrollMsg is sent by any scroll container when its content moves. It bubbles
// up to the root model, which forwards it to open overlays.
type ScrollMsg struct {
	// Source names the container that scrolled.
	Source string
}
