package overlay

import (
	"errors"
	"fmt"
)

// ErrFocusHeld is returned when another overlay already owns keyboard focus.
var ErrFocusHeld = errors.New("focus pointer already held")

// FocusPointer is the single keyboard-focus owner shared by every overlay in a
// program. An overlay acquires it when it opens and releases it when it
// closes; while held, no other overlay may claim it.
type FocusPointer struct {
	owner string
}

// NewFocusPointer creates an unowned focus pointer.
func NewFocusPointer() *FocusPointer {
	return &FocusPointer{}
}

// Acquire claims the pointer for owner. Re-acquiring by the current owner is
// allowed.
func (f *FocusPointer) Acquire(owner string) error {
	if f.owner != "" && f.owner != owner {
		return fmt.Errorf("%w by %q", ErrFocusHeld, f.owner)
	}
	f.owner = owner
	return nil
}

// Release gives the pointer back to the page. Releasing a pointer held by
// someone else is a no-op.
func (f *FocusPointer) Release(owner string) {
	if f.owner == owner {
		f.owner = ""
	}
}

// Owner returns the current owner, or "" when focus belongs to the page.
func (f *FocusPointer) Owner() string {
	return f.owner
}

// Held reports whether an overlay owns the pointer.
func (f *FocusPointer) Held() bool {
	return f.owner != ""
}
