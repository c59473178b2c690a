package everytime

import "context"

// TimeField names one of the four time select boxes in a slot sub-section.
type TimeField string

const (
	StartHour   TimeField = "starthour"
	StartMinute TimeField = "startminute"
	EndHour     TimeField = "endhour"
	EndMinute   TimeField = "endminute"
)

// ControlSurface is the custom-subject form reduced to capabilities. The
// replay protocol only ever talks to this interface, so the chromedp-backed
// Form can be swapped for anything that can poke the same controls.
//
// Slot arguments are 0-based indices into the form's slot sub-sections.
type ControlSurface interface {
	// Open makes the form visible. Calling it while the form is already
	// open is a no-op.
	Open(ctx context.Context) error
	// SetField writes a top-level free-text field ("name", "professor")
	// and signals the change as if typed.
	SetField(ctx context.Context, name, value string) error
	// SlotCount reports how many slot sub-sections the form currently has.
	SlotCount(ctx context.Context) (int, error)
	// AddSlot invokes the form's "add another slot" control.
	AddSlot(ctx context.Context) error
	// SelectDay marks the weekday for a slot sub-section.
	SelectDay(ctx context.Context, slot, day int) error
	// SetTimeComponent sets one of a slot's four time select boxes.
	SetTimeComponent(ctx context.Context, slot int, field TimeField, value int) error
	// SetPlace writes a slot's optional place field with a change signal.
	SetPlace(ctx context.Context, slot int, value string) error
	// Submit presses the form's submit control.
	Submit(ctx context.Context) error
}
