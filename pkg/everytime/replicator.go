package everytime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otl2everytime/pkg/browser"
	"otl2everytime/pkg/timeslot"
)

// ErrNoMeetingTimes marks a subject with an empty schedule. It is skipped
// without touching the form: a slotless entry cannot be placed on a
// timetable grid.
var ErrNoMeetingTimes = errors.New("subject has no meeting times")

// Replicator replays subjects through a ControlSurface one at a time. The
// form is a single shared surface; Add must never run concurrently.
type Replicator struct {
	Surface ControlSurface
	// SlotWait bounds the wait for a newly added slot sub-section to
	// render before it gets filled.
	SlotWait time.Duration
	// Settle is the pause after submit; the form gives no confirmation
	// signal, so the next subject simply waits this long.
	Settle time.Duration
}

// NewReplicator returns a replicator with the waits tuned for the live site.
func NewReplicator(s ControlSurface) *Replicator {
	return &Replicator{
		Surface:  s,
		SlotWait: 5 * time.Second,
		Settle:   600 * time.Millisecond,
	}
}

// Add replays one subject: open the form, set name and professor, fill each
// meeting slot, submit. Any surface failure aborts this subject only; the
// caller decides whether to continue with the next one.
func (r *Replicator) Add(ctx context.Context, sub Subject) error {
	if len(sub.TimePlace) == 0 {
		return ErrNoMeetingTimes
	}

	s := r.Surface
	if err := s.Open(ctx); err != nil {
		return fmt.Errorf("opening form: %w", err)
	}
	if err := s.SetField(ctx, "name", sub.Name); err != nil {
		return fmt.Errorf("setting name: %w", err)
	}
	if err := s.SetField(ctx, "professor", sub.Professor); err != nil {
		return fmt.Errorf("setting professor: %w", err)
	}

	for i, tp := range sub.TimePlace {
		if err := r.fillSlot(ctx, i, tp); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}

	if err := s.Submit(ctx); err != nil {
		return fmt.Errorf("submitting: %w", err)
	}
	r.pause(ctx, r.Settle)
	return nil
}

// fillSlot fills slot sub-section i. The form opens with one default
// sub-section, so only slots past the first need the add control — and the
// new sub-section renders asynchronously, so filling waits until the slot
// count has strictly grown.
func (r *Replicator) fillSlot(ctx context.Context, i int, tp TimePlace) error {
	s := r.Surface

	if i > 0 {
		before, err := s.SlotCount(ctx)
		if err != nil {
			return fmt.Errorf("counting slots: %w", err)
		}
		if err := s.AddSlot(ctx); err != nil {
			return fmt.Errorf("adding slot: %w", err)
		}
		out := browser.Await(ctx, r.SlotWait, 100*time.Millisecond, func(ctx context.Context) (bool, error) {
			n, err := s.SlotCount(ctx)
			return n > before, err
		})
		if out == browser.TimedOut {
			return fmt.Errorf("new slot sub-section never rendered")
		}
	}

	if err := s.SelectDay(ctx, i, tp.Day); err != nil {
		return fmt.Errorf("selecting day: %w", err)
	}

	sh, sm := timeslot.Clock(tp.StartSlot)
	eh, em := timeslot.Clock(tp.EndSlot)
	components := []struct {
		field TimeField
		value int
	}{
		{StartHour, sh},
		{StartMinute, sm},
		{EndHour, eh},
		{EndMinute, em},
	}
	for _, c := range components {
		if err := s.SetTimeComponent(ctx, i, c.field, c.value); err != nil {
			return fmt.Errorf("setting %s: %w", c.field, err)
		}
	}

	if tp.Place != "" {
		if err := s.SetPlace(ctx, i, tp.Place); err != nil {
			return fmt.Errorf("setting place: %w", err)
		}
	}
	return nil
}

func (r *Replicator) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
