package everytime

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeSurface records every operation and simulates the form's slot
// rendering, optionally failing a named operation.
type fakeSurface struct {
	ops      []string
	slots    int
	lazySlot    bool // when set, AddSlot does not render until a few polls later
	neverRender bool // when set, AddSlot never renders a new sub-section
	pending     int
	failOn      string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{slots: 1} // the form opens with one default slot
}

func (f *fakeSurface) record(op string) error {
	f.ops = append(f.ops, op)
	if f.failOn != "" && f.failOn == opName(op) {
		return errors.New("injected failure")
	}
	return nil
}

func opName(op string) string {
	for i := 0; i < len(op); i++ {
		if op[i] == '(' {
			return op[:i]
		}
	}
	return op
}

func (f *fakeSurface) Open(context.Context) error { return f.record("Open") }

func (f *fakeSurface) SetField(_ context.Context, name, value string) error {
	return f.record(fmt.Sprintf("SetField(%s=%s)", name, value))
}

func (f *fakeSurface) SlotCount(context.Context) (int, error) {
	if err := f.record("SlotCount"); err != nil {
		return 0, err
	}
	if f.pending > 0 {
		f.pending--
		if f.pending == 0 {
			f.slots++
		}
	}
	return f.slots, nil
}

func (f *fakeSurface) AddSlot(context.Context) error {
	if err := f.record("AddSlot"); err != nil {
		return err
	}
	if f.neverRender {
		return nil
	}
	if f.lazySlot {
		f.pending = 3 // render after three SlotCount polls
	} else {
		f.slots++
	}
	return nil
}

func (f *fakeSurface) SelectDay(_ context.Context, slot, day int) error {
	return f.record(fmt.Sprintf("SelectDay(%d,%d)", slot, day))
}

func (f *fakeSurface) SetTimeComponent(_ context.Context, slot int, field TimeField, value int) error {
	return f.record(fmt.Sprintf("SetTimeComponent(%d,%s,%d)", slot, field, value))
}

func (f *fakeSurface) SetPlace(_ context.Context, slot int, value string) error {
	return f.record(fmt.Sprintf("SetPlace(%d,%s)", slot, value))
}

func (f *fakeSurface) Submit(context.Context) error { return f.record("Submit") }

func testReplicator(s ControlSurface) *Replicator {
	return &Replicator{Surface: s, SlotWait: 2 * time.Second, Settle: 0}
}

func TestAddSkipsZeroSlotSubject(t *testing.T) {
	s := newFakeSurface()
	err := testReplicator(s).Add(context.Background(), Subject{Name: "독립연구"})

	if !errors.Is(err, ErrNoMeetingTimes) {
		t.Fatalf("expected ErrNoMeetingTimes, got %v", err)
	}
	if len(s.ops) != 0 {
		t.Errorf("expected no form interaction for a slotless subject, got %v", s.ops)
	}
}

func TestAddSingleSlot(t *testing.T) {
	s := newFakeSurface()
	sub := Subject{
		Name:      "Operating Systems",
		Professor: "A, B",
		TimePlace: []TimePlace{{Day: 2, StartSlot: 108, EndSlot: 126, Place: "(E11) 101호)"}},
	}

	if err := testReplicator(s).Add(context.Background(), sub); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	want := []string{
		"Open",
		"SetField(name=Operating Systems)",
		"SetField(professor=A, B)",
		"SelectDay(0,2)",
		"SetTimeComponent(0,starthour,9)",
		"SetTimeComponent(0,startminute,0)",
		"SetTimeComponent(0,endhour,10)",
		"SetTimeComponent(0,endminute,30)",
		"SetPlace(0,(E11) 101호))",
		"Submit",
	}
	if len(s.ops) != len(want) {
		t.Fatalf("expected %d ops, got %d: %v", len(want), len(s.ops), s.ops)
	}
	for i, op := range want {
		if s.ops[i] != op {
			t.Errorf("op %d: got %s, want %s", i, s.ops[i], op)
		}
	}
}

func TestAddSecondSlotWaitsForRender(t *testing.T) {
	s := newFakeSurface()
	s.lazySlot = true
	sub := Subject{
		Name: "Databases",
		TimePlace: []TimePlace{
			{Day: 0, StartSlot: 108, EndSlot: 120},
			{Day: 3, StartSlot: 156, EndSlot: 168},
		},
	}

	if err := testReplicator(s).Add(context.Background(), sub); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// The add control must be used exactly once, and the second slot must
	// not be filled before the count grew past the pre-add count.
	adds, fills := 0, -1
	for i, op := range s.ops {
		if op == "AddSlot" {
			adds++
		}
		if op == "SelectDay(1,3)" {
			fills = i
		}
	}
	if adds != 1 {
		t.Errorf("expected 1 AddSlot, got %d", adds)
	}
	if fills == -1 {
		t.Fatalf("second slot was never filled: %v", s.ops)
	}
	if s.slots != 2 {
		t.Errorf("expected 2 rendered slots, got %d", s.slots)
	}
}

func TestAddSecondSlotRenderTimeout(t *testing.T) {
	s := newFakeSurface()
	s.neverRender = true
	sub := Subject{
		Name: "Networks",
		TimePlace: []TimePlace{
			{Day: 0, StartSlot: 108, EndSlot: 120},
			{Day: 1, StartSlot: 108, EndSlot: 120},
		},
	}

	r := &Replicator{Surface: s, SlotWait: 50 * time.Millisecond, Settle: 0}
	err := r.Add(context.Background(), sub)
	if err == nil {
		t.Fatal("expected an error when the new slot never renders")
	}
}

func TestAddEmptyPlaceSkipsPlaceField(t *testing.T) {
	s := newFakeSurface()
	sub := Subject{
		Name:      "Seminar",
		TimePlace: []TimePlace{{Day: 4, StartSlot: 192, EndSlot: 204}},
	}

	if err := testReplicator(s).Add(context.Background(), sub); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	for _, op := range s.ops {
		if opName(op) == "SetPlace" {
			t.Errorf("place field should not be touched when empty: %v", s.ops)
		}
	}
}

func TestAddAbortsOnSurfaceFailure(t *testing.T) {
	s := newFakeSurface()
	s.failOn = "SelectDay"
	sub := Subject{
		Name:      "Compilers",
		TimePlace: []TimePlace{{Day: 1, StartSlot: 108, EndSlot: 120}},
	}

	err := testReplicator(s).Add(context.Background(), sub)
	if err == nil {
		t.Fatal("expected the injected failure to abort the subject")
	}
	for _, op := range s.ops {
		if op == "Submit" {
			t.Errorf("subject must not be submitted after a failure: %v", s.ops)
		}
	}
}
