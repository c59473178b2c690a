package everytime

import (
	"context"
	"fmt"
	"time"

	"otl2everytime/pkg/browser"
)

// Selectors for the custom-subject form. The site publishes no schema for
// this surface; these follow the live markup and are the fragile part of the
// whole pipeline.
const (
	formSel       = "form#customsubjects"
	openButtonSel = "ul.floating li.button.custom"
	nameInputSel  = formSel + ` input[name="name"]`
	profInputSel  = formSel + ` input[name="professor"]`
	addSlotSel    = formSel + " .timeplaces a.new"
	slotSel       = formSel + " .timeplace"
	submitSel     = formSel + ` .submit input[type="submit"]`
)

// Form drives the live custom-subject form through a browser page. It
// implements ControlSurface.
type Form struct {
	page *browser.Page
}

// NewForm binds a form driver to an authenticated timetable page.
func NewForm(page *browser.Page) *Form {
	return &Form{page: page}
}

// slotRoot addresses one slot sub-section; nth-of-type counts from 1.
func slotRoot(slot int) string {
	return fmt.Sprintf("%s .timeplace:nth-of-type(%d)", formSel, slot+1)
}

// Open clicks the floating "add custom subject" button unless the form is
// already showing.
func (f *Form) Open(ctx context.Context) error {
	var visible bool
	js := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return el !== null && window.getComputedStyle(el).display !== "none"; })()`,
		formSel,
	)
	if err := f.page.Eval(js, &visible, 5*time.Second); err != nil {
		return err
	}
	if visible {
		return nil
	}

	if err := f.page.Click(openButtonSel, 5*time.Second); err != nil {
		return err
	}
	return f.page.WaitVisible(nameInputSel, 5*time.Second)
}

// SetField writes one of the form's top-level inputs and dispatches an input
// event so the page's own listeners see the edit.
func (f *Form) SetField(ctx context.Context, name, value string) error {
	sel := fmt.Sprintf(`%s input[name=%q]`, formSel, name)
	return f.setInput(sel, value)
}

// SlotCount counts the slot sub-sections currently rendered.
func (f *Form) SlotCount(ctx context.Context) (int, error) {
	var count int
	js := fmt.Sprintf(`document.querySelectorAll(%q).length`, slotSel)
	if err := f.page.Eval(js, &count, 5*time.Second); err != nil {
		return 0, err
	}
	return count, nil
}

// AddSlot clicks the "add another slot" control.
func (f *Form) AddSlot(ctx context.Context) error {
	return f.page.Click(addSlotSel, 5*time.Second)
}

// SelectDay moves the active marker in a slot's weekday strip.
func (f *Form) SelectDay(ctx context.Context, slot, day int) error {
	var ok bool
	js := fmt.Sprintf(`(() => {
		const lis = document.querySelectorAll(%q);
		if (lis.length === 0) return false;
		lis.forEach((li, i) => { li.classList.toggle("active", i === %d); });
		return true;
	})()`, slotRoot(slot)+" ol.weeks li", day)
	if err := f.page.Eval(js, &ok, 5*time.Second); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("weekday strip not found in slot %d", slot)
	}
	return nil
}

// SetTimeComponent sets one of a slot's hour/minute select boxes and fires a
// change event so the form recomputes its preview.
func (f *Form) SetTimeComponent(ctx context.Context, slot int, field TimeField, value int) error {
	sel := fmt.Sprintf("%s select.%s", slotRoot(slot), field)
	var ok bool
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.value = String(%d);
		el.dispatchEvent(new Event("change", { bubbles: true }));
		return true;
	})()`, sel, value)
	if err := f.page.Eval(js, &ok, 5*time.Second); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("select %s not found", sel)
	}
	return nil
}

// SetPlace writes a slot's place input.
func (f *Form) SetPlace(ctx context.Context, slot int, value string) error {
	return f.setInput(slotRoot(slot)+" input.place", value)
}

// Submit presses the form's submit control.
func (f *Form) Submit(ctx context.Context) error {
	return f.page.Click(submitSel, 5*time.Second)
}

func (f *Form) setInput(sel, value string) error {
	var ok bool
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.value = %q;
		el.dispatchEvent(new Event("input", { bubbles: true }));
		return true;
	})()`, sel, value)
	if err := f.page.Eval(js, &ok, 5*time.Second); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("input %s not found", sel)
	}
	return nil
}
