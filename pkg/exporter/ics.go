// Package exporter writes the transformed timetable to an ICS calendar, as
// a portable backup of what the migration is about to replay.
package exporter

import (
	"fmt"
	"io"
	"time"

	"otl2everytime/pkg/everytime"
	"otl2everytime/pkg/otl"
	"otl2everytime/pkg/timeslot"

	ics "github.com/arran4/golang-ical"
)

// WriteICS emits one weekly-recurring event per meeting block, anchored to
// the Monday of the current week. The source data has no term boundary
// dates, so the events recur open-endedly.
func WriteICS(subjects []everytime.Subject, term otl.Semester, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetName(fmt.Sprintf("Timetable %d/%d", term.Year, term.Semester))

	// Campus timezone
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	now := time.Now().In(loc)
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, loc)

	for i, sub := range subjects {
		for j, tp := range sub.TimePlace {
			sh, sm := timeslot.Clock(tp.StartSlot)
			eh, em := timeslot.Clock(tp.EndSlot)

			day := monday.AddDate(0, 0, tp.Day)
			start := day.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute)
			end := day.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute)

			event := cal.AddEvent(fmt.Sprintf("%s-%d-%d", start.Format("20060102T150405"), i, j))
			event.SetCreatedTime(time.Now())
			event.SetDtStampTime(time.Now())
			event.SetModifiedAt(time.Now())
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.AddRrule("FREQ=WEEKLY")
			event.SetSummary(sub.Name)
			if tp.Place != "" {
				event.SetLocation(tp.Place)
			}
			if sub.Professor != "" {
				event.SetDescription(fmt.Sprintf("Professor: %s", sub.Professor))
			}
		}
	}

	return cal.SerializeTo(w)
}
