// Package everytime replays transformed courses into the Everytime custom
// timetable. The site exposes no data API, so everything goes through the
// custom-subject form.
package everytime

import (
	"strings"

	"otl2everytime/pkg/otl"
	"otl2everytime/pkg/timeslot"
)

// roomMarker is the two-character suffix OTL appends to room numbers
// ("호)" as in "101호)"); everything after it is building commentary the
// timetable has no space for.
const roomMarker = "호)"

// TimePlace is one weekly meeting block in form terms: a 0-based weekday
// and 5-minute slot indices.
type TimePlace struct {
	Day       int
	StartSlot int
	EndSlot   int
	Place     string
}

// Subject is one course ready for replication.
type Subject struct {
	Name      string
	Professor string
	TimePlace []TimePlace
}

// FromLecture maps an OTL lecture into the form's schema. Pure; never fails.
func FromLecture(lec otl.Lecture) Subject {
	name := lec.Title
	if name == "" {
		name = lec.CommonTitle
	}
	if name == "" {
		name = "Untitled"
	}

	names := make([]string, len(lec.Professors))
	for i, p := range lec.Professors {
		names[i] = p.Name
	}

	places := make([]TimePlace, len(lec.Classtimes))
	for i, ct := range lec.Classtimes {
		room := ct.Classroom
		if room == "" {
			room = ct.ClassroomShort
		}
		places[i] = TimePlace{
			Day:       ct.Day,
			StartSlot: timeslot.ToIndex(ct.Begin),
			EndSlot:   timeslot.ToIndex(ct.End),
			Place:     cleanPlace(room),
		}
	}

	return Subject{
		Name:      name,
		Professor: strings.Join(names, ", "),
		TimePlace: places,
	}
}

// cleanPlace truncates a classroom string right after the room marker,
// dropping trailing building descriptions. Without the marker the trimmed
// string passes through unchanged.
func cleanPlace(p string) string {
	if idx := strings.Index(p, roomMarker); idx != -1 {
		return strings.TrimSpace(p[:idx+len(roomMarker)])
	}
	return strings.TrimSpace(p)
}
