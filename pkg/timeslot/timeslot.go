// Package timeslot converts between clock time and the 5-minute slot
// indices the Everytime timetable form works with.
package timeslot

// ToIndex converts minutes-since-midnight into a 5-minute slot index,
// rounding half up. 510 minutes (08:30) becomes slot 102.
func ToIndex(minutes int) int {
	return (minutes + 2) / 5
}

// Clock decomposes a slot index back into an hour and minute pair for the
// form's hour/minute select boxes.
func Clock(index int) (hour, minute int) {
	total := index * 5
	return total / 60, total % 60
}
