// Package otl extracts the enrolled timetable from the KAIST OTL portal.
// Every operation assumes a logged-in session; Login produces one.
package otl

// Semester identifies one academic term. The API orders its semester list by
// year then semester, so the last element is the current term.
type Semester struct {
	Year     int `json:"year"`
	Semester int `json:"semester"`
}

// Professor is one lecturer entry on a lecture.
type Professor struct {
	Name string `json:"name"`
}

// Classtime is a single weekly meeting block. Begin and End are minutes
// since midnight; Day is a 0-based weekday index starting Monday.
type Classtime struct {
	Day            int    `json:"day"`
	Begin          int    `json:"begin"`
	End            int    `json:"end"`
	Classroom      string `json:"classroom"`
	ClassroomShort string `json:"classroom_short"`
}

// Lecture is one enrolled course as the portal reports it.
type Lecture struct {
	Year        int         `json:"year"`
	Semester    int         `json:"semester"`
	Title       string      `json:"title"`
	CommonTitle string      `json:"common_title"`
	Professors  []Professor `json:"professors"`
	Classtimes  []Classtime `json:"classtimes"`
}

// sessionInfo is the slice of /session/info this tool cares about.
type sessionInfo struct {
	MyTimetableLectures []Lecture `json:"my_timetable_lectures"`
}
