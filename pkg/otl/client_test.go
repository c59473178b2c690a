package otl

import (
	"context"
	"errors"
	"testing"
)

// fakeFetcher serves canned responses keyed by URL.
type fakeFetcher struct {
	status int
	body   map[string]string
	err    error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (int, []byte, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	return f.status, []byte(f.body[url]), nil
}

func TestCurrentSemesterPicksLast(t *testing.T) {
	f := &fakeFetcher{status: 200, body: map[string]string{
		semestersURL: `[{"year":2023,"semester":2},{"year":2024,"semester":1},{"year":2024,"semester":2}]`,
	}}

	sem, err := NewClient(f).CurrentSemester(context.Background())
	if err != nil {
		t.Fatalf("CurrentSemester failed: %v", err)
	}
	if sem.Year != 2024 || sem.Semester != 2 {
		t.Errorf("expected 2024/2, got %d/%d", sem.Year, sem.Semester)
	}
}

func TestCurrentSemesterEmptyList(t *testing.T) {
	f := &fakeFetcher{status: 200, body: map[string]string{semestersURL: `[]`}}

	_, err := NewClient(f).CurrentSemester(context.Background())
	if !errors.Is(err, ErrEmptySemesterList) {
		t.Fatalf("expected ErrEmptySemesterList, got %v", err)
	}
}

func TestCurrentSemesterNotAnArray(t *testing.T) {
	f := &fakeFetcher{status: 200, body: map[string]string{semestersURL: `{"oops":true}`}}

	_, err := NewClient(f).CurrentSemester(context.Background())
	if !errors.Is(err, ErrEmptySemesterList) {
		t.Fatalf("expected ErrEmptySemesterList for a non-array body, got %v", err)
	}
}

func TestCurrentSemesterUpstreamStatus(t *testing.T) {
	f := &fakeFetcher{status: 502, body: map[string]string{}}

	_, err := NewClient(f).CurrentSemester(context.Background())
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != 502 {
		t.Errorf("expected status 502, got %d", ue.Status)
	}
}

func TestCurrentSemesterFetchError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("page is gone")}

	_, err := NewClient(f).CurrentSemester(context.Background())
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != 0 {
		t.Errorf("expected status 0 for a transport failure, got %d", ue.Status)
	}
}

func TestMyLecturesFiltersByTerm(t *testing.T) {
	f := &fakeFetcher{status: 200, body: map[string]string{
		sessionInfoURL: `{"my_timetable_lectures":[
			{"year":2024,"semester":2,"title":"Operating Systems"},
			{"year":2024,"semester":1,"title":"Old Course"},
			{"year":2024,"semester":2,"title":"Databases"},
			{"year":2023,"semester":2,"title":"Very Old Course"}
		]}`,
	}}

	lectures, err := NewClient(f).MyLectures(context.Background(), Semester{Year: 2024, Semester: 2})
	if err != nil {
		t.Fatalf("MyLectures failed: %v", err)
	}
	if len(lectures) != 2 {
		t.Fatalf("expected 2 lectures for 2024/2, got %d", len(lectures))
	}
	if lectures[0].Title != "Operating Systems" || lectures[1].Title != "Databases" {
		t.Errorf("lectures out of source order: %+v", lectures)
	}
}

// A snapshot without the lecture list is an empty timetable, not a failure.
func TestMyLecturesMalformedSnapshot(t *testing.T) {
	f := &fakeFetcher{status: 200, body: map[string]string{
		sessionInfoURL: `not even json`,
	}}

	lectures, err := NewClient(f).MyLectures(context.Background(), Semester{Year: 2024, Semester: 2})
	if err != nil {
		t.Fatalf("expected no error for malformed snapshot, got %v", err)
	}
	if len(lectures) != 0 {
		t.Errorf("expected no lectures, got %d", len(lectures))
	}
}
