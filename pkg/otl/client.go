package otl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	semestersURL   = "https://otl.kaist.ac.kr/api/semesters?order=year&order=semester"
	sessionInfoURL = "https://otl.kaist.ac.kr/session/info"
)

// ErrEmptySemesterList is returned when the portal reports no semesters at
// all; there is no term to migrate and the run cannot continue.
var ErrEmptySemesterList = errors.New("semester list is empty")

// UpstreamError reports a portal fetch that did not succeed. Status is the
// HTTP status code, or 0 when the response body itself was unusable.
type UpstreamError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("otl request to %s failed with status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("otl request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Fetcher is the authenticated session handle: an in-page fetch that rides
// the login cookies. *browser.Page satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (status int, body []byte, err error)
}

// Client reads timetable data through an authenticated session.
type Client struct {
	fetcher Fetcher
}

// NewClient wraps an authenticated session handle.
func NewClient(f Fetcher) *Client {
	return &Client{fetcher: f}
}

// CurrentSemester fetches the ordered semester list and returns its last
// element, which the portal guarantees is the term currently in progress.
func (c *Client) CurrentSemester(ctx context.Context) (Semester, error) {
	body, err := c.get(ctx, semestersURL)
	if err != nil {
		return Semester{}, err
	}

	var semesters []Semester
	if err := json.Unmarshal(body, &semesters); err != nil {
		return Semester{}, ErrEmptySemesterList
	}
	if len(semesters) == 0 {
		return Semester{}, ErrEmptySemesterList
	}

	return semesters[len(semesters)-1], nil
}

// MyLectures fetches the full timetable snapshot and keeps only the lectures
// belonging to the given semester. A missing or malformed lecture list means
// the student has nothing enrolled, not that the fetch failed.
func (c *Client) MyLectures(ctx context.Context, sem Semester) ([]Lecture, error) {
	body, err := c.get(ctx, sessionInfoURL)
	if err != nil {
		return nil, err
	}

	var info sessionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, nil
	}

	var lectures []Lecture
	for _, l := range info.MyTimetableLectures {
		if l.Year == sem.Year && l.Semester == sem.Semester {
			lectures = append(lectures, l)
		}
	}
	return lectures, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	status, body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &UpstreamError{Endpoint: url, Err: err}
	}
	if status != http.StatusOK {
		return nil, &UpstreamError{Endpoint: url, Status: status}
	}
	return body, nil
}
