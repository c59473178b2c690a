// Package migrate sequences the pipeline: extract the current term's
// lectures from OTL, transform them, and replay each one into Everytime.
package migrate

import (
	"context"
	"errors"

	"otl2everytime/pkg/browser"
	"otl2everytime/pkg/everytime"
	"otl2everytime/pkg/otl"

	"go.uber.org/zap"
)

// Context carries the two authenticated site sessions through a run. There
// is exactly one of these per migration; no global browser state.
type Context struct {
	Source *browser.Page
	Dest   *browser.Page
}

// Credentials are the three operator secrets a run needs.
type Credentials struct {
	KaistID     string
	EverytimeID string
	EverytimePW string
}

// Status is the outcome of replicating one subject.
type Status int

const (
	// Added means the subject was submitted.
	Added Status = iota
	// Skipped means the subject had no meeting times and was never started.
	Skipped
	// Failed means replication aborted partway through.
	Failed
)

// String renders a status for logs and the run summary.
func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result records what happened to one subject.
type Result struct {
	Name   string
	Status Status
	Err    error
}

// Extractor is the source-side read surface; *otl.Client satisfies it.
type Extractor interface {
	CurrentSemester(ctx context.Context) (otl.Semester, error)
	MyLectures(ctx context.Context, sem otl.Semester) ([]otl.Lecture, error)
}

// ReplicateFunc replays one subject into the destination form.
type ReplicateFunc func(ctx context.Context, sub everytime.Subject) error

// Runner owns the run-level logging.
type Runner struct {
	log *zap.Logger
}

// NewRunner builds a runner; a nil logger disables logging.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{log: log}
}

// Collect is the setup phase: current term plus that term's lectures,
// already transformed into form payloads. Any error here is fatal to the
// whole run.
func (r *Runner) Collect(ctx context.Context, ex Extractor) (otl.Semester, []everytime.Subject, error) {
	sem, err := ex.CurrentSemester(ctx)
	if err != nil {
		return otl.Semester{}, nil, err
	}
	r.log.Info("resolved current term",
		zap.Int("year", sem.Year),
		zap.Int("semester", sem.Semester))

	lectures, err := ex.MyLectures(ctx, sem)
	if err != nil {
		return otl.Semester{}, nil, err
	}
	r.log.Info("extracted enrolled lectures", zap.Int("count", len(lectures)))

	subjects := make([]everytime.Subject, len(lectures))
	for i, lec := range lectures {
		subjects[i] = everytime.FromLecture(lec)
	}
	return sem, subjects, nil
}

// Replay replicates every subject in order, strictly sequentially — the
// destination form is one shared surface. A failed subject is logged and
// recorded, never retried, and never stops the subjects after it.
func (r *Runner) Replay(ctx context.Context, subjects []everytime.Subject, rep ReplicateFunc) []Result {
	results := make([]Result, 0, len(subjects))

	for _, sub := range subjects {
		res := Result{Name: sub.Name, Status: Added}

		err := rep(ctx, sub)
		switch {
		case err == nil:
			r.log.Info("subject added", zap.String("name", sub.Name))
		case errors.Is(err, everytime.ErrNoMeetingTimes):
			res.Status = Skipped
			res.Err = err
			r.log.Warn("subject skipped, no meeting times", zap.String("name", sub.Name))
		default:
			res.Status = Failed
			res.Err = err
			r.log.Error("subject failed", zap.String("name", sub.Name), zap.Error(err))
		}

		results = append(results, res)
	}

	return results
}
