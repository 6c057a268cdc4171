package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/pki2fa/pkg/logger"
)

var (
	ErrNilSchedule = errors.New("schedule is nil")
	ErrNilJob      = errors.New("job is nil")
)

// Job is invoked once per tick with the scheduled time.
type Job func(ctx context.Context, at time.Time) error

// Runner invokes a Job on a Schedule until its context is canceled.
// Ticks never overlap: a slow job delays the next tick instead of
// running concurrently with it.
type Runner struct {
	name     string
	schedule Schedule
	job      Job
	logger   *slog.Logger
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for job failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithName labels log records produced by the runner.
func WithName(name string) Option {
	return func(r *Runner) { r.name = name }
}

// WithClock replaces time.Now and time.After. Used in tests.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
		if after != nil {
			r.after = after
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(s Schedule, job Job, opts ...Option) (*Runner, error) {
	if s == nil {
		return nil, ErrNilSchedule
	}
	if job == nil {
		return nil, ErrNilJob
	}

	r := &Runner{
		name:     "job",
		schedule: s,
		job:      job,
		logger:   slog.Default(),
		now:      time.Now,
		after:    time.After,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RunOnce runs the job immediately.
func (r *Runner) RunOnce(ctx context.Context) error {
	return r.job(ctx, r.now())
}

// Run waits for each scheduled time and invokes the job. Job errors are
// logged and do not stop the runner. Run returns ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "scheduler started",
		logger.Component(r.name),
		slog.String("schedule", r.schedule.String()),
	)

	for {
		if err := ctx.Err(); err != nil {
			r.logger.InfoContext(ctx, "scheduler shutting down", logger.Component(r.name))
			return err
		}

		next := r.schedule.Next(r.now())
		wait := max(next.Sub(r.now()), 0)

		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "scheduler shutting down", logger.Component(r.name))
			return ctx.Err()
		case <-r.after(wait):
		}

		started := r.now()
		if err := r.job(ctx, next); err != nil {
			r.logger.ErrorContext(ctx, "scheduled job failed",
				logger.Component(r.name),
				logger.Duration(r.now().Sub(started)),
				logger.Error(err),
			)
			continue
		}
		r.logger.DebugContext(ctx, "scheduled job finished",
			logger.Component(r.name),
			logger.Duration(r.now().Sub(started)),
		)
	}
}
