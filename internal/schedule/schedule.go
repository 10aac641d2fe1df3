// Package schedule aligns snapshot cycles to wall-clock interval
// boundaries and keeps the loop alive across failed cycles.
package schedule

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is the wall-clock alignment for snapshot cycles.
const DefaultInterval = 5 * time.Minute

// Runner executes one snapshot cycle.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc is a function adapter for Runner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// NextBoundary computes the next wall-clock instant that is a multiple of
// interval. The result is always strictly after now: a time exactly on a
// boundary advances one full step, so the sleep is never zero or
// negative.
func NextBoundary(now time.Time, interval time.Duration) time.Time {
	return now.Truncate(interval).Add(interval)
}

// Scheduler alternates between waiting for the next boundary and running
// one cycle. A failed cycle is logged and discarded; the loop never
// terminates on a cycle error. There is no catch-up: if a cycle overruns
// past the next mark, the following wait targets the boundary after it.
type Scheduler struct {
	interval time.Duration
	runner   Runner
	logger   *slog.Logger
}

// New creates a Scheduler. A zero interval falls back to DefaultInterval.
func New(interval time.Duration, runner Runner, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		interval: interval,
		runner:   runner,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, running one cycle per boundary.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		now := time.Now().UTC()
		next := NextBoundary(now, s.interval)
		sleep := next.Sub(now)

		s.logger.Info("sleeping until next boundary",
			"sleep", sleep.Round(time.Second),
			"wake_at", next.Format(time.RFC3339),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}

		if err := s.runner.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// One bad cycle never takes the process down.
			s.logger.Error("snapshot cycle failed", "error", err)
		}
	}
}
