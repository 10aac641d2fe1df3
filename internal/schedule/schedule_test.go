package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNextBoundary(t *testing.T) {
	tests := []struct {
		name string
		now  string
		want string
	}{
		{"mid interval", "2026-08-28T12:07:31Z", "2026-08-28T12:10:00Z"},
		{"exactly on boundary", "2026-08-28T12:10:00Z", "2026-08-28T12:15:00Z"},
		{"just before boundary", "2026-08-28T12:09:59Z", "2026-08-28T12:10:00Z"},
		{"hour rollover", "2026-08-28T12:57:12Z", "2026-08-28T13:00:00Z"},
		{"day rollover", "2026-08-28T23:58:00Z", "2026-08-29T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse(time.RFC3339, tt.now)
			if err != nil {
				t.Fatal(err)
			}
			want, _ := time.Parse(time.RFC3339, tt.want)

			got := NextBoundary(now, 5*time.Minute)
			if !got.Equal(want) {
				t.Errorf("NextBoundary(%s) = %s, want %s", tt.now, got.Format(time.RFC3339), tt.want)
			}
			if !got.After(now) {
				t.Errorf("NextBoundary(%s) = %s is not strictly in the future", tt.now, got.Format(time.RFC3339))
			}
		})
	}
}

func TestScheduler_SurvivesCycleErrors(t *testing.T) {
	var runs atomic.Int32

	runner := RunnerFunc(func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("venue unavailable")
	})

	s := New(50*time.Millisecond, runner, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Millisecond)
	defer cancel()

	err := s.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run returned %v, want context.DeadlineExceeded", err)
	}

	// Cycles kept firing despite every one failing.
	if got := runs.Load(); got < 2 {
		t.Errorf("runs = %d, want >= 2", got)
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	runner := RunnerFunc(func(ctx context.Context) error { return nil })

	s := New(time.Hour, runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
