package ratelimiter

import (
	"context"
	"testing"
	"time"
)

func TestIntervalLimiter_FirstAcquireIsImmediate(t *testing.T) {
	t.Parallel()

	rl := NewIntervalLimiter(time.Second)

	start := time.Now()
	if err := rl.Acquire(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first acquire took %v, expected immediate return", elapsed)
	}
}

func TestIntervalLimiter_SpacesConsecutiveAcquires(t *testing.T) {
	t.Parallel()

	const interval = 30 * time.Millisecond
	rl := NewIntervalLimiter(interval)
	ctx := context.Background()

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		if err := rl.Acquire(ctx); err != nil {
			t.Fatalf("acquire %d: unexpected error: %v", i, err)
		}
		stamps = append(stamps, time.Now())
	}

	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		if gap < interval {
			t.Errorf("gap between acquire %d and %d was %v, want >= %v", i-1, i, gap, interval)
		}
	}
}

func TestIntervalLimiter_ZeroIntervalNeverWaits(t *testing.T) {
	t.Parallel()

	rl := NewIntervalLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := rl.Acquire(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("10 acquires with zero interval took %v", elapsed)
	}
}

func TestIntervalLimiter_ContextCancellation(t *testing.T) {
	t.Parallel()

	rl := NewIntervalLimiter(10 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// First acquire passes, second has to wait 10s and should give up when
	// the context expires instead.
	if err := rl.Acquire(ctx); err != nil {
		t.Fatalf("unexpected error on first acquire: %v", err)
	}

	start := time.Now()
	err := rl.Acquire(ctx)
	if err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
	if err != context.DeadlineExceeded {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled acquire took %v, expected prompt return", elapsed)
	}
}

func TestPerMinute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		calls int
		want  time.Duration
	}{
		{"5 per minute", 5, 12 * time.Second},
		{"60 per minute", 60, time.Second},
		{"1 per minute", 1, time.Minute},
		{"zero disables", 0, 0},
		{"negative disables", -3, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PerMinute(tt.calls); got != tt.want {
				t.Errorf("PerMinute(%d) = %v, want %v", tt.calls, got, tt.want)
			}
		})
	}
}
