package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()

	base := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transient error", Transient(base), true},
		{"wrapped transient error", fmt.Errorf("fetch AAPL: %w", Transient(base)), true},
		{"permanent error", Permanent(base), false},
		{"plain error", base, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsPermanent(t *testing.T) {
	t.Parallel()

	base := errors.New("unknown symbol")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"permanent error", Permanent(base), true},
		{"wrapped permanent error", fmt.Errorf("fetch BADSYM: %w", Permanent(base)), true},
		{"transient error", Transient(base), false},
		{"plain error", base, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsPermanent(tt.err); got != tt.want {
				t.Errorf("IsPermanent(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")

	if !errors.Is(Transient(base), base) {
		t.Error("Transient should preserve the wrapped error for errors.Is")
	}
	if !errors.Is(Permanent(base), base) {
		t.Error("Permanent should preserve the wrapped error for errors.Is")
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	exhausted := fmt.Errorf("%w: %w", ErrRetriesExhausted, Transient(base))

	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ClassNone},
		{"transient", Transient(base), ClassTransient},
		{"permanent", Permanent(base), ClassPermanent},
		{"retries exhausted wrapping transient", exhausted, ClassRetriesExhausted},
		{"unclassified error behaves permanent", base, ClassPermanent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
