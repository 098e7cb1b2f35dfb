package pipeline

import (
	"testing"
	"time"
)

func TestLimiterDeadlineSequence(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	l := NewLimiter(10) // period 100ms
	l.now = func() time.Time { return now }

	if l.ShouldDrop() {
		t.Error("t=0ms: first frame must be accepted")
	}
	now = base.Add(50 * time.Millisecond)
	if !l.ShouldDrop() {
		t.Error("t=50ms: frame inside the period must be dropped")
	}
	now = base.Add(110 * time.Millisecond)
	if l.ShouldDrop() {
		t.Error("t=110ms: frame past the deadline must be accepted")
	}
	// The deadline advances from now, not from the previous deadline.
	if want := base.Add(210 * time.Millisecond); !l.deadline.Equal(want) {
		t.Errorf("deadline %v, want %v", l.deadline.Sub(base), want.Sub(base))
	}
}

func TestLimiterDropWithoutStateChange(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	l := NewLimiter(10)
	l.now = func() time.Time { return now }

	l.ShouldDrop() // accept, deadline = 100ms
	deadline := l.deadline
	for _, ms := range []int{10, 20, 99} {
		now = base.Add(time.Duration(ms) * time.Millisecond)
		if !l.ShouldDrop() {
			t.Fatalf("t=%dms: expected drop", ms)
		}
		if !l.deadline.Equal(deadline) {
			t.Fatalf("t=%dms: drop mutated the deadline", ms)
		}
	}
}

func TestLimiterUnlimited(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	l := NewLimiter(0)
	l.now = func() time.Time { return now }

	for _, ms := range []int{0, 1, 1, 2, 500, 500, 10000} {
		now = base.Add(time.Duration(ms) * time.Millisecond)
		if l.ShouldDrop() {
			t.Fatalf("t=%dms: frequency 0 must never drop", ms)
		}
	}
}

func TestLimiterPeriod(t *testing.T) {
	tests := []struct {
		frequency float64
		period    time.Duration
	}{
		{0, 0},
		{10, 100 * time.Millisecond},
		{25, 40 * time.Millisecond},
		{0.5, 2 * time.Second},
	}
	for _, tc := range tests {
		if l := NewLimiter(tc.frequency); l.period != tc.period {
			t.Errorf("frequency %v: period %v, want %v", tc.frequency, l.period, tc.period)
		}
	}
}
