package pipeline

import "time"

// Limiter drops frames arriving faster than a target frequency.
// The next deadline always advances from the current time, not from
// the previous deadline, so under sustained overload the effective
// output rate can fall below the target without catch-up.
type Limiter struct {
	period   time.Duration
	deadline time.Time
	now      func() time.Time
}

// NewLimiter returns a limiter for the target frequency in Hz.
// Frequency 0 disables dropping entirely.
func NewLimiter(frequency float64) *Limiter {
	l := &Limiter{now: time.Now}
	if frequency > 0 {
		l.period = time.Duration(float64(time.Second) / frequency)
	}
	return l
}

// ShouldDrop reports whether the current frame has to be skipped and
// advances the deadline when it is not. The first check always
// accepts.
func (l *Limiter) ShouldDrop() bool {
	if l.period == 0 {
		return false
	}
	now := l.now()
	if now.Before(l.deadline) {
		return true
	}
	l.deadline = now.Add(l.period)
	return false
}
