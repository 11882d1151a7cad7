package stage

import "time"

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Throttle rate-limits fn to one call per delay, leading edge only. A call
// that arrives while the delay since the last run has not yet been exceeded
// is dropped together with its argument; nothing is queued or replayed.
type Throttle[A any] struct {
	fn      func(A)
	delay   time.Duration
	now     Clock
	lastRun time.Time
	ran     bool
}

// NewThrottle wraps fn with a minimum delay between runs.
func NewThrottle[A any](fn func(A), delay time.Duration) *Throttle[A] {
	return &Throttle[A]{fn: fn, delay: delay, now: time.Now}
}

// SetClock replaces the time source.
func (t *Throttle[A]) SetClock(c Clock) {
	t.now = c
}

// Delay returns the configured minimum delay.
func (t *Throttle[A]) Delay() time.Duration { return t.delay }

// Call runs fn with a when more than the delay has elapsed since the last run
// (or fn never ran), and reports whether it ran.
func (t *Throttle[A]) Call(a A) bool {
	now := t.now()
	if t.ran && now.Sub(t.lastRun) <= t.delay {
		return false
	}
	t.fn(a)
	t.lastRun = now
	t.ran = true
	return true
}

// Reset forgets the last run so the next call goes through.
func (t *Throttle[A]) Reset() {
	t.ran = false
	t.lastRun = time.Time{}
}
