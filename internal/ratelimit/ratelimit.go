// Package ratelimit provides a sliding-window request limiter. It guards the
// login endpoint against password guessing.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces per-minute and per-hour request caps over sliding
// windows. A zero cap disables that window.
type Limiter struct {
	perMinute int
	perHour   int

	mu           sync.Mutex
	minuteWindow []time.Time
	hourWindow   []time.Time

	// now is the clock used for window checks. Tests override it.
	now func() time.Time
}

// NewLimiter creates a limiter with the given caps.
func NewLimiter(perMinute, perHour int) *Limiter {
	return &Limiter{
		perMinute: perMinute,
		perHour:   perHour,
		now:       time.Now,
	}
}

// Allow reports whether another request fits in the current windows and, if
// so, records it.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.expire(now)

	if l.perMinute > 0 && len(l.minuteWindow) >= l.perMinute {
		return false
	}
	if l.perHour > 0 && len(l.hourWindow) >= l.perHour {
		return false
	}

	l.minuteWindow = append(l.minuteWindow, now)
	l.hourWindow = append(l.hourWindow, now)
	return true
}

// expire drops window entries older than their horizon.
func (l *Limiter) expire(now time.Time) {
	l.minuteWindow = keepAfter(l.minuteWindow, now.Add(-time.Minute))
	l.hourWindow = keepAfter(l.hourWindow, now.Add(-time.Hour))
}

func keepAfter(times []time.Time, cutoff time.Time) []time.Time {
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Reset clears all recorded requests.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minuteWindow = nil
	l.hourWindow = nil
}
