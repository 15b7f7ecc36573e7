// Package cooldown holds the notification-gating state: the timestamp of
// the last alert and the window inside which repeats are suppressed.
package cooldown

import (
	"sync"
	"time"
)

// Gate tracks when the last notification went out. ShouldSkip and
// RecordNotified are safe for concurrent use; callers that need the
// read-then-write pair to be atomic across a slow probe must serialize
// the whole check themselves (the orchestrator does).
type Gate struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time // zero until the first RecordNotified
}

// NewGate returns a gate with the given window. A zero or negative window
// disables suppression entirely.
func NewGate(window time.Duration) *Gate {
	return &Gate{window: window}
}

// ShouldSkip reports whether now still falls inside the cooldown window of
// the last notification. Before any notification it always returns false.
// Exactly at the window boundary it returns false (strict less-than).
func (g *Gate) ShouldSkip(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last.IsZero() {
		return false
	}
	return now.Sub(g.last) < g.window
}

// RecordNotified marks now as the start of a new cooldown window. Called
// exactly once per transition into a notified state, never on skip or
// not-found paths.
func (g *Gate) RecordNotified(now time.Time) {
	g.mu.Lock()
	g.last = now
	g.mu.Unlock()
}

// Window returns the configured suppression window.
func (g *Gate) Window() time.Duration {
	return g.window
}

// LastNotifiedAt returns the last recorded notification time, and false if
// none has been recorded yet.
func (g *Gate) LastNotifiedAt() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, !g.last.IsZero()
}
