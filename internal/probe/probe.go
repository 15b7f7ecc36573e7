package probe

import (
	"context"
	"strings"

	"tournotify/internal/domain"
)

// Prober performs one bounded-time availability lookup. Implementations
// never return an error or panic outward: every failure is downgraded to
// a not-found result whose message starts with "Error:". A false negative
// only delays the alert until the next poll; a false positive would page
// someone for nothing.
type Prober interface {
	Probe(ctx context.Context) domain.ProbeResult
}

// errResult converts an internal failure into the outward fail-safe shape.
func errResult(err error) domain.ProbeResult {
	return domain.ProbeResult{Found: false, Message: "Error: " + err.Error()}
}

// isErrResult reports whether a result came from the error path rather
// than a genuine "no availability" answer.
func isErrResult(r domain.ProbeResult) bool {
	return !r.Found && strings.HasPrefix(r.Message, "Error:")
}
