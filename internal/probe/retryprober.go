package probe

import (
	"context"
	"time"

	"tournotify/internal/domain"
)

// RetryProber retries transient probe failures. Genuine not-found answers
// are returned as-is; only error results trigger another attempt.
type RetryProber struct {
	Inner    Prober
	Attempts int
	Backoff  time.Duration
}

func (r *RetryProber) Probe(ctx context.Context) domain.ProbeResult {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last domain.ProbeResult
	for i := 0; i < attempts; i++ {
		last = r.Inner.Probe(ctx)
		if !isErrResult(last) {
			return last
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(r.Backoff):
			}
		}
	}
	// annotate so logs show the whole series failed
	last.Message = last.Message + " (after retries)"
	return last
}
