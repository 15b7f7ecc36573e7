package probe

import (
	"context"

	"tournotify/internal/domain"
)

// FallbackProber consults the structured API first and falls back to the
// page heuristic only when the API path errors. A clean not-found from the
// API is trusted and does not trigger the fallback.
type FallbackProber struct {
	Primary   Prober
	Secondary Prober
}

func (f *FallbackProber) Probe(ctx context.Context) domain.ProbeResult {
	res := f.Primary.Probe(ctx)
	if !isErrResult(res) {
		return res
	}
	if err := ctx.Err(); err != nil {
		return res
	}
	return f.Secondary.Probe(ctx)
}
