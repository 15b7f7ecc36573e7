// Package check composes prober, cooldown gate and notifier into the one
// request-triggered operation the service exists for.
package check

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/cooldown"
	"tournotify/internal/domain"
	"tournotify/internal/probe"
	"tournotify/internal/repo"
)

// AlertSender dispatches the configured availability alert(s).
// notify.Alert and notify.Alerts satisfy it.
type AlertSender interface {
	Send(ctx context.Context) bool
}

type Orchestrator struct {
	Logger        *zap.Logger
	Prober        probe.Prober
	Gate          *cooldown.Gate
	Alert         AlertSender
	Outcomes      repo.OutcomeStore // optional
	NotifyTimeout time.Duration
	Now           func() time.Time

	// Serializes whole runs. The gate's read-then-write spans a slow
	// probe; without this, two overlapping found-probes would both
	// notify. The reference implementation had this race; we don't.
	mu sync.Mutex
}

func New(logger *zap.Logger, p probe.Prober, g *cooldown.Gate, alert AlertSender, store repo.OutcomeStore) *Orchestrator {
	return &Orchestrator{
		Logger:        logger,
		Prober:        p,
		Gate:          g,
		Alert:         alert,
		Outcomes:      store,
		NotifyTimeout: 30 * time.Second,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one check. It never fails: every path yields an Outcome.
func (o *Orchestrator) Run(ctx context.Context) domain.Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.Now()

	if o.Gate.ShouldSkip(now) {
		o.Logger.Info("check_skipped", zap.String("reason", "cooldown"))
		return o.record(ctx, domain.Skipped(now, "cooldown"))
	}

	res := o.Prober.Probe(ctx)
	o.Logger.Info("check_result",
		zap.Bool("found", res.Found),
		zap.String("message", res.Message),
	)

	if !res.Found {
		return o.record(ctx, domain.NotFound(now, res.Message))
	}

	nctx, cancel := context.WithTimeout(ctx, o.NotifyTimeout)
	sent := o.Alert.Send(nctx)
	cancel()

	// The window starts regardless of delivery: a broken provider must
	// not be hammered on every poll. notify_sent=false surfaces it.
	o.Gate.RecordNotified(now)

	if !sent {
		o.Logger.Warn("alert_dispatch_failed")
	}
	return o.record(ctx, domain.Found(now, res.Message, sent))
}

func (o *Orchestrator) record(ctx context.Context, out domain.Outcome) domain.Outcome {
	if o.Outcomes != nil {
		if err := o.Outcomes.Append(ctx, out); err != nil {
			o.Logger.Warn("outcome_append_error", zap.Error(err))
		}
	}
	return out
}
