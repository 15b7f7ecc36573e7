// Package scheduler runs checks on an in-process schedule. The service
// also works with an external trigger hitting /check; the poller simply
// makes the deployment self-contained when POLL_SPEC is set.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tournotify/internal/domain"
)

// Runner is the orchestrator's entry point.
type Runner interface {
	Run(ctx context.Context) domain.Outcome
}

type Poller struct {
	Logger  *zap.Logger
	Runner  Runner
	Spec    string // cron spec or descriptor, e.g. "@every 5m"; empty disables
	Timeout time.Duration

	cron *cron.Cron
}

func New(logger *zap.Logger, runner Runner, spec string, timeout time.Duration) *Poller {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Poller{Logger: logger, Runner: runner, Spec: spec, Timeout: timeout}
}

// Start schedules the polling job. With an empty spec it logs and returns
// nil: scheduling is left to an external trigger.
func (p *Poller) Start() error {
	if p.Spec == "" {
		p.Logger.Info("poller_disabled")
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(p.Spec, p.pollOnce); err != nil {
		return err
	}
	c.Start()
	p.cron = c
	p.Logger.Info("poller_started", zap.String("spec", p.Spec))
	return nil
}

// Stop halts scheduling and waits for an in-flight check to finish.
func (p *Poller) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.Logger.Info("poller_stopped")
}

func (p *Poller) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()

	out := p.Runner.Run(ctx)
	p.Logger.Info("poll_check",
		zap.String("status", string(out.Status)),
		zap.String("message", out.Message),
		zap.String("reason", out.Reason),
	)
}
