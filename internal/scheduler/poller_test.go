package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
)

type countingRunner struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRunner) Run(ctx context.Context) domain.Outcome {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return domain.NotFound(time.Now().UTC(), "No tours available")
}

func (c *countingRunner) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestPoller_EmptySpecDisabled(t *testing.T) {
	r := &countingRunner{}
	p := New(zap.NewNop(), r, "", time.Second)
	if err := p.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	p.Stop() // must be safe when never scheduled
	if r.count() != 0 {
		t.Fatalf("disabled poller ran %d checks", r.count())
	}
}

func TestPoller_BadSpecErrors(t *testing.T) {
	p := New(zap.NewNop(), &countingRunner{}, "every five minutes", time.Second)
	if err := p.Start(); err == nil {
		t.Fatal("want error for malformed spec")
	}
}

func TestPoller_RunsOnSchedule(t *testing.T) {
	r := &countingRunner{}
	p := New(zap.NewNop(), r, "@every 50ms", time.Second)
	if err := p.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for r.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if r.count() == 0 {
		t.Fatal("poller never fired")
	}
}
