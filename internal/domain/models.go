package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ProbeResult is the outcome of a single availability probe. Produced
// fresh per probe, consumed once by the orchestrator, never retained.
type ProbeResult struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

// Status tags an Outcome. Exactly one of the three applies per check.
type Status string

const (
	StatusSkipped  Status = "skipped"
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
)

// Outcome is the record of one orchestrated check. Reason is set only on
// skipped outcomes, Message only on found/not-found ones, NotifySent only
// on found ones.
type Outcome struct {
	ID         string    `json:"id"`
	Status     Status    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	Message    string    `json:"message,omitempty"`
	NotifySent *bool     `json:"notify_sent,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

func Skipped(now time.Time, reason string) Outcome {
	return Outcome{
		ID:        ulid.Make().String(),
		Status:    StatusSkipped,
		Reason:    reason,
		CheckedAt: now,
	}
}

func Found(now time.Time, message string, notifySent bool) Outcome {
	sent := notifySent
	return Outcome{
		ID:         ulid.Make().String(),
		Status:     StatusFound,
		Message:    message,
		NotifySent: &sent,
		CheckedAt:  now,
	}
}

func NotFound(now time.Time, message string) Outcome {
	return Outcome{
		ID:        ulid.Make().String(),
		Status:    StatusNotFound,
		Message:   message,
		CheckedAt: now,
	}
}
