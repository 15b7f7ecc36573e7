package repo

import (
	"context"

	"tournotify/internal/domain"
)

// OutcomeStore records check outcomes for the /history endpoint.
// Deliberately memory-only: cooldown and history reset on restart.
type OutcomeStore interface {
	Append(ctx context.Context, o domain.Outcome) error
	// Recent returns up to limit outcomes, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Outcome, error)
}
