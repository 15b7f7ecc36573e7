package memory

import (
	"context"
	"sync"

	"tournotify/internal/domain"
)

const defaultCap = 300

// Store keeps a bounded window of recent outcomes in memory.
type Store struct {
	mu       sync.RWMutex
	cap      int
	outcomes []domain.Outcome
}

func New() *Store {
	return NewWithCap(defaultCap)
}

func NewWithCap(n int) *Store {
	if n < 1 {
		n = defaultCap
	}
	return &Store{cap: n, outcomes: make([]domain.Outcome, 0, n)}
}

func (s *Store) Append(ctx context.Context, o domain.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, o)
	if len(s.outcomes) > s.cap {
		s.outcomes = s.outcomes[len(s.outcomes)-s.cap:]
	}
	return nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.outcomes) {
		limit = len(s.outcomes)
	}
	out := make([]domain.Outcome, 0, limit)
	for i := len(s.outcomes) - 1; i >= len(s.outcomes)-limit; i-- {
		out = append(out, s.outcomes[i])
	}
	return out, nil
}
