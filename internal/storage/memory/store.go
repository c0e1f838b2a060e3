package memory

import (
	"context"
	"sync"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// Store is an append-only, process-lifetime review collection.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

// New seeds the store with a copy of seed.
func New(seed []domain.Review) *Store {
	rs := make([]domain.Review, len(seed))
	copy(rs, seed)
	for i := range rs {
		rs[i].Sentiment = nil
	}
	observability.SetStored(len(rs))
	return &Store{reviews: rs}
}

// List returns a snapshot in insertion order. Callers may modify it freely.
func (s *Store) List(ctx context.Context) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out, nil
}

func (s *Store) Append(ctx context.Context, r domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Sentiment = nil
	s.mu.Lock()
	s.reviews = append(s.reviews, r)
	n := len(s.reviews)
	s.mu.Unlock()
	observability.SetStored(n)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}
