package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// Append validates in, stamps it with a fresh id and the current local time
// and adds it to the store. The returned review carries no sentiment.
func (s *ReviewService) Append(ctx context.Context, in domain.NewReview) (domain.Review, error) {
	if err := validateNewReview(in); err != nil {
		return domain.Review{}, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return domain.Review{}, domain.Internal(err)
	}
	r := domain.Review{
		ID:        id.String(),
		Body:      in.Body,
		Location:  in.Location,
		Timestamp: time.Now().Format(domain.TimestampLayout),
	}
	if err := s.store.Append(ctx, r); err != nil {
		return domain.Review{}, domain.Internal(err)
	}

	observability.ObserveAppend()
	log.Debug().Str("review_id", r.ID).Str("location", r.Location).Msg("review appended")
	return r, nil
}
