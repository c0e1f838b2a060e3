package app

import (
	"review_analyzer/internal/domain"
)

const defaultScoreWorkers = 8

// ReviewService answers review queries and accepts new reviews. It owns no
// state of its own; the collection lives in the injected store.
type ReviewService struct {
	store   domain.ReviewStore
	scorer  domain.Scorer
	workers int
}

func NewReviewService(st domain.ReviewStore, sc domain.Scorer, workers int) *ReviewService {
	if workers <= 0 {
		workers = defaultScoreWorkers
	}
	return &ReviewService{store: st, scorer: sc, workers: workers}
}
