package domain

import "context"

// ReviewStore owns the review collection. Append is its only mutation.
type ReviewStore interface {
	List(ctx context.Context) ([]Review, error)
	Append(ctx context.Context, r Review) error
	Len() int
}

// SeedSource yields the initial dataset once at startup.
type SeedSource interface {
	LoadReviews(ctx context.Context) ([]Review, error)
}

type Scorer interface {
	Score(ctx context.Context, text string) (Sentiment, error)
}
