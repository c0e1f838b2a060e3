package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"review_analyzer/internal/domain"
)

// Query filters the collection and returns it ranked by compound sentiment,
// highest first. Sentiment is recomputed on every call.
//
// The end bound is midnight of EndDate, so reviews stamped later that same
// day are excluded.
func (s *ReviewService) Query(ctx context.Context, q domain.ReviewQuery) ([]domain.Review, error) {
	if q.Location != "" && !domain.IsAllowedLocation(q.Location) {
		return nil, domain.InvalidInput(domain.MsgInvalidLocation)
	}
	start, err := parseBound(q.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseBound(q.EndDate, "end_date")
	if err != nil {
		return nil, err
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}

	out := make([]domain.Review, 0, len(all))
	for _, r := range all {
		if q.Location != "" && r.Location != q.Location {
			continue
		}
		if start != nil || end != nil {
			ts, err := r.Time()
			if err != nil {
				return nil, domain.Internal(fmt.Errorf("review %q: bad timestamp %q", r.ID, r.Timestamp))
			}
			if start != nil && ts.Before(*start) {
				continue
			}
			if end != nil && ts.After(*end) {
				continue
			}
		}
		out = append(out, r)
	}

	if err := s.score(ctx, out); err != nil {
		return nil, err
	}

	// stable: equal scores keep insertion order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sentiment.Compound > out[j].Sentiment.Compound
	})
	return out, nil
}

// score fills Sentiment in place. Each goroutine writes only its own index.
func (s *ReviewService) score(ctx context.Context, rs []domain.Review) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range rs {
		g.Go(func() error {
			sent, err := s.scorer.Score(gctx, rs[i].Body)
			if err != nil {
				return err
			}
			rs[i].Sentiment = &sent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Internal(fmt.Errorf("sentiment: %w", err))
	}
	return nil
}

func parseBound(v, name string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return nil, domain.InvalidInput("Invalid " + name)
	}
	return &t, nil
}
