package sentiment

import (
	"context"
	"time"

	"github.com/jonreiter/govader"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// Vader scores text with the VADER lexicon. PolarityScores only reads the
// analyzer's tables, so one Vader is safe to share between goroutines.
type Vader struct{ sia *govader.SentimentIntensityAnalyzer }

// NewVader loads the lexicon and emoji tables; it takes a few milliseconds,
// so build one per process.
func NewVader() *Vader {
	return &Vader{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Sentiment{}, err
	}
	start := time.Now()
	s := v.sia.PolarityScores(text)
	observability.ObserveSentiment(time.Since(start))
	return domain.Sentiment{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}, nil
}
