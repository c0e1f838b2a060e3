package domain

import "time"

// TimestampLayout is the wire and storage format of Review.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the format of query date bounds.
const DateLayout = "2006-01-02"

type Review struct {
	ID        string     `json:"ReviewId,omitempty"` // empty for seed rows that carry none
	Body      string     `json:"ReviewBody"`
	Location  string     `json:"Location"`
	Timestamp string     `json:"Timestamp"`
	Sentiment *Sentiment `json:"sentiment,omitempty"` // computed per read, never stored
}

// Sentiment holds VADER polarity scores. Compound is normalized to [-1, 1].
type Sentiment struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// Time parses Timestamp with TimestampLayout.
func (r Review) Time() (time.Time, error) {
	return time.Parse(TimestampLayout, r.Timestamp)
}

// ReviewQuery filters the read path. Empty fields disable the filter.
type ReviewQuery struct {
	Location  string
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, compared against 00:00:00 of that day
}

// NewReview is the write path input.
type NewReview struct {
	Body     string `validate:"required"`
	Location string `validate:"required,location"`
}
