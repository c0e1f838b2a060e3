package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"review_analyzer/internal/domain"
)

/********** header alias registry **********/

var columnAliases = map[string][]string{
	"id":        {"reviewid", "review_id", "id"},
	"body":      {"reviewbody", "review_body", "body", "text"},
	"location":  {"location", "city"},
	"timestamp": {"timestamp", "created_at", "date"},
}

type columns struct{ id, body, location, timestamp int }

func resolveColumns(header []string) (columns, error) {
	idx := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	find := func(field string) int {
		for _, a := range columnAliases[field] {
			if i, ok := idx[a]; ok {
				return i
			}
		}
		return -1
	}
	c := columns{id: find("id"), body: find("body"), location: find("location"), timestamp: find("timestamp")}
	var missing []string
	if c.body < 0 {
		missing = append(missing, "ReviewBody")
	}
	if c.location < 0 {
		missing = append(missing, "Location")
	}
	if c.timestamp < 0 {
		missing = append(missing, "Timestamp")
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("dataset: missing column(s) %s", strings.Join(missing, ", "))
	}
	return c, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// ReadCSV parses a review dataset. The header row is required; column order
// is free and extra columns are ignored. Every Timestamp must parse with
// domain.TimestampLayout.
func ReadCSV(r io.Reader) ([]domain.Review, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var out []domain.Review
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		rv := domain.Review{
			ID:        strings.TrimSpace(cell(rec, cols.id)),
			Body:      cell(rec, cols.body),
			Location:  strings.TrimSpace(cell(rec, cols.location)),
			Timestamp: strings.TrimSpace(cell(rec, cols.timestamp)),
		}
		if _, err := rv.Time(); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("dataset: line %d: bad timestamp %q", line, rv.Timestamp)
		}
		out = append(out, rv)
	}
	return out, nil
}
