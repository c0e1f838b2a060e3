package dataset

import (
	"context"
	"fmt"
	"os"
	"strings"

	"review_analyzer/internal/domain"
)

// FileSource reads the seed dataset from a local CSV file.
type FileSource struct{ Path string }

func (f FileSource) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer fh.Close()
	return ReadCSV(fh)
}

// NewSource picks a remote source for http(s) locations and a file source
// otherwise.
func NewSource(location string) (domain.SeedSource, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		rm, err := NewRemote(location, nil)
		if err != nil {
			return nil, err
		}
		return rm, nil
	}
	return FileSource{Path: location}, nil
}
