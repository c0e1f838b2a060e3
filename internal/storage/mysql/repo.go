package mysql

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"strings"

	"review_analyzer/internal/domain"
)

// Repo is a read-mostly view of the reviews table used to seed the in-memory
// store. The service never writes back to it; only the seeder does.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// SeedID gives dataset rows without a ReviewId a stable identifier so repeated
// imports upsert instead of duplicating.
func SeedID(r domain.Review) string {
	if r.ID != "" {
		return r.ID
	}
	sum := sha1.Sum([]byte(r.Body + "|" + r.Location + "|" + r.Timestamp))
	return hex.EncodeToString(sum[:])
}

// rowKey is the review_id stored for rv and whether it was generated.
func rowKey(rv domain.Review) (string, bool) {
	return SeedID(rv), rv.ID == ""
}

func (r *Repo) InsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*5)
	for _, rv := range rs {
		id, generated := rowKey(rv)
		values = append(values, "(?,?,?,?,?)")
		args = append(args,
			id,           // review_id
			rv.Body,      // body
			rv.Location,  // location
			rv.Timestamp, // created_at, MySQL accepts 'YYYY-MM-DD HH:MM:SS'
			generated,    // id_generated
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LoadReviews implements domain.SeedSource.
func (r *Repo) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.Body, &rv.Location, &rv.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countReviewsSQL).Scan(&n)
	return n, err
}
