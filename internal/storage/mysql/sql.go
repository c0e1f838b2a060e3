package mysql

const insertReviewsPrefix = "INSERT INTO reviews\n  (review_id, body, location, created_at, id_generated)\nVALUES "

// Re-importing the same dataset only refreshes content; seq (load order) is kept.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  body       = VALUES(body),\n" +
	"  location   = VALUES(location),\n" +
	"  created_at = VALUES(created_at),\n" +
	"  id_generated = VALUES(id_generated)\n"

// Seed order is insertion order. Generated ids are key material only and
// come back empty, as they would from the CSV. DATE_FORMAT keeps the scan independent of
// the DSN's parseTime setting.
const listReviewsSQL = `
SELECT
  CASE WHEN id_generated THEN '' ELSE review_id END,
  body,
  location,
  DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
FROM reviews
ORDER BY seq
`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`
