package main

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_analyzer/internal/adapters/dataset"
	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

// seeder copies the CSV dataset into the MySQL reviews table so the API can
// start from MYSQL_DSN instead of a file.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required")
	}
	log.Info().
		Str("dataset", cfg.DatasetPath).
		Int("batch", cfg.SeedBatchSize).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	src, err := dataset.NewSource(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid dataset location")
	}
	rows, err := src.LoadReviews(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("read dataset failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for start := 0; start < len(rows); start += cfg.SeedBatchSize {
		end := min(start+cfg.SeedBatchSize, len(rows))

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(batch []domain.Review, offset int) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.InsertReviews(ctx, batch); err != nil {
				failed.Add(int64(len(batch)))
				log.Warn().Int("offset", offset).Int("rows", len(batch)).Err(err).Msg("batch insert failed")
				return
			}
			log.Info().Int("offset", offset).Int("rows", len(batch)).Msg("batch ok")
		}(rows[start:end], start)
	}

	wg.Wait()

	total, err := repo.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count failed")
	}
	if n := failed.Load(); n > 0 {
		log.Fatal().Int64("failed_rows", n).Int("table_rows", total).Msg("seeding finished with errors")
	}
	log.Info().Int("read", len(rows)).Int("table_rows", total).Msg("seeding completed")
}
