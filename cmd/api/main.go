package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/dataset"
	server "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/adapters/sentiment"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
	"review_analyzer/internal/storage/memory"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// seed
	src, desc := seedSource(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	seed, err := src.LoadReviews(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("source", desc).Msg("loading seed dataset failed")
	}
	log.Info().Str("source", desc).Int("reviews", len(seed)).Msg("seed dataset loaded")

	// deps
	store := memory.New(seed)
	scorer := sentiment.NewVader()
	svc := app.NewReviewService(store, scorer, cfg.ScoreWorkers)

	// http
	srv := server.New(server.Options{RequestTimeout: cfg.RequestTimeout, WriteRPS: cfg.WriteRPS})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// seedSource prefers MySQL when a DSN is configured, else the CSV location.
func seedSource(cfg shared.Config) (domain.SeedSource, string) {
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), "mysql"
	}
	src, err := dataset.NewSource(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Str("dataset", cfg.DatasetPath).Msg("invalid dataset location")
	}
	return src, cfg.DatasetPath
}
