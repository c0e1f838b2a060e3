package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	DatasetPath    string
	MySQLDSN       string
	ScoreWorkers   int
	WriteRPS       float64
	RequestTimeout time.Duration
	SeedBatchSize  int
	SeedWorkers    int
}

// Load reads configuration from the environment, after applying a .env file
// in the working directory if one exists. Variables already set win over .env.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       ":" + env("PORT", "8000"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		DatasetPath:    env("DATASET_PATH", "data/reviews.csv"),
		MySQLDSN:       env("MYSQL_DSN", ""),
		ScoreWorkers:   atoi("SENTIMENT_WORKERS", 8),
		WriteRPS:       atof("WRITE_RATE_LIMIT", 0),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
		SeedBatchSize:  atoi("SEED_BATCH_SIZE", 500),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
	}
	if c.SeedBatchSize <= 0 {
		c.SeedBatchSize = 500
	}
	if c.SeedWorkers <= 0 {
		c.SeedWorkers = 1
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
