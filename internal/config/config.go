// Package config resolves the engine's runtime configuration from the
// environment plus an optional YAML review-plan file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/adexbam/Speak90-sub001/internal/models"
)

// Store backend names accepted in SPEAK90_STORE.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the resolved runtime configuration.
type Config struct {
	StoreBackend string // file (default), postgres, redis
	DataDir      string // file backend
	PostgresURL  string // postgres backend
	RedisAddr    string // redis backend
	NATSURL      string // empty → analytics logged, not published
	LogMode      string // dev (default) or prod
	DueCap       int
	Plan         models.MicroReviewPlan
}

// Load reads configuration from the environment. SPEAK90_PLAN_FILE, when
// set, points at a YAML review-plan document overriding the default
// micro-review plan.
func Load() (Config, error) {
	cfg := Config{
		StoreBackend: envOr("SPEAK90_STORE", BackendFile),
		DataDir:      envOr("SPEAK90_DATA_DIR", "data"),
		PostgresURL:  os.Getenv("SPEAK90_POSTGRES_URL"),
		RedisAddr:    envOr("SPEAK90_REDIS_ADDR", "localhost:6379"),
		NATSURL:      os.Getenv("SPEAK90_NATS_URL"),
		LogMode:      envOr("SPEAK90_LOG_MODE", "dev"),
		DueCap:       models.DefaultDueCap,
		Plan:         models.DefaultMicroReviewPlan,
	}

	switch cfg.StoreBackend {
	case BackendFile, BackendPostgres, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendPostgres && cfg.PostgresURL == "" {
		return Config{}, fmt.Errorf("SPEAK90_POSTGRES_URL not set")
	}

	if raw, ok := os.LookupEnv("SPEAK90_DUE_CAP"); ok {
		cap, err := strconv.Atoi(raw)
		if err != nil || cap < 0 {
			return Config{}, fmt.Errorf("invalid SPEAK90_DUE_CAP %q", raw)
		}
		cfg.DueCap = cap
	}

	if path, ok := os.LookupEnv("SPEAK90_PLAN_FILE"); ok && path != "" {
		plan, err := LoadPlanFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Plan = plan
	}

	return cfg, nil
}

// LoadPlanFile parses a YAML review-plan document and returns its
// dailyMicroReview section.
func LoadPlanFile(path string) (models.MicroReviewPlan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.MicroReviewPlan{}, fmt.Errorf("read plan file: %w", err)
	}
	var plan models.ReviewPlan
	if err := yaml.Unmarshal(raw, &plan); err != nil {
		return models.MicroReviewPlan{}, fmt.Errorf("parse plan file %s: %w", path, err)
	}
	return plan.DailyMicroReview, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
