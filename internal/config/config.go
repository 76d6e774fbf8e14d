package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	CatalogPath           string
	JobWorkerCount        int
	JobQueueSize          int
	StreakSweepAt         string
	DefaultSessionMinutes int
	RecentReviewWindow    int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:learnloop.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		CatalogPath:           os.Getenv("CATALOG_PATH"),
		JobWorkerCount:        envIntOr("JOB_WORKER_COUNT", 2),
		JobQueueSize:          envIntOr("JOB_QUEUE_SIZE", 32),
		StreakSweepAt:         envOr("STREAK_SWEEP_AT", "00:15"),
		DefaultSessionMinutes: envIntOr("DEFAULT_SESSION_MINUTES", 10),
		RecentReviewWindow:    envIntOr("RECENT_REVIEW_WINDOW", 20),
	}
}

// Validate reports every invalid field at once, naming the env var that sets it.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			problems = append(problems, fmt.Sprintf("CATALOG_PATH %q is not readable: %v", c.CatalogPath, err))
		}
	}
	if c.JobWorkerCount < 1 {
		problems = append(problems, "JOB_WORKER_COUNT must be at least 1")
	}
	if c.JobQueueSize < 1 {
		problems = append(problems, "JOB_QUEUE_SIZE must be at least 1")
	}
	if _, err := c.SweepTime(); err != nil {
		problems = append(problems, fmt.Sprintf("STREAK_SWEEP_AT must be HH:MM (got %q)", c.StreakSweepAt))
	}
	if c.DefaultSessionMinutes < 1 || c.DefaultSessionMinutes > 120 {
		problems = append(problems, "DEFAULT_SESSION_MINUTES must be between 1 and 120")
	}
	if c.RecentReviewWindow < 1 {
		problems = append(problems, "RECENT_REVIEW_WINDOW must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// SweepTime parses StreakSweepAt as a UTC wall-clock time.
func (c Config) SweepTime() (time.Time, error) {
	return time.Parse("15:04", c.StreakSweepAt)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
