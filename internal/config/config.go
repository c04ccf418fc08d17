package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// SQLite database holding stories and canvas rows.
	DBPath string

	// Auth
	APIKey string

	// Export job pool
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// Request size limit for canvas save payloads.
	MaxRequestBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DBPath: envOr("CANVASDOC_DB_PATH", "canvasdoc.db"),
		APIKey: os.Getenv("CANVASDOC_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		MaxRequestBytes: envInt64("MAX_REQUEST_BYTES", 10485760), // 10MB
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CANVASDOC_API_KEY is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("CANVASDOC_DB_PATH is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
