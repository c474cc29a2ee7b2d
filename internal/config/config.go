package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendBolt  = "bolt"
	BackendRedis = "redis"
)

type Config struct {
	Port    string
	DataDir string

	SchedulePath string
	Location     *time.Location

	StoreBackend string
	RedisURL     string

	LogMode        string
	SessionLockTTL time.Duration
}

func Load() (*Config, error) {
	// .env is optional; env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DataDir:      getEnv("DATA_DIR", "."),
		SchedulePath: getEnv("SCHEDULE_PATH", "schedule.json"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendBolt)),
		RedisURL:     os.Getenv("REDIS_URL"),
		LogMode:      getEnv("LOG_MODE", "development"),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	ttl, err := time.ParseDuration(getEnv("SESSION_LOCK_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_LOCK_TTL: %w", err)
	}
	cfg.SessionLockTTL = ttl

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendBolt:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_BACKEND=%s", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.SchedulePath == "" {
		return fmt.Errorf("SCHEDULE_PATH cannot be empty")
	}
	if c.SessionLockTTL <= 0 {
		return fmt.Errorf("SESSION_LOCK_TTL must be > 0")
	}
	return nil
}

// BoltPath is where the bolt backend keeps its file.
func (c *Config) BoltPath() string {
	return c.DataDir + "/gymbot.db"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
