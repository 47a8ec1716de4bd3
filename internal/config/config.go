// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	// Server
	Port string // HTTP listen port

	// Storage
	DatabaseURL string // PostgreSQL connection URL
	RedisURL    string // Redis connection URL for rate limiting (optional)

	// Rate limiting
	RateLimit       int // requests per window per client
	RateLimitWindow int // window length in seconds

	// Background sweep
	SweepSchedule string // cron expression for the stale-listing sweep
	SweepMaxDays  int    // listings older than this many days are unpublished

	// Mail (optional; notifications are skipped when SMTPHost is empty)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envOr("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SweepSchedule: envOr("SWEEP_SCHEDULE", "0 3 * * *"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      envOr("MAIL_FROM", "no-reply@jobboard.local"),
	}

	var err error
	if cfg.RateLimit, err = envInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = envInt("RATE_LIMIT_WINDOW_SECONDS", 900); err != nil {
		return nil, err
	}
	if cfg.SweepMaxDays, err = envInt("SWEEP_MAX_DAYS", 90); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = envInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required but not set")
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("config error: RATE_LIMIT must be positive, got: %d", c.RateLimit)
	}
	if c.RateLimitWindow < 1 {
		return fmt.Errorf("config error: RATE_LIMIT_WINDOW_SECONDS must be positive, got: %d", c.RateLimitWindow)
	}
	if c.SweepMaxDays < 1 {
		return fmt.Errorf("config error: SWEEP_MAX_DAYS must be positive, got: %d", c.SweepMaxDays)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
