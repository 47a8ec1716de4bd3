package config

import (
	"fmt"
)

// JWTConfig holds the token signing secret and lifetime. Kept separate from
// Config so the token service does not carry the whole server configuration.
type JWTConfig struct {
	Secret          string // HMAC signing secret, required
	ExpirationHours int    // token lifetime in hours
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS
// (default: 24) from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret: envOr("JWT_SECRET", ""),
	}

	var err error
	if cfg.ExpirationHours, err = envInt("JWT_EXPIRATION_HOURS", 24); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("config error: JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("config error: JWT_EXPIRATION_HOURS must be positive, got: %d", c.ExpirationHours)
	}
	return nil
}
