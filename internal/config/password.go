package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bounds for BCRYPT_COST. Below 10 is too cheap for stored credentials;
// above 14 makes login latency noticeable.
const (
	minBcryptCost     = 10
	maxBcryptCost     = 14
	defaultBcryptCost = 12
)

// PasswordConfig holds the bcrypt cost and an optional site-wide pepper
// appended to every password before hashing.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// NewPasswordConfig reads BCRYPT_COST (default: 12) and PASSWORD_PEPPER
// (optional) from the environment.
func NewPasswordConfig() (*PasswordConfig, error) {
	cfg := &PasswordConfig{
		Pepper: envOr("PASSWORD_PEPPER", ""),
	}

	var err error
	if cfg.BcryptCost, err = envInt("BCRYPT_COST", defaultBcryptCost); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *PasswordConfig) Validate() error {
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		return fmt.Errorf("config error: BCRYPT_COST must be between %d and %d, got: %d",
			minBcryptCost, maxBcryptCost, c.BcryptCost)
	}
	return nil
}

// HashPassword returns the bcrypt hash of the peppered password.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the peppered password matches the stored
// hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}
