package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		pepper   string
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", wantCost: 12},
		{name: "explicit cost", cost: "10", wantCost: 10},
		{name: "cost too low", cost: "9", wantErr: true},
		{name: "cost too high", cost: "15", wantErr: true},
		{name: "non-numeric cost", cost: "fast", wantErr: true},
		{name: "with pepper", cost: "12", pepper: "spicy", wantCost: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, cfg.VerifyPassword("correct-horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong-horse", hash))
	assert.False(t, cfg.VerifyPassword("", hash))
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	plain := &PasswordConfig{BcryptCost: 10}
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "spicy"}

	hash, err := peppered.HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("correct-horse", hash))
	assert.False(t, plain.VerifyPassword("correct-horse", hash),
		"hash made with a pepper must not verify without it")
}

func TestPasswordConfig_HashesAreSalted(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	h1, err := cfg.HashPassword("correct-horse")
	require.NoError(t, err)
	h2, err := cfg.HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
