// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/policy"
	"github.com/jonathan/job-board/internal/server/middleware"
)

// Claims represents JWT claims with user ID and role.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// JWTService provides JWT token generation and validation functionality.
type JWTService struct {
	config *config.JWTConfig
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		config: cfg,
	}
}

// GenerateToken generates a JWT token for the given user ID and role.
func (s *JWTService) GenerateToken(userID uuid.UUID, role policy.Role) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the actor it identifies.
// This implements the middleware.TokenValidator interface.
func (s *JWTService) ValidateToken(tokenString string) (policy.Actor, error) {
	if tokenString == "" {
		return policy.Actor{}, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return policy.Actor{}, fmt.Errorf("invalid token signature: %w", err)
		}
		if err == jwt.ErrTokenExpired {
			return policy.Actor{}, fmt.Errorf("token expired: %w", err)
		}
		if err == jwt.ErrTokenMalformed {
			return policy.Actor{}, fmt.Errorf("malformed token: %w", err)
		}
		return policy.Actor{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return policy.Actor{}, fmt.Errorf("token is not valid")
	}

	role, ok := policy.ParseRole(claims.Role)
	if !ok {
		return policy.Actor{}, fmt.Errorf("token carries unknown role: %q", claims.Role)
	}

	return policy.Actor{ID: claims.UserID, Role: role}, nil
}

var _ middleware.TokenValidator = (*JWTService)(nil)
