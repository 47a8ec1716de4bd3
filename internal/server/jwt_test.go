package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/policy"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, policy.RolePoster)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, actor.ID)
	assert.Equal(t, policy.RolePoster, actor.Role)
}

func TestJWTService_EmptyToken(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := testJWTService()
	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-different-secret-key-also-at-least-32-bytes",
		ExpirationHours: 24,
	})

	token, err := svc.GenerateToken(uuid.New(), policy.RoleSeeker)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := testJWTService()

	claims := &Claims{
		UserID: uuid.New(),
		Role:   string(policy.RoleSeeker),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(svc.config.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_UnknownRole(t *testing.T) {
	svc := testJWTService()

	claims := &Claims{
		UserID: uuid.New(),
		Role:   "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(svc.config.Secret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestJWTService_WrongSigningMethod(t *testing.T) {
	svc := testJWTService()

	// alg=none tokens must be rejected.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: uuid.New(),
		Role:   string(policy.RoleAdmin),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
