package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/policy"
)

// testTokenValidator is a test implementation of TokenValidator.
type testTokenValidator struct {
	validTokens map[string]policy.Actor
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]policy.Actor)}
}

func (v *testTokenValidator) addValidToken(token string, actor policy.Actor) {
	v.validTokens[token] = actor
}

func (v *testTokenValidator) ValidateToken(tokenString string) (policy.Actor, error) {
	actor, ok := v.validTokens[tokenString]
	if !ok {
		return policy.Actor{}, fmt.Errorf("invalid token")
	}
	return actor, nil
}

func TestRequireAuth_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	actor := policy.Actor{ID: uuid.New(), Role: policy.RoleSeeker}
	validator.addValidToken("valid-token-123", actor)

	handlerCalled := false
	var gotActor policy.Actor
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		var ok bool
		gotActor, ok = ActorFrom(r)
		require.True(t, ok)
	})

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.Header.Set("Authorization", "Bearer valid-token-123")
	rr := httptest.NewRecorder()

	RequireAuth(validator)(handler).ServeHTTP(rr, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, actor, gotActor)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAuth_Rejections(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("valid-token-123", policy.Actor{ID: uuid.New(), Role: policy.RolePoster})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "valid-token-123"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "invalid token", header: "Bearer bogus"},
		{name: "empty token", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/applications", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			RequireAuth(validator)(handler).ServeHTTP(rr, req)

			assert.False(t, handlerCalled)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
		})
	}
}

func TestRequireAuth_CaseInsensitiveBearer(t *testing.T) {
	validator := newTestTokenValidator()
	actor := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	validator.addValidToken("tok", actor)

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "bearer tok")
	rr := httptest.NewRecorder()

	RequireAuth(validator)(handler).ServeHTTP(rr, req)

	assert.True(t, handlerCalled)
}

func TestOptionalAuth(t *testing.T) {
	validator := newTestTokenValidator()
	actor := policy.Actor{ID: uuid.New(), Role: policy.RolePoster}
	validator.addValidToken("tok", actor)

	t.Run("anonymous passes through", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := ActorFrom(r)
			assert.False(t, ok)
		})

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		rr := httptest.NewRecorder()
		OptionalAuth(validator)(handler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("valid token sets actor", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := ActorFrom(r)
			assert.True(t, ok)
			assert.Equal(t, actor, got)
		})

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rr := httptest.NewRecorder()
		OptionalAuth(validator)(handler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bad token treated as anonymous", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := ActorFrom(r)
			assert.False(t, ok)
		})

		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rr := httptest.NewRecorder()
		OptionalAuth(validator)(handler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
