package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// fakeUserStore is an in-memory UserStore for unit tests.
type fakeUserStore struct {
	users map[uuid.UUID]*db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, phone, role string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, Phone: phone, Role: role, Status: true}
	return id, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.users[id].PasswordHash = passwordHash
	return nil
}

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: 10}
}

func TestUserService_Register(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jane Seeker",
		Email:    "jane@example.com",
		Password: "correct-horse",
		Role:     "seeker",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Seeker", user.Name)
	assert.Equal(t, "seeker", user.Role)

	stored := store.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())

	req := &types.CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "correct-horse", Role: "seeker"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestUserService_Login(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())

	_, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name: "Jane", Email: "jane@example.com", Password: "correct-horse", Role: "poster",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(context.Background(), &types.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "poster", user.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &types.LoginRequest{Email: "jane@example.com", Password: "wrong"})
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &types.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})
}

func TestUserService_Login_RestrictedAndDeactivated(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name: "Jane", Email: "jane@example.com", Password: "correct-horse", Role: "seeker",
	})
	require.NoError(t, err)

	store.users[user.ID].IsRestricted = true
	_, err = svc.Login(context.Background(), &types.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	store.users[user.ID].IsRestricted = false
	store.users[user.ID].Status = false
	_, err = svc.Login(context.Background(), &types.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUserService_UpdatePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.CreateUserRequest{
		Name: "Jane", Email: "jane@example.com", Password: "correct-horse", Role: "seeker",
	})
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "new-password-1")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), uuid.New(), "correct-horse", "new-password-1")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("success", func(t *testing.T) {
		err := svc.UpdatePassword(context.Background(), user.ID, "correct-horse", "new-password-1")
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &types.LoginRequest{Email: "jane@example.com", Password: "new-password-1"})
		assert.NoError(t, err)
	})
}
