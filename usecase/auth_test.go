package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prithidevghosh/speerNote/model"
	"github.com/prithidevghosh/speerNote/services"
	"github.com/prithidevghosh/speerNote/testutils"
)

type authFixture struct {
	svc     *AuthService
	users   *testutils.MemoryUsers
	revoked *testutils.MemoryRevocations
	tokens  *services.TokenIssuer
}

func setupAuthTest(t *testing.T) *authFixture {
	t.Helper()

	users := testutils.NewMemoryUsers()
	revoked := testutils.NewMemoryRevocations()
	tokens := services.NewTokenIssuer("test_secret_key", time.Hour)
	svc := NewAuthService(users, services.NewPasswordHasher(testutils.CheapArgon2Params), tokens, revoked)

	return &authFixture{svc: svc, users: users, revoked: revoked, tokens: tokens}
}

func TestAuthService_RegisterLoginAuthenticate(t *testing.T) {
	f := setupAuthTest(t)
	ctx := context.Background()

	user, err := f.svc.Register(ctx, "Ada", "ada@example.com", "secret")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "Ada", user.Name)
	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$argon2id$"))

	token, err := f.svc.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, claims, err := f.svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, user.Email, principal.Email)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	f := setupAuthTest(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "Ada", "ada@example.com", "secret")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, "Another Ada", "ada@example.com", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, f.users.Count())
}

func TestAuthService_RegisterInvalidInput(t *testing.T) {
	f := setupAuthTest(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "ada@example.com", "secret"},
		{"missing password", "Ada", "ada@example.com", ""},
		{"missing email", "Ada", "", "secret"},
		{"no at sign", "Ada", "ada.example.com", "secret"},
		{"no tld", "Ada", "ada@example", "secret"},
		{"whitespace", "Ada", "ada lovelace@example.com", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, f.users.Count())
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := setupAuthTest(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "Ada", "ada@example.com", "secret")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = f.svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthService_LoginHasherError(t *testing.T) {
	f := setupAuthTest(t)
	ctx := context.Background()

	require.NoError(t, f.users.CreateUser(ctx, &model.User{
		Name:     "Broken",
		Email:    "broken@example.com",
		Password: "not-a-hash",
	}))

	_, err := f.svc.Login(ctx, "broken@example.com", "secret")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBadCredentials))
	assert.ErrorIs(t, err, services.ErrVerification)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	f := setupAuthTest(t)
	ctx := context.Background()

	user, err := f.svc.Register(ctx, "Ada", "ada@example.com", "secret")
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, _, err := f.svc.Authenticate(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := f.svc.Authenticate(ctx, "garbage")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		expired, err := f.tokens.WithClock(func() time.Time { return past }).Issue(user)
		require.NoError(t, err)

		_, _, err = f.svc.Authenticate(ctx, expired)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost, err := f.svc.Register(ctx, "Ghost", "ghost@example.com", "secret")
		require.NoError(t, err)
		token, err := f.svc.Login(ctx, "ghost@example.com", "secret")
		require.NoError(t, err)

		f.users.Delete(ghost.ID)

		_, _, err = f.svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := setupAuthTest(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "Ada", "ada@example.com", "secret")
	require.NoError(t, err)
	token, err := f.svc.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)

	_, claims, err := f.svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))

	_, _, err = f.svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// A fresh login is unaffected.
	fresh, err := f.svc.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	_, _, err = f.svc.Authenticate(ctx, fresh)
	assert.NoError(t, err)
}

func TestAuthService_LogoutWithoutStore(t *testing.T) {
	f := setupAuthTest(t)
	f.svc.Revoked = nil

	err := f.svc.Logout(context.Background(), &services.Claims{})
	assert.ErrorIs(t, err, ErrRevocationDisabled)
}

func TestAuthService_RevocationStoreDown(t *testing.T) {
	f := setupAuthTest(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "Ada", "ada@example.com", "secret")
	require.NoError(t, err)
	token, err := f.svc.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)

	f.revoked.Err = errors.New("connection refused")

	_, _, err = f.svc.Authenticate(ctx, token)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}
