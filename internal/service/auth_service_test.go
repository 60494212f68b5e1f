package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"todoapp/internal/domain"
	"todoapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewAuthService(store.Users(), newTestTokens(t), bcrypt.MinCost), store
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	res, err := auth.Register(ctx, "alice", "alice@example.com", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.Username)
	assert.Positive(t, res.UserID)

	claims, err := auth.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)

	login, err := auth.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, res.UserID, login.UserID)
}

func TestAuthService_PasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	auth, store := newTestAuth(t)

	_, err := auth.Register(ctx, "alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	u, err := store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw1")))
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	_, err := auth.Register(ctx, "alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "alice", "other@example.com", "pw2")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = auth.Register(ctx, "alice2", "alice@example.com", "pw2")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// usernames are compared exactly
	_, err = auth.Register(ctx, "Alice", "capital@example.com", "pw2")
	assert.NoError(t, err)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	tests := []struct {
		name                      string
		username, email, password string
	}{
		{"empty username", "  ", "a@x.io", "pw"},
		{"long username", strings.Repeat("u", 51), "a@x.io", "pw"},
		{"empty email", "bob", "", "pw"},
		{"bad email", "bob", "not-an-email", "pw"},
		{"long email", "bob", strings.Repeat("e", 95) + "@x.io1", "pw"},
		{"empty password", "bob", "a@x.io", ""},
		{"long password", "bob", "a@x.io", strings.Repeat("p", 73)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	_, err := auth.Register(ctx, "alice", "alice@example.com", "pw1")
	require.NoError(t, err)

	_, wrongPassword := auth.Login(ctx, "alice", "nope")
	_, unknownUser := auth.Login(ctx, "ghost", "nope")

	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, domain.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

type failingUsers struct {
	UserStore
	err error
}

func (f failingUsers) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, f.err
}

func (f failingUsers) ExistsByUsername(context.Context, string) (bool, error) {
	return false, f.err
}

func TestAuthService_StoreErrorsAreNotUnauthorized(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")
	auth := NewAuthService(failingUsers{err: boom}, newTestTokens(t), bcrypt.MinCost)

	_, err := auth.Login(ctx, "alice", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	_, err = auth.Register(ctx, "alice", "alice@example.com", "pw")
	assert.ErrorIs(t, err, boom)
}

type racingUsers struct {
	*repository.MemoryUsers
}

// simulates losing the insert race after the existence checks passed
func (racingUsers) Create(context.Context, *domain.User) error {
	return domain.ErrEmailTaken
}

func TestAuthService_RegisterRaceMapsToConflict(t *testing.T) {
	store := repository.NewMemoryStore()
	auth := NewAuthService(racingUsers{store.Users()}, newTestTokens(t), bcrypt.MinCost)

	_, err := auth.Register(context.Background(), "alice", "alice@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_UsernameNormalizedOnBothPaths(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	res, err := auth.Register(ctx, " bob ", "bob@example.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Username)

	for _, name := range []string{" bob ", "bob", "bob\t"} {
		login, err := auth.Login(ctx, name, "pw1")
		require.NoError(t, err, "%q", name)
		assert.Equal(t, res.UserID, login.UserID)
	}

	_, err = auth.Register(ctx, "bob", "other@example.com", "pw1")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = auth.Login(ctx, "Bob", "pw1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "names are otherwise matched exactly")
}
