package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	board "github.com/crewlane/go-board"
)

type stubUserStore struct {
	users map[string]*board.User
	err   error
}

func (s *stubUserStore) GetByUsername(_ context.Context, username string) (*board.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[username]
	if !ok {
		return nil, board.ErrIdentityNotFound
	}
	return user, nil
}

func newStubStore(t *testing.T) *stubUserStore {
	t.Helper()

	hash, err := board.HashPassword("secret1")
	require.NoError(t, err)

	return &stubUserStore{
		users: map[string]*board.User{
			"alice": {ID: 1, Username: "alice", PasswordHash: hash},
		},
	}
}

func TestUserProvider_VerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("correct credentials", func(t *testing.T) {
		provider := board.NewUserProvider(newStubStore(t))

		identity, err := provider.VerifyIdentity(ctx, "alice", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username())
		assert.Equal(t, "1", identity.ID())
	})

	t.Run("wrong password", func(t *testing.T) {
		provider := board.NewUserProvider(newStubStore(t))

		_, err := provider.VerifyIdentity(ctx, "alice", "wrong")

		assert.ErrorIs(t, err, board.ErrInvalidCredentials)
	})

	t.Run("unknown user yields the same error shape as a wrong password", func(t *testing.T) {
		provider := board.NewUserProvider(newStubStore(t))

		_, wrongPassErr := provider.VerifyIdentity(ctx, "alice", "wrong")
		_, unknownErr := provider.VerifyIdentity(ctx, "nobody", "x")

		assert.ErrorIs(t, unknownErr, board.ErrInvalidCredentials)
		assert.Equal(t, wrongPassErr, unknownErr)
	})

	t.Run("store fault maps to service unavailable", func(t *testing.T) {
		provider := board.NewUserProvider(&stubUserStore{err: errors.New("connection refused")})

		_, err := provider.VerifyIdentity(ctx, "alice", "secret1")

		assert.ErrorIs(t, err, board.ErrServiceUnavailable)
	})
}
