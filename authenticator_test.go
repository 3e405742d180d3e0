package board_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	board "github.com/crewlane/go-board"
)

func TestNewAuthenticator(t *testing.T) {
	t.Run("rejects an empty signing key at construction", func(t *testing.T) {
		auther, err := board.NewAuthenticator(board.NewUserProvider(newStubStore(t)), board.SimpleConfig{})

		assert.Nil(t, auther)
		assert.ErrorIs(t, err, board.ErrMissingSigningKey)
	})
}

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()
	cfg := board.SimpleConfig{SigningKey: "test-signing-key"}

	t.Run("issues a token that validates into a session", func(t *testing.T) {
		auther, err := board.NewAuthenticator(board.NewUserProvider(newStubStore(t)), cfg)
		require.NoError(t, err)

		token, err := auther.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		session, err := auther.SessionFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", session.GetUsername())
		require.NotNil(t, session.GetExpirationDate())
		require.NotNil(t, session.GetIssuedAt())
		assert.True(t, session.GetExpirationDate().After(*session.GetIssuedAt()))
	})

	t.Run("propagates credential failures", func(t *testing.T) {
		auther, err := board.NewAuthenticator(board.NewUserProvider(newStubStore(t)), cfg)
		require.NoError(t, err)

		_, err = auther.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, board.ErrInvalidCredentials)
	})

	t.Run("rejects tokens from another issuer", func(t *testing.T) {
		auther, err := board.NewAuthenticator(board.NewUserProvider(newStubStore(t)), cfg)
		require.NoError(t, err)

		other, err := board.NewAuthenticator(board.NewUserProvider(newStubStore(t)), board.SimpleConfig{SigningKey: "other-key"})
		require.NoError(t, err)

		token, err := other.Login(ctx, "alice", "secret1")
		require.NoError(t, err)

		_, err = auther.SessionFromToken(token)
		assert.Error(t, err)
	})
}
