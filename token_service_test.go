package board_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	board "github.com/crewlane/go-board"
)

type testIdentity struct {
	id       string
	username string
}

func (i testIdentity) ID() string       { return i.id }
func (i testIdentity) Username() string { return i.username }

func TestNewTokenService(t *testing.T) {
	t.Run("rejects empty signing key", func(t *testing.T) {
		service, err := board.NewTokenService(nil, nil)

		assert.Nil(t, service)
		assert.ErrorIs(t, err, board.ErrMissingSigningKey)
	})

	t.Run("creates service with nil logger", func(t *testing.T) {
		service, err := board.NewTokenService([]byte("test-signing-key"), nil)

		assert.NoError(t, err)
		assert.NotNil(t, service)
	})
}

func TestTokenService_Generate(t *testing.T) {
	signingKey := []byte("test-signing-key")
	service, err := board.NewTokenService(signingKey, nil)
	require.NoError(t, err)

	identity := testIdentity{id: "1", username: "alice"}

	t.Run("generates a valid signed token", func(t *testing.T) {
		tokenString, err := service.Generate(identity)

		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		token, err := jwt.ParseWithClaims(tokenString, &board.JWTClaims{}, func(token *jwt.Token) (any, error) {
			return signingKey, nil
		})

		require.NoError(t, err)
		assert.True(t, token.Valid)

		claims, ok := token.Claims.(*board.JWTClaims)
		require.True(t, ok)
		assert.Equal(t, "alice", claims.Subject())
		assert.Equal(t, "alice", claims.Username())
		assert.NotEmpty(t, claims.RegisteredClaims.ID)
	})

	t.Run("expiry is exactly one hour after issuance", func(t *testing.T) {
		tokenString, err := service.Generate(identity)
		require.NoError(t, err)

		claims, err := service.Validate(tokenString)
		require.NoError(t, err)

		assert.Equal(t, board.TokenTTL, claims.Expires().Sub(claims.IssuedAt()))
		assert.True(t, claims.Expires().After(claims.IssuedAt()))
	})

	t.Run("rejects nil identity", func(t *testing.T) {
		_, err := service.Generate(nil)
		assert.Error(t, err)
	})
}

func TestTokenService_Validate(t *testing.T) {
	signingKey := []byte("test-signing-key")
	service, err := board.NewTokenService(signingKey, nil)
	require.NoError(t, err)

	t.Run("round trips issued tokens", func(t *testing.T) {
		tokenString, err := service.Generate(testIdentity{id: "1", username: "alice"})
		require.NoError(t, err)

		claims, err := service.Validate(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username())
	})

	t.Run("rejects tokens signed with another key", func(t *testing.T) {
		other, err := board.NewTokenService([]byte("other-key"), nil)
		require.NoError(t, err)

		tokenString, err := other.Generate(testIdentity{id: "1", username: "alice"})
		require.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.True(t, board.IsMalformedError(err), "got %v", err)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		now := time.Now()
		claims := &board.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "alice",
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			},
			User: "alice",
		}

		tokenString, err := service.SignClaims(claims)
		require.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.ErrorIs(t, err, board.ErrTokenExpired)
		assert.True(t, board.IsTokenExpiredError(err))
	})

	t.Run("rejects tokens without an expiry claim", func(t *testing.T) {
		claims := &board.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
			User:             "alice",
		}

		tokenString, err := service.SignClaims(claims)
		require.NoError(t, err)

		_, err = service.Validate(tokenString)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.Validate("not.a.token")
		assert.True(t, board.IsMalformedError(err), "got %v", err)
	})

	t.Run("rejects a corrupted payload", func(t *testing.T) {
		tokenString, err := service.Generate(testIdentity{id: "1", username: "alice"})
		require.NoError(t, err)

		corrupted := tokenString[:len(tokenString)-4] + "AAAA"

		_, err = service.Validate(corrupted)
		assert.Error(t, err)
	})
}
