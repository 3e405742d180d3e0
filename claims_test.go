package board_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	board "github.com/crewlane/go-board"
)

func TestJWTClaims(t *testing.T) {
	t.Run("username falls back to subject", func(t *testing.T) {
		claims := &board.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		}

		assert.Equal(t, "alice", claims.Username())

		claims.User = "bob"
		assert.Equal(t, "bob", claims.Username())
	})

	t.Run("missing timestamps are zero", func(t *testing.T) {
		claims := &board.JWTClaims{}

		assert.True(t, claims.Expires().IsZero())
		assert.True(t, claims.IssuedAt().IsZero())
		assert.False(t, claims.HasExpiry())
	})

	t.Run("timestamps round trip", func(t *testing.T) {
		now := time.Now().Truncate(time.Second)
		claims := &board.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}

		assert.True(t, claims.HasExpiry())
		assert.Equal(t, now, claims.IssuedAt())
		assert.Equal(t, now.Add(time.Hour), claims.Expires())
	})
}

func TestTicketStatus(t *testing.T) {
	for _, status := range board.BoardStatuses {
		parsed, err := board.ParseTicketStatus(string(status))
		assert.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := board.ParseTicketStatus("Archived")
	assert.Error(t, err)
}
