package board

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents the structured claim set carried by a session token
type AuthClaims interface {
	Subject() string
	Username() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	User string `json:"username,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Username returns the username claim, falling back to the subject
func (c *JWTClaims) Username() string {
	if c.User != "" {
		return c.User
	}
	return c.Subject()
}

// Expires returns the expiration time, zero when the claim is absent
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time, zero when the claim is absent
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// HasExpiry reports whether the token carries an expiry claim at all.
// Tokens without one are treated as expired by every consumer (fail closed).
func (c *JWTClaims) HasExpiry() bool {
	return c.RegisteredClaims.ExpiresAt != nil
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
