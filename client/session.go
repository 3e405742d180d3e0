package client

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crewlane/go-board"
)

// Navigator models the "redirect" side effect of login and logout so a UI
// can hook view transitions and tests can observe them.
type Navigator func(path string)

// HomePath is where login and logout both navigate. Logout going home
// instead of the login view is observed product behavior, preserved as is.
const HomePath = "/"

// LoginPath is where guarded operations send an unauthenticated caller
const LoginPath = "/login"

// SessionGuard wraps the token slot and answers session-state queries.
// It is an explicit object handed to whoever needs auth state, not a
// package-level singleton. State is re-evaluated on every call; there is
// no timer that proactively logs the user out at the expiry instant.
type SessionGuard struct {
	store    TokenStore
	logger   board.Logger
	navigate Navigator
	now      func() time.Time
}

// NewSessionGuard initializes a guard over the given token slot
func NewSessionGuard(store TokenStore) *SessionGuard {
	return &SessionGuard{
		store:    store,
		logger:   noopLogger{},
		navigate: func(string) {},
		now:      time.Now,
	}
}

func (g *SessionGuard) WithLogger(l board.Logger) *SessionGuard {
	if l != nil {
		g.logger = l
	}
	return g
}

func (g *SessionGuard) WithNavigator(n Navigator) *SessionGuard {
	if n != nil {
		g.navigate = n
	}
	return g
}

// WithClock overrides the time source used for expiry checks
func (g *SessionGuard) WithClock(now func() time.Time) *SessionGuard {
	if now != nil {
		g.now = now
	}
	return g
}

// DecodeToken parses a token WITHOUT verifying its signature: the client
// never holds the server secret, so this proves well-formedness only.
// Any decode failure yields nil, never an error that aborts the caller.
func DecodeToken(raw string) *board.JWTClaims {
	if raw == "" {
		return nil
	}

	parser := jwt.NewParser()
	claims := &board.JWTClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil
	}

	return claims
}

// IsExpired reports whether the claims are past their expiry. A token with
// no expiry claim is treated as expired (fail closed). The comparison is
// exp (seconds) * 1000 against the current wall clock in milliseconds.
func (g *SessionGuard) IsExpired(claims *board.JWTClaims) bool {
	if claims == nil || !claims.HasExpiry() {
		return true
	}

	expMillis := claims.Expires().Unix() * 1000
	return expMillis < g.now().UnixMilli()
}

// LoggedIn is true iff a token is present, decodes, and is unexpired.
// Storage faults degrade to false: a missing token and an unreadable slot
// are indistinguishable here.
func (g *SessionGuard) LoggedIn() bool {
	token, err := g.store.Get()
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			g.logger.Warn("session guard could not read token slot", "error", err)
		}
		return false
	}

	claims := DecodeToken(token)
	if claims == nil {
		return false
	}

	return !g.IsExpired(claims)
}

// Token returns the stored token exactly as persisted, or empty
func (g *SessionGuard) Token() string {
	token, err := g.store.Get()
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			g.logger.Warn("session guard could not read token slot", "error", err)
		}
		return ""
	}
	return token
}

// Profile returns the decoded claims of the stored token, or nil
func (g *SessionGuard) Profile() *board.JWTClaims {
	return DecodeToken(g.Token())
}

// Login persists the token into the durable slot, overwriting any previous
// session, then navigates home. A persistence fault is logged and the
// caller proceeds logged out.
func (g *SessionGuard) Login(token string) {
	if err := g.store.Set(token); err != nil {
		g.logger.Error("session guard could not persist token", "error", err)
	}
	g.navigate(HomePath)
}

// Logout clears the slot then navigates home regardless of prior state
func (g *SessionGuard) Logout() {
	if err := g.store.Remove(); err != nil {
		g.logger.Error("session guard could not clear token", "error", err)
	}
	g.navigate(HomePath)
}

// Navigate exposes the navigator for guarded collaborators
func (g *SessionGuard) Navigate(path string) {
	g.navigate(path)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
