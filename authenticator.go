package board

import (
	"context"
)

// Auther authenticates credentials and issues session tokens
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator. It fails when the signing
// key is empty so a misconfigured deployment stops at startup instead of
// issuing unsigned tokens.
func NewAuthenticator(provider IdentityProvider, cfg Config) (*Auther, error) {
	tokenService, err := NewTokenService([]byte(cfg.GetSigningKey()), nil)
	if err != nil {
		return nil, err
	}

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and returns a signed session token
func (s *Auther) Login(ctx context.Context, username, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, username, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil {
		s.logger.Error("Login identity is nil")
		return "", ErrIdentityNotFound
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", err
	}

	return token, nil
}

// SessionFromToken validates a raw token and projects it into a session
func (s *Auther) SessionFromToken(raw string) (*SessionObject, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

var _ Authenticator = (*Auther)(nil)
