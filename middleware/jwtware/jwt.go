package jwtware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrJWTMissingOrMalformed is returned when no usable bearer token is found
var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

// TokenValidator interface for validating tokens without import cycles.
// This mirrors the TokenService.Validate method from the board package.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims interface for structured claims without import cycles.
// This mirrors the AuthClaims interface from the board package.
type AuthClaims interface {
	Subject() string
	Username() string
	Expires() time.Time
	IssuedAt() time.Time
}

// Config holds the middleware options
type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// ErrorHandler maps validation failures to a response. The default
	// collapses expired and malformed tokens into a single 401 so the
	// distinction never reaches the body.
	ErrorHandler func(*fiber.Ctx, error) error
	// ContextKey is where validated claims are stored on the request
	ContextKey string
	// AuthScheme is the expected Authorization scheme prefix
	AuthScheme string
	// TokenValidator is required for token validation
	TokenValidator TokenValidator
}

func defaultConfig(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "session"
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	if cfg.TokenValidator == nil {
		panic("jwtware: Config.TokenValidator is required")
	}

	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
	})
}

// New builds a fiber middleware that extracts the bearer token from the
// Authorization header and re-validates it on every request.
func New(config ...Config) fiber.Handler {
	cfg := defaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := extractToken(c, cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, scheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrJWTMissingOrMalformed
	}

	if scheme == "" {
		return header, nil
	}

	prefix := scheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrJWTMissingOrMalformed
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrJWTMissingOrMalformed
	}

	return token, nil
}
