package jwtware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlane/go-board/middleware/jwtware"
)

type stubClaims struct {
	subject string
}

func (s stubClaims) Subject() string     { return s.subject }
func (s stubClaims) Username() string    { return s.subject }
func (s stubClaims) Expires() time.Time  { return time.Now().Add(time.Hour) }
func (s stubClaims) IssuedAt() time.Time { return time.Now() }

type stubValidator struct {
	accept string
}

func (v stubValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	if tokenString != v.accept {
		return nil, errors.New("token is malformed")
	}
	return stubClaims{subject: "alice"}, nil
}

func newApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", jwtware.New(cfg), func(c *fiber.Ctx) error {
		claims, ok := c.Locals(cfg.ContextKey).(jwtware.AuthClaims)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(claims.Username())
	})
	return app
}

func request(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func TestMiddleware(t *testing.T) {
	cfg := jwtware.Config{
		TokenValidator: stubValidator{accept: "good-token"},
		ContextKey:     "session",
	}

	t.Run("missing header is a 401", func(t *testing.T) {
		res := request(t, newApp(cfg), "")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("wrong scheme is a 401", func(t *testing.T) {
		res := request(t, newApp(cfg), "Basic good-token")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("empty bearer token is a 401", func(t *testing.T) {
		res := request(t, newApp(cfg), "Bearer ")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("invalid token is a 401", func(t *testing.T) {
		res := request(t, newApp(cfg), "Bearer bad-token")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("valid token stores claims in context", func(t *testing.T) {
		res := request(t, newApp(cfg), "Bearer good-token")
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("filter skips validation", func(t *testing.T) {
		skipAll := cfg
		skipAll.Filter = func(*fiber.Ctx) bool { return true }

		app := fiber.New()
		app.Get("/protected", jwtware.New(skipAll), func(c *fiber.Ctx) error {
			return c.SendString("open")
		})

		res := request(t, app, "")
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("custom error handler sees the failure", func(t *testing.T) {
		var seen error
		custom := cfg
		custom.ErrorHandler = func(c *fiber.Ctx, err error) error {
			seen = err
			return c.SendStatus(fiber.StatusTeapot)
		}

		res := request(t, newApp(custom), "")
		assert.Equal(t, http.StatusTeapot, res.StatusCode)
		assert.ErrorIs(t, seen, jwtware.ErrJWTMissingOrMalformed)
	})
}
