package board

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crewlane/go-board/middleware/jwtware"
)

// ErrUnableToFindSession is returned when a request carries no session
var ErrUnableToFindSession = jwtware.ErrJWTMissingOrMalformed

// ProtectedRoute builds the middleware that re-validates the token
// signature and expiry on every request behind it. This, not the client's
// local expiry check, is the authorization boundary.
func ProtectedRoute(cfg Config, validator TokenValidator) fiber.Handler {
	return jwtware.New(jwtware.Config{
		TokenValidator: jwtValidatorAdapter{validator},
		ContextKey:     cfg.GetContextKey(),
		AuthScheme:     cfg.GetAuthScheme(),
	})
}

// jwtValidatorAdapter bridges the root TokenValidator to the middleware's
// mirrored interface without an import cycle.
type jwtValidatorAdapter struct {
	validator TokenValidator
}

func (a jwtValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := a.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// GetSession extracts the validated session from a protected request
func GetSession(c *fiber.Ctx, key string) (*SessionObject, error) {
	local := c.Locals(key)
	if local == nil {
		return nil, ErrUnableToFindSession
	}

	claims, ok := local.(AuthClaims)
	if !ok || claims == nil {
		return nil, ErrUnableToDecodeSession
	}

	return sessionFromAuthClaims(claims)
}

// RegisterRoutes mounts the login endpoint and the protected board API
func RegisterRoutes(app *fiber.App, auth *AuthController, tickets *TicketController, protect fiber.Handler) {
	app.Post("/login", auth.LoginPost)

	api := app.Group("/api", protect)
	api.Get("/session", auth.SessionGet)
	api.Get("/tickets", tickets.List)
	api.Post("/tickets", tickets.Create)
	api.Get("/tickets/:id", tickets.Get)
	api.Put("/tickets/:id", tickets.Update)
	api.Delete("/tickets/:id", tickets.Delete)
	api.Get("/users", tickets.ListUsers)
}
