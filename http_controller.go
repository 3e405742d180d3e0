package board

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON error body every endpoint produces
type ErrorResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the login success body
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse acknowledges mutations that return no record
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate runs payload validation
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthController serves the login and session endpoints
type AuthController struct {
	Auther     Authenticator
	Logger     Logger
	ContextKey string
}

// NewAuthController returns a login controller backed by the authenticator
func NewAuthController(auther Authenticator) *AuthController {
	return &AuthController{
		Auther:     auther,
		Logger:     defLogger{},
		ContextKey: "session",
	}
}

func (a *AuthController) WithLogger(l Logger) *AuthController {
	a.Logger = l
	return a
}

// LoginPost handles POST /login. Bad credentials are a 401 with a generic
// message; store faults are a 500. The body never distinguishes unknown
// users from wrong passwords.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	var payload LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request payload"})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}

	token, err := a.Auther.Login(c.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: "Authentication failed"})
		}
		a.Logger.Error("login failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal server error"})
	}

	return c.JSON(TokenResponse{Token: token})
}

// SessionGet handles GET /api/session, echoing back the validated session
// of the presented token.
func (a *AuthController) SessionGet(c *fiber.Ctx) error {
	session, err := GetSession(c, a.ContextKey)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: "Unauthorized"})
	}

	return c.JSON(session)
}

// NewTicketRequest is the create/update payload
type NewTicketRequest struct {
	Name           string `form:"name" json:"name"`
	Description    string `form:"description" json:"description"`
	Status         string `form:"status" json:"status"`
	AssignedUserID *int64 `form:"assignedUserId" json:"assignedUserId"`
}

// Validate runs payload validation. An empty status is allowed and defaults
// to Todo at creation time.
func (r NewTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Status, validation.By(func(value any) error {
			raw, _ := value.(string)
			if raw == "" {
				return nil
			}
			_, err := ParseTicketStatus(raw)
			return err
		})),
	)
}

// TicketController serves the board CRUD endpoints
type TicketController struct {
	Repo   Tickets
	Users  Users
	Logger Logger
}

// NewTicketController wires the board endpoints to their repositories
func NewTicketController(repo Tickets, users Users) *TicketController {
	return &TicketController{
		Repo:   repo,
		Users:  users,
		Logger: defLogger{},
	}
}

func (t *TicketController) WithLogger(l Logger) *TicketController {
	t.Logger = l
	return t
}

// List handles GET /api/tickets
func (t *TicketController) List(c *fiber.Ctx) error {
	records, err := t.Repo.List(c.Context())
	if err != nil {
		t.Logger.Error("list tickets failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal server error"})
	}

	return c.JSON(records)
}

// Get handles GET /api/tickets/:id
func (t *TicketController) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid ticket id"})
	}

	record, err := t.Repo.GetByID(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: "Ticket not found"})
		}
		t.Logger.Error("get ticket failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal server error"})
	}

	return c.JSON(record)
}

// Create handles POST /api/tickets
func (t *TicketController) Create(c *fiber.Ctx) error {
	var payload NewTicketRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request payload"})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}

	record := &Ticket{
		Name:           payload.Name,
		Description:    payload.Description,
		Status:         TicketStatus(payload.Status),
		AssignedUserID: payload.AssignedUserID,
	}

	created, err := t.Repo.Create(c.Context(), record)
	if err != nil {
		t.Logger.Error("create ticket failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update handles PUT /api/tickets/:id. The edit form only sets fields;
// there is no workflow engine validating status transitions.
func (t *TicketController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid ticket id"})
	}

	var payload NewTicketRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request payload"})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	}

	record := &Ticket{
		ID:             int64(id),
		Name:           payload.Name,
		Description:    payload.Description,
		Status:         TicketStatus(payload.Status),
		AssignedUserID: payload.AssignedUserID,
	}
	if record.Status == "" {
		record.Status = StatusTodo
	}

	updated, err := t.Repo.Update(c.Context(), record)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: "Ticket not found"})
		}
		t.Logger.Error("update ticket failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal server error"})
	}

	return c.JSON(updated)
}

// Delete handles DELETE /api/tickets/:id
func (t *TicketController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid ticket id"})
	}

	if err := t.Repo.Delete(c.Context(), int64(id)); err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: "Ticket not found"})
		}
		t.Logger.Error("delete ticket failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal server error"})
	}

	return c.JSON(MessageResponse{Message: "Ticket deleted"})
}

// ListUsers handles GET /api/users, the assignee picker data. Only the
// public projection leaves the server.
func (t *TicketController) ListUsers(c *fiber.Ctx) error {
	records, err := t.Users.List(c.Context())
	if err != nil {
		t.Logger.Error("list users failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Internal server error"})
	}

	public := make([]*Assignee, 0, len(records))
	for _, u := range records {
		public = append(public, u.Public())
	}

	return c.JSON(public)
}
