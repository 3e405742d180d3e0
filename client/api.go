package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crewlane/go-board"
)

// TicketAPI is the server surface the board synchronizer consumes
type TicketAPI interface {
	Tickets(ctx context.Context) ([]board.Ticket, error)
	CreateTicket(ctx context.Context, payload board.NewTicketRequest) (*board.Ticket, error)
	UpdateTicket(ctx context.Context, id int64, payload board.NewTicketRequest) (*board.Ticket, error)
	DeleteTicket(ctx context.Context, id int64) error
	Users(ctx context.Context) ([]board.Assignee, error)
}

// APIClient talks to the board server over HTTP. Every call is bound to a
// context and attempted exactly once; there are no retries, the user
// retries through the UI.
type APIClient struct {
	base   string
	httpc  *http.Client
	guard  *SessionGuard
	logger board.Logger
}

var _ TicketAPI = (*APIClient)(nil)

// NewAPIClient builds a client rooted at base, authenticating from guard
func NewAPIClient(base string, guard *SessionGuard) *APIClient {
	return &APIClient{
		base:   strings.TrimRight(base, "/"),
		httpc:  &http.Client{Timeout: 30 * time.Second},
		guard:  guard,
		logger: noopLogger{},
	}
}

func (c *APIClient) WithHTTPClient(httpc *http.Client) *APIClient {
	if httpc != nil {
		c.httpc = httpc
	}
	return c
}

func (c *APIClient) WithLogger(l board.Logger) *APIClient {
	if l != nil {
		c.logger = l
	}
	return c
}

// Login posts credentials and returns the issued token. The token is not
// persisted here; that is the session guard's job.
func (c *APIClient) Login(ctx context.Context, username, password string) (string, error) {
	body := board.LoginRequest{Username: username, Password: password}

	var out board.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &out, false); err != nil {
		return "", err
	}

	return out.Token, nil
}

func (c *APIClient) Tickets(ctx context.Context) ([]board.Ticket, error) {
	var out []board.Ticket
	if err := c.do(ctx, http.MethodGet, "/api/tickets", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CreateTicket(ctx context.Context, payload board.NewTicketRequest) (*board.Ticket, error) {
	out := new(board.Ticket)
	if err := c.do(ctx, http.MethodPost, "/api/tickets", payload, out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) UpdateTicket(ctx context.Context, id int64, payload board.NewTicketRequest) (*board.Ticket, error) {
	out := new(board.Ticket)
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tickets/%d", id), payload, out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) DeleteTicket(ctx context.Context, id int64) error {
	var out board.MessageResponse
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tickets/%d", id), nil, &out, true)
}

func (c *APIClient) Users(ctx context.Context) ([]board.Assignee, error) {
	var out []board.Assignee
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		if token := c.guard.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", board.ErrServiceUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return c.statusError(res)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *APIClient) statusError(res *http.Response) error {
	var msg board.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&msg); err != nil {
		msg.Message = res.Status
	}

	switch res.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", board.ErrInvalidCredentials, msg.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", board.ErrTicketNotFound, msg.Message)
	case http.StatusBadRequest:
		return fmt.Errorf("bad request: %s", msg.Message)
	default:
		return fmt.Errorf("%w: %s", board.ErrServiceUnavailable, msg.Message)
	}
}
