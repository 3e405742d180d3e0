package client

import (
	"context"
	"errors"
	"sync"

	"github.com/crewlane/go-board"
)

// ErrNotLoggedIn is returned by guarded operations invoked without a valid
// session. The caller has already been navigated to the login view.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrBoardUnavailable is the terminal error state after a failed fetch
var ErrBoardUnavailable = errors.New("board unavailable")

// Board keeps a local cache of the ticket collection consistent with the
// server. allTickets is only ever replaced wholesale by FetchAll; the
// filtered view is recomputed from scratch on every dependency change.
// Deletes resynchronize by refetching (read-after-write) rather than
// patching the cache optimistically.
type Board struct {
	api    TicketAPI
	guard  *SessionGuard
	logger board.Logger

	mu           sync.Mutex
	allTickets   []board.Ticket
	filtered     []board.Ticket
	selectedUser string
	sortDir      SortDirection
	failed       bool
}

// NewBoard builds a synchronizer over the API, gated by the session guard
func NewBoard(api TicketAPI, guard *SessionGuard) *Board {
	return &Board{
		api:     api,
		guard:   guard,
		logger:  noopLogger{},
		sortDir: SortAscending,
	}
}

func (b *Board) WithLogger(l board.Logger) *Board {
	if l != nil {
		b.logger = l
	}
	return b
}

// requireLogin gates every operation. When the session is absent or
// expired the caller is sent to the login view and nothing else happens.
func (b *Board) requireLogin() error {
	if b.guard.LoggedIn() {
		return nil
	}
	b.guard.Navigate(LoginPath)
	return ErrNotLoggedIn
}

// FetchAll retrieves the full collection and replaces both the cache and
// the derived view wholesale. On failure the board enters a terminal error
// state and shows no partial or stale data. A fetch whose context was
// cancelled while in flight commits nothing: its response belongs to a
// discarded view.
func (b *Board) FetchAll(ctx context.Context) ([]board.Ticket, error) {
	if err := b.requireLogin(); err != nil {
		return nil, err
	}

	data, err := b.api.Tickets(ctx)
	if err != nil {
		// A cancelled request belongs to a discarded view: its failure says
		// nothing about the server, so the live cache stays untouched.
		if ctx.Err() != nil {
			return nil, err
		}
		b.logger.Error("failed to retrieve tickets", "error", err)
		b.mu.Lock()
		b.allTickets = nil
		b.filtered = nil
		b.failed = true
		b.mu.Unlock()
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	b.mu.Lock()
	b.allTickets = data
	b.failed = false
	b.recomputeLocked()
	tickets := b.filtered
	b.mu.Unlock()

	return tickets, nil
}

// Create submits a new ticket. No optimistic append happens: the caller
// navigates away and refetches on return.
func (b *Board) Create(ctx context.Context, payload board.NewTicketRequest) (*board.Ticket, error) {
	if err := b.requireLogin(); err != nil {
		return nil, err
	}

	created, err := b.api.CreateTicket(ctx, payload)
	if err != nil {
		return nil, err
	}

	b.guard.Navigate(HomePath)
	return created, nil
}

// Update edits a ticket's fields. Like Create, the cache is not patched in
// place; the caller navigates home and refetches on return.
func (b *Board) Update(ctx context.Context, id int64, payload board.NewTicketRequest) (*board.Ticket, error) {
	if err := b.requireLogin(); err != nil {
		return nil, err
	}

	updated, err := b.api.UpdateTicket(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	b.guard.Navigate(HomePath)
	return updated, nil
}

// Delete removes a ticket by id, then unconditionally refetches so the
// cache reflects the store (read-after-write consistency). If the delete
// itself fails the error is surfaced and the cache is left untouched.
func (b *Board) Delete(ctx context.Context, id int64) error {
	if err := b.requireLogin(); err != nil {
		return err
	}

	if err := b.api.DeleteTicket(ctx, id); err != nil {
		return err
	}

	_, err := b.FetchAll(ctx)
	return err
}

// SetUserFilter selects an assignee username to filter by; empty shows all
func (b *Board) SetUserFilter(username string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selectedUser = username
	b.recomputeLocked()
}

// SetSortDirection changes the assignee sort order
func (b *Board) SetSortDirection(dir SortDirection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sortDir = dir
	b.recomputeLocked()
}

// recomputeLocked rebuilds the derived view from scratch. Callers hold mu.
func (b *Board) recomputeLocked() {
	b.filtered = DeriveView(b.allTickets, b.selectedUser, b.sortDir, "")
}

// Tickets returns the current derived view. The result is a copy; mutating
// it cannot reach the cache behind the mutex.
func (b *Board) Tickets() []board.Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]board.Ticket, len(b.filtered))
	copy(out, b.filtered)
	return out
}

// Lane returns the derived view for a single status bucket
func (b *Board) Lane(status board.TicketStatus) []board.Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return DeriveView(b.allTickets, b.selectedUser, b.sortDir, status)
}

// Assignees returns the distinct usernames for the filter control
func (b *Board) Assignees() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return UniqueAssignees(b.allTickets)
}

// SelectedUser returns the active assignee filter
func (b *Board) SelectedUser() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectedUser
}

// Failed reports whether the board is in its terminal error state. While
// failed, no filter or sort controls should render as active.
func (b *Board) Failed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failed
}

// Err returns the terminal error state as an error value
func (b *Board) Err() error {
	if b.Failed() {
		return ErrBoardUnavailable
	}
	return nil
}
