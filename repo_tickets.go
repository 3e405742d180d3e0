package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrTicketNotFound is returned for lookups and deletes of unknown tickets
var ErrTicketNotFound = errors.New("ticket not found")

// Tickets is the board's backing store. Reads always resolve the assignee
// relation so clients never have to join users themselves.
type Tickets interface {
	List(ctx context.Context) ([]Ticket, error)
	GetByID(ctx context.Context, id int64) (*Ticket, error)
	Create(ctx context.Context, record *Ticket) (*Ticket, error)
	Update(ctx context.Context, record *Ticket) (*Ticket, error)
	Delete(ctx context.Context, id int64) error
}

type tickets struct {
	db *bun.DB
}

var _ Tickets = (*tickets)(nil)

// NewTicketsRepository returns a bun-backed Tickets repository
func NewTicketsRepository(db *bun.DB) Tickets {
	return &tickets{db: db}
}

func (r *tickets) List(ctx context.Context) ([]Ticket, error) {
	var records []Ticket
	err := r.db.NewSelect().
		Model(&records).
		Relation("AssignedUser").
		Order("tck.id ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("%w: list tickets: %v", ErrServiceUnavailable, err)
	}

	return records, nil
}

func (r *tickets) GetByID(ctx context.Context, id int64) (*Ticket, error) {
	record := new(Ticket)
	err := r.db.NewSelect().
		Model(record).
		Relation("AssignedUser").
		Where("tck.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("%w: get ticket: %v", ErrServiceUnavailable, err)
	}

	return record, nil
}

func (r *tickets) Create(ctx context.Context, record *Ticket) (*Ticket, error) {
	if record.Status == "" {
		record.Status = StatusTodo
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: create ticket: %v", ErrServiceUnavailable, err)
	}

	return r.GetByID(ctx, record.ID)
}

func (r *tickets) Update(ctx context.Context, record *Ticket) (*Ticket, error) {
	res, err := r.db.NewUpdate().
		Model(record).
		Column("name", "description", "status", "assigned_user_id").
		WherePK().
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("%w: update ticket: %v", ErrServiceUnavailable, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrTicketNotFound
	}

	return r.GetByID(ctx, record.ID)
}

func (r *tickets) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*Ticket)(nil)).
		Where("tck.id = ?", id).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("%w: delete ticket: %v", ErrServiceUnavailable, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTicketNotFound
	}

	return nil
}
