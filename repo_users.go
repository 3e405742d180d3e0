package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Users is the credential store surface the rest of the system depends on
type Users interface {
	UserStore

	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, record *User) (*User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns a bun-backed Users repository
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("usr.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: get user by username: %v", ErrServiceUnavailable, err)
	}

	return user, nil
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	user := new(User)
	err := r.db.NewSelect().
		Model(user).
		Where("usr.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: get user by id: %v", ErrServiceUnavailable, err)
	}

	return user, nil
}

func (r *users) List(ctx context.Context) ([]*User, error) {
	var records []*User
	err := r.db.NewSelect().
		Model(&records).
		Order("usr.username ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrServiceUnavailable, err)
	}

	return records, nil
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrServiceUnavailable, err)
	}
	return record, nil
}
