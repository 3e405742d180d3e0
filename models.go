package board

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// User is the credential store record. The password hash never leaves the
// server; only the username travels to the client, inside a token claim.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Username      string     `bun:"username,notnull,unique" json:"username"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Public returns the denormalized projection of the user that is safe to
// embed in ticket reads.
func (u *User) Public() *Assignee {
	if u == nil {
		return nil
	}
	return &Assignee{ID: u.ID, Username: u.Username}
}

// Assignee is the read-only {id, username} snapshot joined into tickets at
// fetch time. It maps the same users table with only the public columns so
// the join can never leak a password hash.
type Assignee struct {
	bun.BaseModel `bun:"table:users,alias:assignee"`
	ID            int64  `bun:"id,pk" json:"id"`
	Username      string `bun:"username" json:"username"`
}

// TicketStatus is one of the board's swimlane buckets
type TicketStatus string

const (
	StatusTodo       TicketStatus = "Todo"
	StatusInProgress TicketStatus = "In Progress"
	StatusDone       TicketStatus = "Done"
)

// BoardStatuses lists the swimlane buckets in display order
var BoardStatuses = []TicketStatus{StatusTodo, StatusInProgress, StatusDone}

// IsValid checks the status is one of the known buckets
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// ParseTicketStatus validates a raw status value
func ParseTicketStatus(raw string) (TicketStatus, error) {
	s := TicketStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown ticket status %q", raw)
	}
	return s, nil
}

// Ticket is the board item. AssignedUser is resolved server-side when the
// ticket is read and must never be reconstructed by the client.
type Ticket struct {
	bun.BaseModel  `bun:"table:tickets,alias:tck"`
	ID             int64        `bun:"id,pk,autoincrement" json:"id"`
	Name           string       `bun:"name,notnull" json:"name"`
	Description    string       `bun:"description" json:"description"`
	Status         TicketStatus `bun:"status,notnull" json:"status"`
	AssignedUserID *int64       `bun:"assigned_user_id" json:"assignedUserId,omitempty"`
	AssignedUser   *Assignee    `bun:"rel:belongs-to,join:assigned_user_id=id" json:"assignedUser,omitempty"`
}

// AssigneeUsername returns the assigned username or the empty string when
// the ticket is unassigned.
func (t Ticket) AssigneeUsername() string {
	if t.AssignedUser == nil {
		return ""
	}
	return t.AssignedUser.Username
}
