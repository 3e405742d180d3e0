package board

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// UserProvider verifies credentials against a UserStore
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare the password against the
// stored bcrypt hash, and return the identity. A missing user and a wrong
// password produce the same ErrInvalidCredentials so the response shape
// cannot be used to enumerate usernames. This is a read-only operation.
func (u *UserProvider) VerifyIdentity(ctx context.Context, username, password string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrInvalidCredentials
		}
		u.logger.Error("VerifyIdentity store lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return authIdentity{
		id:       strconv.FormatInt(user.ID, 10),
		username: user.Username,
	}, nil
}

type authIdentity struct {
	id       string
	username string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

var _ Identity = authIdentity{}
var _ IdentityProvider = (*UserProvider)(nil)
