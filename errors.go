package board

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials is returned for a bad username/password pair. The
// same value covers both "no such user" and "wrong password" so responses
// cannot be used for username enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrServiceUnavailable wraps credential/ticket store faults
var ErrServiceUnavailable = errors.New("service unavailable")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrMismatchedHashAndPassword is the bcrypt comparison failure
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("string must not be empty")

// ErrMissingSigningKey rejects token issuance with an empty secret. This is
// a startup-time misconfiguration, never something to tolerate at runtime.
var ErrMissingSigningKey = errors.New("signing key must not be empty")

// ErrTokenExpired is the error for expired session tokens
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed covers undecodable tokens and bad signatures
var ErrTokenMalformed = errors.New("token is malformed")

// ErrUnableToDecodeSession unable to build a session from token claims
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for undecodable tokens
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
