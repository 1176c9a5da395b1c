package domain

import (
	"errors"
	"time"
)

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrMissingClaims  = errors.New("token is missing required claims")
	ErrUserNotFound   = errors.New("user not found")
)

// Identity is the authenticated caller, derived from a verified token.
// It lives for a single request and is the only trusted source of
// "who is asking" — never a client-supplied identifier.
type Identity struct {
	UserID    UserID
	Email     string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

type User struct {
	ID        UserID
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
