// Package auth issues and checks admin sessions.
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials covers unknown accounts and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound is returned for unknown, revoked or expired tokens.
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultLocalEmail is the identity given to passphrase sign-ins that did
// not provide an email.
const DefaultLocalEmail = "demo@folio.local"

// Session is an authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// EventKind describes a session change.
type EventKind string

const (
	EventSignedIn  EventKind = "signed_in"
	EventSignedOut EventKind = "signed_out"
	EventExpired   EventKind = "expired"
)

// Event is a session change notification.
type Event struct {
	Kind  EventKind `json:"kind"`
	Token string    `json:"token"`
	Email string    `json:"email"`
	At    time.Time `json:"at"`
}

// Authenticator issues sessions and notifies subscribers of their changes.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	Lookup(ctx context.Context, token string) (Session, error)
	// Subscribe streams session changes until cancel is called or ctx ends.
	Subscribe(ctx context.Context) (events <-chan Event, cancel func(), err error)
}
