package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalAuthenticator grants a session to anyone who knows the configured
// passphrase. Sessions live in memory and are lost on restart.
type LocalAuthenticator struct {
	passphrase []byte
	ttl        time.Duration
	broker     *Broker
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]Session
}

// NewLocalAuthenticator creates a passphrase authenticator.
func NewLocalAuthenticator(passphrase string, ttl time.Duration) *LocalAuthenticator {
	return &LocalAuthenticator{
		passphrase: []byte(passphrase),
		ttl:        ttl,
		broker:     NewBroker(),
		now:        time.Now,
		sessions:   make(map[string]Session),
	}
}

func (a *LocalAuthenticator) SignIn(_ context.Context, email, password string) (Session, error) {
	if subtle.ConstantTimeCompare([]byte(password), a.passphrase) != 1 {
		return Session{}, ErrInvalidCredentials
	}

	email = strings.TrimSpace(email)
	if email == "" {
		email = DefaultLocalEmail
	}

	now := a.now()
	s := Session{
		Token:     uuid.NewString(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}

	a.mu.Lock()
	a.sessions[s.Token] = s
	a.mu.Unlock()

	a.broker.Publish(Event{Kind: EventSignedIn, Token: s.Token, Email: s.Email, At: now})
	return s, nil
}

// SignOut drops token. Unknown tokens are ignored.
func (a *LocalAuthenticator) SignOut(_ context.Context, token string) error {
	a.mu.Lock()
	s, ok := a.sessions[token]
	delete(a.sessions, token)
	a.mu.Unlock()

	if ok {
		a.broker.Publish(Event{Kind: EventSignedOut, Token: token, Email: s.Email, At: a.now()})
	}
	return nil
}

func (a *LocalAuthenticator) Lookup(_ context.Context, token string) (Session, error) {
	now := a.now()

	a.mu.Lock()
	s, ok := a.sessions[token]
	if ok && s.Expired(now) {
		delete(a.sessions, token)
	}
	a.mu.Unlock()

	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if s.Expired(now) {
		a.broker.Publish(Event{Kind: EventExpired, Token: token, Email: s.Email, At: now})
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (a *LocalAuthenticator) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	ch, cancel := a.broker.Subscribe(ctx)
	return ch, cancel, nil
}

// Sweep drops every session expired at now and returns how many were removed.
func (a *LocalAuthenticator) Sweep(now time.Time) int {
	a.mu.Lock()
	var expired []Session
	for token, s := range a.sessions {
		if s.Expired(now) {
			expired = append(expired, s)
			delete(a.sessions, token)
		}
	}
	a.mu.Unlock()

	for _, s := range expired {
		a.broker.Publish(Event{Kind: EventExpired, Token: s.Token, Email: s.Email, At: now})
	}
	return len(expired)
}

// Active returns the number of live sessions.
func (a *LocalAuthenticator) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}
