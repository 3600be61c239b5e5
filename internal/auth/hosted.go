package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/folio/internal/logger"
	storeredis "github.com/MrSnakeDoc/folio/internal/store/redis"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HostedAuthenticator checks bcrypt password hashes kept in the hosted
// store. Sessions are stored there with a TTL and every change is
// published so other instances drop their cached copies.
type HostedAuthenticator struct {
	store *storeredis.Store
	ttl   time.Duration
	log   logger.Logger
	now   func() time.Time
}

// NewHostedAuthenticator creates an authenticator over the hosted store.
func NewHostedAuthenticator(store *storeredis.Store, ttl time.Duration, log logger.Logger) *HostedAuthenticator {
	return &HostedAuthenticator{
		store: store,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EnsureAdmin creates the admin account, or resets its password when the
// stored hash no longer matches.
func (a *HostedAuthenticator) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)

	hash, err := a.store.UserPasswordHash(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil {
			return nil
		}
	case !errors.Is(err, storeredis.ErrNotFound):
		return err
	}

	hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := a.store.SaveUser(ctx, email, hash); err != nil {
		return err
	}

	a.log.Info("admin account provisioned", logger.String("email", email))
	return nil
}

func (a *HostedAuthenticator) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)

	hash, err := a.store.UserPasswordHash(ctx, email)
	if errors.Is(err, storeredis.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := a.now()
	s := Session{
		Token:     uuid.NewString(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := a.store.SaveSession(ctx, s.Token, data, a.ttl); err != nil {
		return Session{}, err
	}

	a.publish(ctx, Event{Kind: EventSignedIn, Token: s.Token, Email: email, At: now})
	return s, nil
}

func (a *HostedAuthenticator) SignOut(ctx context.Context, token string) error {
	existed, err := a.store.DeleteSession(ctx, token)
	if err != nil {
		return err
	}
	if existed {
		a.publish(ctx, Event{Kind: EventSignedOut, Token: token, At: a.now()})
	}
	return nil
}

func (a *HostedAuthenticator) Lookup(ctx context.Context, token string) (Session, error) {
	data, err := a.store.Session(ctx, token)
	if errors.Is(err, storeredis.ErrNotFound) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return s, nil
}

// publish is best effort: a lost notification only delays cache eviction
// on other instances until their next lookup.
func (a *HostedAuthenticator) publish(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		a.log.Warn("failed to encode auth event", logger.Error(err))
		return
	}
	if err := a.store.PublishAuthEvent(ctx, data); err != nil {
		a.log.Warn("failed to publish auth event", logger.Error(err))
	}
}

func (a *HostedAuthenticator) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	sub, err := a.store.SubscribeAuthEvents(ctx)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan Event, subscriberBuffer)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					a.log.Warn("ignoring malformed auth event", logger.Error(err))
					continue
				}
				select {
				case out <- ev:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() { close(done) })
		<-exited
	}

	return out, cancel, nil
}
