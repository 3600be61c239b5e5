package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a user or session key does not exist.
var ErrNotFound = errors.New("not found")

const fieldPasswordHash = "password_hash"

// SaveUser stores (or replaces) the password hash of an admin account.
func (s *Store) SaveUser(ctx context.Context, email string, passwordHash []byte) error {
	if err := s.client.HSet(ctx, UserKey(email), fieldPasswordHash, passwordHash).Err(); err != nil {
		return fmt.Errorf("failed to save user %s: %w", email, err)
	}
	return nil
}

// UserPasswordHash returns the stored hash for email, or ErrNotFound.
func (s *Store) UserPasswordHash(ctx context.Context, email string) ([]byte, error) {
	hash, err := s.client.HGet(ctx, UserKey(email), fieldPasswordHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user %s: %w", email, err)
	}
	return hash, nil
}

// SaveSession stores an encoded session that expires after ttl.
func (s *Store) SaveSession(ctx context.Context, token string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, SessionKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Session returns the encoded session for token, or ErrNotFound once it
// expired or was revoked.
func (s *Store) Session(ctx context.Context, token string) ([]byte, error) {
	data, err := s.client.Get(ctx, SessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return data, nil
}

// DeleteSession revokes token and reports whether it existed.
func (s *Store) DeleteSession(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Del(ctx, SessionKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return n > 0, nil
}

// PublishAuthEvent broadcasts an encoded session change to every instance.
func (s *Store) PublishAuthEvent(ctx context.Context, payload []byte) error {
	if err := s.client.Publish(ctx, ChannelAuthEvents, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish auth event: %w", err)
	}
	return nil
}

// SubscribeAuthEvents opens a subscription to session changes. The caller
// owns the returned PubSub and must close it.
func (s *Store) SubscribeAuthEvents(ctx context.Context) (*redis.PubSub, error) {
	sub := s.client.Subscribe(ctx, ChannelAuthEvents)
	// Receive the subscription confirmation so publishes after this call
	// are never missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to auth events: %w", err)
	}
	return sub, nil
}
