package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/folio/internal/logger"
	storeredis "github.com/MrSnakeDoc/folio/internal/store/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupHosted(t *testing.T) (*HostedAuthenticator, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewHostedAuthenticator(storeredis.NewStore(client), time.Hour, logger.Nop()), s
}

func TestHostedSignIn(t *testing.T) {
	a, _ := setupHosted(t)
	ctx := context.Background()

	if err := a.EnsureAdmin(ctx, "Me@Example.com", "s3cret"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "me@example.com", password: "s3cret"},
		{name: "case insensitive email", email: " ME@example.com ", password: "s3cret"},
		{name: "wrong password", email: "me@example.com", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown account", email: "who@example.com", password: "s3cret", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := a.SignIn(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SignIn() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				got, err := a.Lookup(ctx, s.Token)
				if err != nil || got.Email != "me@example.com" {
					t.Errorf("Lookup() = %+v, %v", got, err)
				}
			}
		})
	}
}

func TestHostedEnsureAdminResetsPassword(t *testing.T) {
	a, _ := setupHosted(t)
	ctx := context.Background()

	_ = a.EnsureAdmin(ctx, "me@example.com", "old")
	_ = a.EnsureAdmin(ctx, "me@example.com", "new")

	if _, err := a.SignIn(ctx, "me@example.com", "old"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
	if _, err := a.SignIn(ctx, "me@example.com", "new"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestHostedSessionExpiresWithTTL(t *testing.T) {
	a, s := setupHosted(t)
	ctx := context.Background()
	_ = a.EnsureAdmin(ctx, "me@example.com", "pw")

	sess, err := a.SignIn(ctx, "me@example.com", "pw")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	s.FastForward(2 * time.Hour)
	if _, err := a.Lookup(ctx, sess.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Lookup after TTL = %v, want ErrSessionNotFound", err)
	}
}

func TestHostedEvents(t *testing.T) {
	a, _ := setupHosted(t)
	ctx := context.Background()
	_ = a.EnsureAdmin(ctx, "me@example.com", "pw")

	events, cancel, err := a.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer cancel()

	sess, _ := a.SignIn(ctx, "me@example.com", "pw")
	if err := a.SignOut(ctx, sess.Token); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	for _, want := range []EventKind{EventSignedIn, EventSignedOut} {
		select {
		case ev := <-events:
			if ev.Kind != want || ev.Token != sess.Token {
				t.Errorf("event = %+v, want %s", ev, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("missing %s event", want)
		}
	}

	cancel()
	if _, ok := <-events; ok {
		t.Error("channel should be closed after cancel")
	}
}
