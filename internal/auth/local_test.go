package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocalSignIn(t *testing.T) {
	a := NewLocalAuthenticator("admin123", time.Hour)
	ctx := context.Background()

	tests := []struct {
		name      string
		email     string
		password  string
		wantErr   error
		wantEmail string
	}{
		{name: "right passphrase", email: "me@example.com", password: "admin123", wantEmail: "me@example.com"},
		{name: "default identity", email: "  ", password: "admin123", wantEmail: DefaultLocalEmail},
		{name: "wrong passphrase", email: "me@example.com", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "empty passphrase", password: "", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := a.SignIn(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SignIn() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (s.Email != tt.wantEmail || s.Token == "") {
				t.Errorf("SignIn() = %+v", s)
			}
		})
	}
}

func TestLocalLookupAndSignOut(t *testing.T) {
	a := NewLocalAuthenticator("pw", time.Hour)
	ctx := context.Background()

	s, err := a.SignIn(ctx, "", "pw")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if _, err := a.Lookup(ctx, s.Token); err != nil {
		t.Errorf("Lookup failed: %v", err)
	}

	if err := a.SignOut(ctx, s.Token); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if _, err := a.Lookup(ctx, s.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Lookup after SignOut = %v, want ErrSessionNotFound", err)
	}
	if err := a.SignOut(ctx, "unknown"); err != nil {
		t.Errorf("SignOut(unknown) = %v", err)
	}
}

func TestLocalExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewLocalAuthenticator("pw", time.Minute)
	a.now = func() time.Time { return now }
	ctx := context.Background()

	s1, _ := a.SignIn(ctx, "", "pw")
	s2, _ := a.SignIn(ctx, "", "pw")

	now = now.Add(2 * time.Minute)
	if _, err := a.Lookup(ctx, s1.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired Lookup = %v", err)
	}

	if n := a.Sweep(now); n != 1 {
		t.Errorf("Sweep() removed %d, want 1 (s2)", n)
	}
	if a.Active() != 0 {
		t.Errorf("Active() = %d after sweep", a.Active())
	}
	_ = s2
}

func TestLocalEvents(t *testing.T) {
	a := NewLocalAuthenticator("pw", time.Hour)
	ctx := context.Background()

	events, cancel, err := a.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	s, _ := a.SignIn(ctx, "", "pw")
	_ = a.SignOut(ctx, s.Token)

	for _, want := range []EventKind{EventSignedIn, EventSignedOut} {
		select {
		case ev := <-events:
			if ev.Kind != want || ev.Token != s.Token {
				t.Errorf("event = %+v, want %s", ev, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("missing %s event", want)
		}
	}

	cancel()
	if _, ok := <-events; ok {
		t.Error("channel should be closed after cancel")
	}
	if a.broker.Subscribers() != 0 {
		t.Error("subscription not released")
	}
}
