package state

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/folio/internal/auth"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

// Login authenticates and returns the session token. It never fails
// loudly: wrong credentials and unreachable stores both report false.
func (p *Provider) Login(ctx context.Context, email, password string) (string, bool) {
	s, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			p.log.Warn("sign-in failed", logger.Error(err))
		}
		return "", false
	}

	p.cacheSession(s)
	return s.Token, true
}

// Logout revokes token and forgets it locally, whatever the store says.
func (p *Provider) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := p.auth.SignOut(ctx, token); err != nil {
		p.log.Warn("sign-out failed", logger.Error(err))
	}
	p.forgetSession(token)
}

// Authenticated is the session flag for a request bearing token.
func (p *Provider) Authenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	now := time.Now()

	p.sessMu.RLock()
	s, ok := p.sessions[token]
	p.sessMu.RUnlock()

	if ok {
		if !s.Expired(now) {
			return true
		}
		p.forgetSession(token)
	}

	s, err := p.auth.Lookup(ctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrSessionNotFound) {
			p.log.Warn("session lookup failed", logger.Error(err))
		}
		return false
	}
	if s.Expired(now) {
		return false
	}

	p.cacheSession(s)
	return true
}

// CachedSessions returns the number of sessions known to this instance.
func (p *Provider) CachedSessions() int {
	p.sessMu.RLock()
	defer p.sessMu.RUnlock()
	return len(p.sessions)
}

func (p *Provider) cacheSession(s auth.Session) {
	p.sessMu.Lock()
	p.sessions[s.Token] = s
	p.sessMu.Unlock()
}

func (p *Provider) forgetSession(token string) {
	p.sessMu.Lock()
	delete(p.sessions, token)
	p.sessMu.Unlock()
}

// consume applies session changes until the subscription closes.
func (p *Provider) consume(events <-chan auth.Event) {
	for ev := range events {
		switch ev.Kind {
		case auth.EventSignedOut, auth.EventExpired:
			p.forgetSession(ev.Token)
			p.log.Debug("session dropped",
				logger.String("kind", string(ev.Kind)),
				logger.String("email", ev.Email))
		case auth.EventSignedIn:
			p.log.Debug("session opened", logger.String("email", ev.Email))
		}
	}
}
