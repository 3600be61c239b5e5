// Package state holds the process-wide portfolio snapshot and the admin
// session cache.
package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/folio/internal/auth"
	"github.com/MrSnakeDoc/folio/internal/content"
	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

// Store is the content facade as seen by the provider.
type Store interface {
	Mode() content.Mode
	FetchAll(ctx context.Context) (domain.PortfolioData, error)
	UpsertTopic(ctx context.Context, t domain.Topic) (domain.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
	UpsertNews(ctx context.Context, n domain.NewsItem) (domain.NewsItem, error)
	DeleteNews(ctx context.Context, id string) error
	UpsertActivity(ctx context.Context, a domain.Activity) (domain.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
	UpdateHeroWords(ctx context.Context, words []string) error
	UpdateProfileImage(ctx context.Context, image string) error
}

// Messages recorded in Snapshot.Err. The underlying error is logged, never
// stored.
const (
	MsgFallback      = "The hosted content store is unavailable. Showing the local copy."
	MsgRefreshFailed = "The content could not be loaded. Showing the last known copy."
)

// Snapshot is an immutable view of the provider state. Data is shared by
// every reader and must not be modified.
type Snapshot struct {
	Data        domain.PortfolioData
	Loading     bool
	Err         string
	RefreshedAt time.Time
}

// Provider owns the current portfolio document. The document is replaced
// whole on every refresh so readers never observe a partial update.
type Provider struct {
	store Store
	auth  auth.Authenticator
	log   logger.Logger

	current  atomic.Pointer[Snapshot]
	inflight atomic.Int32
	mu       sync.Mutex // serializes snapshot replacement

	sessMu   sync.RWMutex
	sessions map[string]auth.Session

	cancelSub func()
	wg        sync.WaitGroup
}

// New creates a provider holding the default document.
func New(store Store, authenticator auth.Authenticator, log logger.Logger) *Provider {
	p := &Provider{
		store:    store,
		auth:     authenticator,
		log:      log,
		sessions: make(map[string]auth.Session),
	}
	p.current.Store(&Snapshot{Data: domain.DefaultPortfolio()})
	return p
}

// Snapshot returns the current state.
func (p *Provider) Snapshot() Snapshot {
	return *p.current.Load()
}

// Loading reports whether a refresh is in flight.
func (p *Provider) Loading() bool {
	return p.inflight.Load() > 0
}

// Mode reports which store serves the content.
func (p *Provider) Mode() content.Mode {
	return p.store.Mode()
}

// Start marks the provider as loading, launches the initial refresh and
// subscribes to session changes. Loading is already reported when Start
// returns. Without a subscription cached sessions are only dropped by
// their expiry or a local sign-out.
func (p *Provider) Start(ctx context.Context) error {
	p.beginLoad()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.finishRefresh(ctx)
	}()

	events, cancel, err := p.auth.Subscribe(ctx)
	if err != nil {
		p.log.Warn("session events unavailable", logger.Error(err))
		return err
	}
	p.cancelSub = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.consume(events)
	}()

	return nil
}

// Close releases the session subscription and waits for background work.
func (p *Provider) Close() {
	if p.cancelSub != nil {
		p.cancelSub()
	}
	p.wg.Wait()
}

// Refresh fetches the whole document and replaces the snapshot. On failure
// the previous document is kept and MsgRefreshFailed recorded; a fallback
// read replaces the document and records MsgFallback.
func (p *Provider) Refresh(ctx context.Context) error {
	p.beginLoad()
	return p.finishRefresh(ctx)
}

func (p *Provider) beginLoad() {
	p.inflight.Add(1)
	p.mu.Lock()
	s := *p.current.Load()
	s.Loading = true
	p.current.Store(&s)
	p.mu.Unlock()
}

func (p *Provider) finishRefresh(ctx context.Context) error {
	doc, err := p.store.FetchAll(ctx)

	var fallback *content.FallbackError
	switch {
	case err == nil:
		p.endLoad(Snapshot{Data: defaultProfileImage(doc)}, true)
	case errors.As(err, &fallback):
		p.log.Warn("content served from local fallback", logger.Error(err))
		p.endLoad(Snapshot{Data: defaultProfileImage(doc), Err: MsgFallback}, true)
	default:
		p.log.Error("content refresh failed", logger.Error(err))
		p.endLoad(Snapshot{Err: MsgRefreshFailed}, false)
	}
	return err
}

// endLoad publishes the outcome of one refresh. replace tells whether
// next.Data supersedes the current document.
func (p *Provider) endLoad(next Snapshot, replace bool) {
	remaining := p.inflight.Add(-1)

	p.mu.Lock()
	defer p.mu.Unlock()

	s := *p.current.Load()
	if replace {
		s.Data = next.Data
		s.RefreshedAt = time.Now()
	}
	s.Err = next.Err
	s.Loading = remaining > 0
	p.current.Store(&s)
}

func defaultProfileImage(doc domain.PortfolioData) domain.PortfolioData {
	if doc.ProfileImage == "" {
		doc.ProfileImage = domain.DefaultProfileImage
	}
	return doc
}
