package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/folio/internal/logger"
)

// Sweeper drops sessions expired at now and returns how many it removed.
type Sweeper interface {
	Sweep(now time.Time) int
}

// SessionSweeper periodically removes expired in-memory sessions. Hosted
// sessions expire on their own through the store TTL.
type SessionSweeper struct {
	sweeper  Sweeper
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(sweeper Sweeper, log logger.Logger, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sweeper:  sweeper,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (ss *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(ss.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				ss.Collect(now)
			case <-ss.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper
func (ss *SessionSweeper) Stop() {
	close(ss.stopCh)
}

// Collect runs one sweep and returns the number of sessions removed.
func (ss *SessionSweeper) Collect(now time.Time) int {
	removed := ss.sweeper.Sweep(now)
	if removed > 0 {
		ss.logger.Info("expired sessions removed", logger.Int("count", removed))
	} else {
		ss.logger.Debug("no expired sessions")
	}
	return removed
}
