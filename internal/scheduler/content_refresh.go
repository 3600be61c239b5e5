package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/folio/internal/logger"
)

// Refresher reloads the content snapshot.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ContentRefresher reloads the portfolio periodically and on demand, so
// edits made by another instance or directly in the store show up.
type ContentRefresher struct {
	refresher     Refresher
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewContentRefresher creates a new content refresher. interval <= 0
// disables the periodic refresh; manual triggers still work.
func NewContentRefresher(
	refresher Refresher,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ContentRefresher {
	return &ContentRefresher{
		refresher:     refresher,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the refresh loop. The initial load belongs to the state
// provider, so nothing is fetched here until the first tick or trigger.
func (cr *ContentRefresher) Start(ctx context.Context) {
	var tick <-chan time.Time
	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				cr.run(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("manual content refresh triggered")
				cr.run(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the refresher
func (cr *ContentRefresher) Stop() {
	close(cr.stopCh)
}

func (cr *ContentRefresher) run(ctx context.Context) {
	start := time.Now()
	if err := cr.refresher.Refresh(ctx); err != nil {
		cr.logger.Error("failed to refresh content", logger.Error(err))
		return
	}
	cr.logger.Debug("content refreshed", logger.Duration("took", time.Since(start)))
}
