package scene

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/folio/internal/logger"
)

// Loop steps a Renderer on a fixed timestep. The route it renders is the
// last one passed to SetRoute.
type Loop struct {
	renderer *Renderer
	interval time.Duration
	log      logger.Logger

	route   atomic.Value // string
	started time.Time

	stopCh chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewLoop creates a loop running fps steps per second.
func NewLoop(renderer *Renderer, fps int, log logger.Logger) *Loop {
	if fps <= 0 {
		fps = 30
	}
	l := &Loop{
		renderer: renderer,
		interval: time.Second / time.Duration(fps),
		log:      log,
		stopCh:   make(chan struct{}),
	}
	l.route.Store("/")
	return l
}

// SetRoute records the path of the latest page view.
func (l *Loop) SetRoute(path string) {
	l.route.Store(path)
}

// Route returns the route currently rendered.
func (l *Loop) Route() string {
	return l.route.Load().(string)
}

// Renderer returns the stepped renderer.
func (l *Loop) Renderer() *Renderer {
	return l.renderer
}

// Start runs the loop in the background until ctx is done or Stop is called.
func (l *Loop) Start(ctx context.Context) {
	l.started = time.Now()
	l.log.Info("scene loop started",
		logger.Int("points", l.renderer.Count()),
		logger.Duration("timestep", l.interval))

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				l.log.Info("scene loop stopped (context cancelled)")
				return
			case <-l.stopCh:
				l.log.Info("scene loop stopped")
				return
			case now := <-ticker.C:
				l.renderer.Step(l.Route(), now.Sub(l.started).Seconds())
			}
		}
	}()
}

// Stop ends the loop and waits for the last step to finish.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stopCh) })
	l.wg.Wait()
}
