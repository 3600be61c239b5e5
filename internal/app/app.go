package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/folio/internal/config"
	"github.com/MrSnakeDoc/folio/internal/httpserver"
	"github.com/MrSnakeDoc/folio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/folio/internal/httpserver/views"
	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/scene"
	"github.com/MrSnakeDoc/folio/internal/scheduler"
	"github.com/MrSnakeDoc/folio/internal/state"
	"github.com/MrSnakeDoc/folio/internal/version"
)

// sceneSeed fixes the particle targets so every instance draws the same
// shapes.
const sceneSeed = 42

type App struct {
	cfg       *config.Config
	logger    logger.Logger
	server    *httpserver.Server
	stores    *Stores
	state     *state.Provider
	scene     *scene.Loop
	refresher *scheduler.ContentRefresher
	sweeper   *scheduler.SessionSweeper
	seeder    *scheduler.SeedImporter
}

func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	stores, err := OpenStores(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	renderer, err := views.New()
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	provider := state.New(stores.Facade, stores.Auth, loggerClient)

	loggerClient.Info("generating scene targets",
		logger.Int("points", cfg.ScenePoints))
	loop := scene.NewLoop(scene.NewRenderer(scene.NewTargets(cfg.ScenePoints, sceneSeed)), cfg.SceneFPS, loggerClient)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewContentRefresher(provider, loggerClient, cfg.RefreshInterval, reloadTrigger)

	var sweeper *scheduler.SessionSweeper
	if stores.Local != nil {
		sweeper = scheduler.NewSessionSweeper(stores.Local, loggerClient, cfg.SweepInterval)
	}

	var seeder *scheduler.SeedImporter
	if cfg.SeedFile != "" {
		seeder = scheduler.NewSeedImporter(cfg.SeedFile, stores.Facade, loggerClient)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		CORSOrigins:       cfg.CORSOrigins,
		CookieSecure:      cfg.CookieSecure,
		SessionTTL:        cfg.SessionTTL,
		LoginBurst:        cfg.LoginBurst,
		LoginRefillPerMin: cfg.LoginRefillPerMin,
		RedisClient:       stores.Redis,
		State:             provider,
		Scene:             loop,
		Views:             renderer,
		ReloadTrigger:     reloadTrigger,
	}

	return &App{
		cfg:       cfg,
		logger:    loggerClient,
		server:    httpserver.New(cfg, loggerClient, d),
		stores:    stores,
		state:     provider,
		scene:     loop,
		refresher: refresher,
		sweeper:   sweeper,
		seeder:    seeder,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Folio %s on %s (store: %s)", version.Version, a.cfg.ListenPort, a.stores.Facade.Mode())
	a.logger.Infof("Folio %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed before the first load so the initial snapshot already holds it.
	if a.seeder != nil {
		if _, err := a.seeder.ImportIfEmpty(ctx); err != nil {
			a.logger.Warn("seed import failed", logger.Error(err))
		}
	}

	if err := a.state.Start(ctx); err != nil {
		a.logger.Warn("state provider started without session events", logger.Error(err))
	}

	a.refresher.Start(ctx)
	a.logger.Info("content refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	if a.sweeper != nil {
		a.sweeper.Start(ctx)
		a.logger.Info("session sweeper started",
			logger.Duration("interval", a.cfg.SweepInterval))
	}

	a.scene.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	a.refresher.Stop()
	if a.sweeper != nil {
		a.sweeper.Stop()
	}
	a.scene.Stop()
	stop()
	a.state.Close()
	a.stores.Close()

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ Folio stopped cleanly")
	return nil
}
